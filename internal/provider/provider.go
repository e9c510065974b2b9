// internal/provider/provider.go
package provider

import (
	"context"
	"fmt"

	"github.com/unclebandit/mailpulse-backend/internal/config"
)

// DeliveryProvider accepts one outbound email. An error means the
// recipient is skipped for this pass; the engine assumes nothing else
// about retries, batching or rate limits.
type DeliveryProvider interface {
	Send(ctx context.Context, recipientEmail, subject, bodyHTML string) error
}

// New builds the provider selected by PROVIDER_KIND.
func New(cfg *config.Config) (DeliveryProvider, error) {
	switch cfg.Provider.Kind {
	case "log":
		return NewLogSender(), nil
	case "smtp":
		return NewSMTPSender(&cfg.SMTP)
	case "amqp":
		return NewAMQPSender(&cfg.AMQP)
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", cfg.Provider.Kind)
	}
}
