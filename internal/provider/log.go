// internal/provider/log.go
package provider

import (
	"context"
	"log"
)

// LogSender writes the send to the process log and reports success. It is
// the default provider for local development and demos.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, recipientEmail, subject, bodyHTML string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("  --> SENDING: %q to %s", subject, recipientEmail)
	return nil
}
