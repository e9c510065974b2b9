// internal/service/dispatcher.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/unclebandit/mailpulse-backend/internal/metrics"
	"github.com/unclebandit/mailpulse-backend/internal/model"
	"github.com/unclebandit/mailpulse-backend/internal/provider"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
)

// Dispatcher runs one full pass over a due campaign: resolve active
// subscribers, send to each, then commit pending -> completed with a
// conditional write. Sends happen before the commit, never after, so a
// lost commit race can at worst duplicate sends (at-least-once delivery).
type Dispatcher struct {
	CampaignRepo   repository.CampaignRepositoryInterface
	SubscriberRepo repository.SubscriberRepositoryInterface
	Provider       provider.DeliveryProvider
	SendTimeout    time.Duration
}

// DispatchResult summarizes one pass.
type DispatchResult struct {
	CampaignID int
	Recipients int
	SentCount  int
	Committed  bool
}

// Dispatch processes a single campaign. A returned error means the
// campaign was not committed and stays pending; the next poll tick picks
// it up again. Per-recipient provider failures are logged and skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, campaign *model.Campaign) (*DispatchResult, error) {
	start := time.Now()

	subscribers, err := d.SubscriberRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients for campaign %d: %w", campaign.ID, err)
	}

	sent := 0
	for _, sub := range subscribers {
		if err := d.send(ctx, sub.Email, campaign); err != nil {
			log.Printf("⚠️ campaign %d: failed to send to %s: %v", campaign.ID, sub.Email, err)
			metrics.RecordEmail("failed")
			continue
		}
		metrics.RecordEmail("sent")
		sent++
	}

	ok, err := d.CampaignRepo.MarkCompleted(ctx, campaign.ID, time.Now().UTC(), sent)
	if err != nil {
		return nil, fmt.Errorf("failed to commit campaign %d: %w", campaign.ID, err)
	}
	if !ok {
		// Another scheduler won the pending->completed transition; our
		// tally is dropped.
		log.Printf("campaign %d already completed by another scheduler, dropping result", campaign.ID)
		metrics.RecordDispatch("lost_race", time.Since(start).Seconds())
	} else {
		metrics.RecordDispatch("committed", time.Since(start).Seconds())
	}

	return &DispatchResult{
		CampaignID: campaign.ID,
		Recipients: len(subscribers),
		SentCount:  sent,
		Committed:  ok,
	}, nil
}

// send bounds one provider call so a hung recipient cannot stall the pass.
func (d *Dispatcher) send(ctx context.Context, email string, campaign *model.Campaign) error {
	if d.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.SendTimeout)
		defer cancel()
	}
	return d.Provider.Send(ctx, email, campaign.Subject, campaign.BodyHTML)
}
