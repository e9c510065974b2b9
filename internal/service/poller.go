// internal/service/poller.go
package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/unclebandit/mailpulse-backend/internal/model"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
)

// CampaignDispatcher is what the poll loop needs from the dispatcher.
type CampaignDispatcher interface {
	Dispatch(ctx context.Context, campaign *model.Campaign) (*DispatchResult, error)
}

// Poller discovers due campaigns on a fixed interval and dispatches them
// one at a time. A single process owns scheduling; the conditional commit
// in the dispatcher covers accidental overlap anyway.
type Poller struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Dispatcher   CampaignDispatcher
	Interval     time.Duration

	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// Start begins the interval loop. The first tick fires one interval after
// start, matching the fixed-period sweep semantics.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("poller already running")
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	spec := "@every " + p.Interval.String()
	if _, err := p.cron.AddFunc(spec, func() { p.RunOnce(p.ctx) }); err != nil {
		return fmt.Errorf("invalid poll interval %v: %w", p.Interval, err)
	}

	p.running = true
	p.cron.Start()
	log.Printf("🚀 Scheduler polling every %v", p.Interval)
	return nil
}

// Stop cancels the in-flight pass and waits for it to return. No new pass
// starts after Stop.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	p.cancel()
	<-p.cron.Stop().Done()
	log.Println("Scheduler stopped.")
}

// RunOnce performs one sweep: query due campaigns and dispatch each
// sequentially. Errors are logged, never fatal; a campaign that fails to
// commit stays pending and is rediscovered next tick.
func (p *Poller) RunOnce(ctx context.Context) {
	now := time.Now().UTC()
	log.Printf("[%s] Scheduler checking for due campaigns...", now.Format("15:04:05 MST"))

	due, err := p.CampaignRepo.ListDue(ctx, now)
	if err != nil {
		log.Printf("⚠️ failed to query due campaigns: %v", err)
		return
	}
	if len(due) == 0 {
		log.Println("No campaigns found to send.")
		return
	}

	for _, campaign := range due {
		if ctx.Err() != nil {
			log.Println("Scheduler stopping, abandoning remaining campaigns in this pass.")
			return
		}

		log.Printf("--- Processing campaign: %s (ID: %d) ---", campaign.Name, campaign.ID)
		result, err := p.Dispatcher.Dispatch(ctx, campaign)
		if err != nil {
			log.Printf("⚠️ campaign %d not committed, will retry next tick: %v", campaign.ID, err)
			continue
		}
		if result.Committed {
			log.Printf("Campaign %q COMPLETED. Sent %d emails.", campaign.Name, result.SentCount)
		}
	}
}
