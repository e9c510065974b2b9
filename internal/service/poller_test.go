package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/unclebandit/mailpulse-backend/internal/model"
	"github.com/unclebandit/mailpulse-backend/internal/service"
)

type mockDueRepo struct {
	mockCampaignRepo
	due    []*model.Campaign
	dueErr error
	asOf   time.Time
}

func (m *mockDueRepo) ListDue(ctx context.Context, now time.Time) ([]*model.Campaign, error) {
	m.asOf = now
	return m.due, m.dueErr
}

type mockDispatcher struct {
	dispatched []int
	failFor    map[int]bool
}

func (m *mockDispatcher) Dispatch(ctx context.Context, campaign *model.Campaign) (*service.DispatchResult, error) {
	m.dispatched = append(m.dispatched, campaign.ID)
	if m.failFor[campaign.ID] {
		return nil, errors.New("commit failed")
	}
	return &service.DispatchResult{CampaignID: campaign.ID, Committed: true}, nil
}

func TestRunOnceDispatchesDueCampaignsInOrder(t *testing.T) {
	repo := &mockDueRepo{due: []*model.Campaign{
		{ID: 1, Name: "first"},
		{ID: 2, Name: "second"},
	}}
	d := &mockDispatcher{}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: d, Interval: time.Minute}

	p.RunOnce(context.Background())

	if len(d.dispatched) != 2 || d.dispatched[0] != 1 || d.dispatched[1] != 2 {
		t.Fatalf("expected campaigns [1 2] dispatched in order, got %v", d.dispatched)
	}
	if repo.asOf.IsZero() {
		t.Error("due query should be bounded by the current time")
	}
}

func TestRunOnceNoDueCampaignsIsANoOp(t *testing.T) {
	repo := &mockDueRepo{}
	d := &mockDispatcher{}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: d, Interval: time.Minute}

	p.RunOnce(context.Background())

	if len(d.dispatched) != 0 {
		t.Errorf("expected no dispatches, got %v", d.dispatched)
	}
}

func TestRunOnceDueQueryErrorSkipsTick(t *testing.T) {
	repo := &mockDueRepo{dueErr: errors.New("store unavailable")}
	d := &mockDispatcher{}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: d, Interval: time.Minute}

	p.RunOnce(context.Background())

	if len(d.dispatched) != 0 {
		t.Errorf("expected no dispatches on query error, got %v", d.dispatched)
	}
}

func TestRunOnceContinuesAfterDispatchFailure(t *testing.T) {
	repo := &mockDueRepo{due: []*model.Campaign{
		{ID: 1}, {ID: 2},
	}}
	d := &mockDispatcher{failFor: map[int]bool{1: true}}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: d, Interval: time.Minute}

	p.RunOnce(context.Background())

	if len(d.dispatched) != 2 {
		t.Fatalf("a failed campaign must not block the rest of the pass, got %v", d.dispatched)
	}
}

func TestRunOnceStopsWhenContextCancelled(t *testing.T) {
	repo := &mockDueRepo{due: []*model.Campaign{{ID: 1}, {ID: 2}}}
	d := &mockDispatcher{}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: d, Interval: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.RunOnce(ctx)

	if len(d.dispatched) != 0 {
		t.Errorf("cancelled pass should not dispatch, got %v", d.dispatched)
	}
}

func TestPollerStartStop(t *testing.T) {
	repo := &mockDueRepo{}
	p := &service.Poller{CampaignRepo: repo, Dispatcher: &mockDispatcher{}, Interval: time.Hour}

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := p.Start(); err == nil {
		t.Error("double Start() should return an error")
	}

	p.Stop()
	// Stop again is a no-op.
	p.Stop()
}
