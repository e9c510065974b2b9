// internal/service/campaign_service.go
package service

import (
	"context"
	"time"

	"github.com/unclebandit/mailpulse-backend/internal/model"
	"github.com/unclebandit/mailpulse-backend/internal/repository"
)

// DefaultScheduleDelay is applied when a campaign is created without an
// explicit schedule time.
const DefaultScheduleDelay = 5 * time.Minute

// CampaignService covers the management side of campaigns. The dispatcher
// owns the pending -> completed transition; this service never touches
// status, sent_on or sent_count after creation.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
}

// CreateCampaign stores a new pending campaign. A zero scheduleTime is
// defaulted to now plus DefaultScheduleDelay.
func (s *CampaignService) CreateCampaign(ctx context.Context, name, subject, bodyHTML string, scheduleTime time.Time) (*model.Campaign, error) {
	if scheduleTime.IsZero() {
		scheduleTime = time.Now().UTC().Add(DefaultScheduleDelay)
	}

	c := &model.Campaign{
		Name:         name,
		Subject:      subject,
		BodyHTML:     bodyHTML,
		ScheduleTime: scheduleTime,
		Status:       model.CampaignStatusPending,
	}

	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCampaigns returns all campaigns sorted by schedule time descending.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	ptrs, err := s.CampaignRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}
	return campaigns, nil
}

// DeleteCampaign removes a campaign that is still pending. Once dispatch
// has claimed it the delete reports not found.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id int) error {
	return s.CampaignRepo.DeletePending(ctx, id)
}
