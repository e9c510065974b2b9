package repository

import (
	"context"
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/mailpulse-backend/internal/errors"
	"github.com/unclebandit/mailpulse-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id int) (*model.Campaign, error)
	ListAll(ctx context.Context) ([]*model.Campaign, error)
	ListDue(ctx context.Context, now time.Time) ([]*model.Campaign, error)
	MarkCompleted(ctx context.Context, id int, sentOn time.Time, sentCount int) (bool, error)
	DeletePending(ctx context.Context, id int) error
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, subject, body_html, schedule_time, status, created_at, sent_on, sent_count`

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	c.CreatedAt = time.Now().UTC()
	if c.Status == "" {
		c.Status = model.CampaignStatusPending
	}
	query := `
        INSERT INTO campaigns (name, subject, body_html, schedule_time, status, created_at, sent_count)
        VALUES ($1, $2, $3, $4, $5, $6, 0)
        RETURNING id
    `
	return r.DB.QueryRowContext(ctx, query,
		c.Name, c.Subject, c.BodyHTML, c.ScheduleTime, c.Status, c.CreatedAt,
	).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	var c model.Campaign
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Subject, &c.BodyHTML, &c.ScheduleTime,
		&c.Status, &c.CreatedAt, &c.SentOn, &c.SentCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every campaign, newest schedule first.
func (r *CampaignRepository) ListAll(ctx context.Context) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY schedule_time DESC`
	return r.queryCampaigns(ctx, query)
}

// ListDue returns pending campaigns whose schedule time has passed,
// oldest first so a backlog drains in schedule order.
func (r *CampaignRepository) ListDue(ctx context.Context, now time.Time) ([]*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + `
        FROM campaigns
        WHERE status=$1 AND schedule_time <= $2
        ORDER BY schedule_time ASC`
	return r.queryCampaigns(ctx, query, model.CampaignStatusPending, now)
}

func (r *CampaignRepository) queryCampaigns(ctx context.Context, query string, args ...interface{}) ([]*model.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c := &model.Campaign{}
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Subject, &c.BodyHTML, &c.ScheduleTime,
			&c.Status, &c.CreatedAt, &c.SentOn, &c.SentCount,
		); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// MarkCompleted is the conditional commit at the end of a dispatch pass.
// The status guard in the WHERE clause means a campaign already claimed by
// a racing scheduler is not written twice; the loser sees ok=false.
func (r *CampaignRepository) MarkCompleted(ctx context.Context, id int, sentOn time.Time, sentCount int) (bool, error) {
	query := `
        UPDATE campaigns
        SET status=$1, sent_on=$2, sent_count=$3
        WHERE id=$4 AND status=$5
    `
	res, err := r.DB.ExecContext(ctx, query,
		model.CampaignStatusCompleted, sentOn, sentCount,
		id, model.CampaignStatusPending,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// DeletePending removes a campaign only while it is still pending. A
// completed or missing campaign both come back as not found.
func (r *CampaignRepository) DeletePending(ctx context.Context, id int) error {
	query := `DELETE FROM campaigns WHERE id=$1 AND status=$2`
	res, err := r.DB.ExecContext(ctx, query, id, model.CampaignStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
