package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/mailpulse-backend/internal/model"
)

// SubscriberRepositoryInterface defines methods used by the handlers and
// the dispatcher's recipient resolution.
type SubscriberRepositoryInterface interface {
	UpsertByEmail(ctx context.Context, s *model.Subscriber) error
	ListRecent(ctx context.Context, limit int) ([]model.Subscriber, error)
	ListActive(ctx context.Context) ([]model.Subscriber, error)
}

// SubscriberRepository is the concrete implementation
type SubscriberRepository struct {
	DB *sql.DB
}

// UpsertByEmail inserts the subscriber or updates the existing row keyed
// on email. joined_at is set on first insert only and never mutated.
func (r *SubscriberRepository) UpsertByEmail(ctx context.Context, s *model.Subscriber) error {
	s.Status = model.SubscriberStatusActive
	query := `
        INSERT INTO subscribers (email, name, status, joined_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (email) DO UPDATE
        SET name = EXCLUDED.name, status = EXCLUDED.status
        RETURNING id, joined_at
    `
	return r.DB.QueryRowContext(ctx, query, s.Email, s.Name, s.Status).
		Scan(&s.ID, &s.JoinedAt)
}

// ListRecent fetches the latest subscribers by join time.
func (r *SubscriberRepository) ListRecent(ctx context.Context, limit int) ([]model.Subscriber, error) {
	query := `
        SELECT id, email, name, status, joined_at
        FROM subscribers
        ORDER BY joined_at DESC
        LIMIT $1
    `
	return r.querySubscribers(ctx, query, limit)
}

// ListActive resolves the recipient set for a dispatch pass. A store
// error is returned as-is; it must not be read as zero recipients.
func (r *SubscriberRepository) ListActive(ctx context.Context) ([]model.Subscriber, error) {
	query := `
        SELECT id, email, name, status, joined_at
        FROM subscribers
        WHERE status = $1
    `
	return r.querySubscribers(ctx, query, model.SubscriberStatusActive)
}

func (r *SubscriberRepository) querySubscribers(ctx context.Context, query string, args ...interface{}) ([]model.Subscriber, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []model.Subscriber{}
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Status, &s.JoinedAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, s)
	}
	return subscribers, rows.Err()
}

var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
