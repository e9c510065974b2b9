// internal/model/campaign.go
package model

import "time"

const (
	CampaignStatusPending   = "pending"
	CampaignStatusCompleted = "completed"
)

// Campaign is a one-shot bulk email job. The scheduler owns the single
// pending -> completed transition; sent_on and sent_count are written
// exactly once, by that transition.
type Campaign struct {
	ID           int        `db:"id" json:"id,string"`
	Name         string     `db:"name" json:"name"`
	Subject      string     `db:"subject" json:"subject"`
	BodyHTML     string     `db:"body_html" json:"body_html"`
	ScheduleTime time.Time  `db:"schedule_time" json:"schedule_time"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	SentOn       *time.Time `db:"sent_on" json:"sent_on,omitempty"`
	SentCount    int        `db:"sent_count" json:"sent_count"`
}
