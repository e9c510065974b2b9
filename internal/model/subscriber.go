// internal/model/subscriber.go
package model

import "time"

// SubscriberStatusActive is the only status the service writes today;
// other values are reserved for unsubscribe support.
const SubscriberStatusActive = "active"

type Subscriber struct {
	ID       int       `db:"id" json:"id,string"`
	Email    string    `db:"email" json:"email"`
	Name     string    `db:"name" json:"name"`
	Status   string    `db:"status" json:"status"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
