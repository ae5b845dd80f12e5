package model

import "time"

// ActivityRecord is one entry in the asynchronous audit trail. Records are
// published to the broker on auth and todo mutations and persisted by the
// activity worker.
type ActivityRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:64;not null;index" json:"action"`
	Detail    string    `gorm:"size:255" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
