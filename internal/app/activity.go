package app

import (
	"context"
	"log"
	"time"

	"gotodo/internal/model"
)

// publishActivity is best effort: the audit trail never fails a request and
// is skipped entirely when no broker is configured.
func publishActivity(publisher ActivityPublisher, userID uint, action, detail string) {
	if publisher == nil {
		return
	}
	record := model.ActivityRecord{
		UserID:    userID,
		Action:    action,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := publisher.Publish(context.Background(), record); err != nil {
		log.Printf("publish activity %s failed: %v", action, err)
	}
}
