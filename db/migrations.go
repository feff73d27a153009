package db

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateFriendStatusIndexes создает индексы под запросы резолвера дружбы:
// выборка принятых связей идет по (status, sender_id) и (status, receiver_id)
func CreateFriendStatusIndexes(db *gorm.DB) error {
	indexes := map[string]string{
		"idx_friends_status_sender":   "CREATE INDEX IF NOT EXISTS idx_friends_status_sender ON friends (status, sender_id);",
		"idx_friends_status_receiver": "CREATE INDEX IF NOT EXISTS idx_friends_status_receiver ON friends (status, receiver_id);",
		"idx_events_host":             "CREATE INDEX IF NOT EXISTS idx_events_host ON events (host_id, starts_at);",
	}
	for name, sql := range indexes {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", name, err)
		}
	}
	return nil
}
