package models

import "time"

// Event - событие, у каждого ровно один организатор (host)
type Event struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HostID      int64     `gorm:"index" json:"host_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	Location    string    `gorm:"size:512" json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// Participation - участие пользователя в событии.
// Таблица-связка, для запросов используется как lookup по user_id.
type Participation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index:participation_user_event_idx,unique" json:"user_id"`
	EventID   int64     `gorm:"index:participation_user_event_idx,unique" json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Participation) TableName() string {
	return "participations"
}
