package models

import "time"

// Статусы заявки в друзья
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// Friend - модель для хранения дружбы между пользователями.
// Запись направленная (sender -> receiver), но после перехода в статус
// "accepted" связь симметрична: любая из сторон может быть "другом"
// относительно запрошенного пользователя.
type Friend struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64     `gorm:"index" json:"sender_id"`
	ReceiverID int64     `gorm:"index" json:"receiver_id"`
	Status     string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	AcceptedAt time.Time `json:"accepted_at,omitempty"`
}

func (Friend) TableName() string {
	return "friends"
}
