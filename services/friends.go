package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gather/models"

	"gorm.io/gorm"
)

// FriendService - жизненный цикл заявок в друзья.
// Статусы: pending -> accepted | rejected, отклоненную заявку можно
// отправить повторно.
type FriendService struct {
	db *gorm.DB
}

func NewFriendService(database *gorm.DB) *FriendService {
	return &FriendService{db: database}
}

// SendRequest - создать заявку в друзья
func (s *FriendService) SendRequest(ctx context.Context, senderID, receiverID int64) error {
	if senderID <= 0 || receiverID <= 0 {
		return NewValidationError("invalid user ID")
	}
	if senderID == receiverID {
		return NewValidationError("cannot add yourself as friend")
	}

	// Оба пользователя должны существовать
	var userCount int64
	err := s.db.Model(&models.User{}).Where("id IN ?", []int64{senderID, receiverID}).Count(&userCount).Error
	if err != nil {
		return fmt.Errorf("failed to check users: %w", err)
	}
	if userCount != 2 {
		return NewNotFoundError("one or both users do not exist")
	}

	// Проверка на существование связи в любом направлении
	var existing models.Friend
	err = s.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		senderID, receiverID, receiverID, senderID,
	).First(&existing).Error

	if err == nil {
		switch existing.Status {
		case models.FriendStatusAccepted:
			return NewValidationError("users are already friends")
		case models.FriendStatusPending:
			return NewValidationError("friend request already pending")
		default:
			// Отклоненная заявка: возвращаем в pending от нового отправителя
			existing.SenderID = senderID
			existing.ReceiverID = receiverID
			existing.Status = models.FriendStatusPending
			existing.CreatedAt = time.Now()
			existing.AcceptedAt = time.Time{}
			if err := s.db.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to renew friend request: %w", err)
			}
			s.notifyRequestChange(ctx, receiverID, "friend_request", "new friend request")
			return nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check friendship: %w", err)
	}

	friend := models.Friend{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.FriendStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.db.Create(&friend).Error; err != nil {
		return fmt.Errorf("failed to create friend request: %w", err)
	}

	s.notifyRequestChange(ctx, receiverID, "friend_request", "new friend request")
	return nil
}

// AcceptRequest - принять входящую заявку
func (s *FriendService) AcceptRequest(ctx context.Context, userID, senderID int64) error {
	if userID <= 0 || senderID <= 0 {
		return NewValidationError("invalid user ID")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var friend models.Friend
		err := tx.Where(
			"sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, userID, models.FriendStatusPending,
		).First(&friend).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewNotFoundError("friend request not found")
			}
			return fmt.Errorf("failed to find friend request: %w", err)
		}

		friend.Status = models.FriendStatusAccepted
		friend.AcceptedAt = time.Now()
		return tx.Save(&friend).Error
	})
	if err != nil {
		return err
	}

	// Счетчик входящих заявок меняется у получателя, уведомление - отправителю
	InvalidateCounter(ctx, FriendRequestsKey(userID))
	_ = PublishNotifyEvent(ctx, NotifyEvent{
		UserID:     senderID,
		NotifyType: "friend_accepted",
		Message:    "friend request accepted",
		CreatedAt:  time.Now(),
	})
	return nil
}

// RejectRequest - отклонить входящую заявку
func (s *FriendService) RejectRequest(ctx context.Context, userID, senderID int64) error {
	if userID <= 0 || senderID <= 0 {
		return NewValidationError("invalid user ID")
	}

	result := s.db.Model(&models.Friend{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?", senderID, userID, models.FriendStatusPending).
		Update("status", models.FriendStatusRejected)
	if result.Error != nil {
		return fmt.Errorf("failed to reject friend request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("friend request not found")
	}

	InvalidateCounter(ctx, FriendRequestsKey(userID))
	return nil
}

// Unfriend - удалить дружбу или заявку между пользователями
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID int64) error {
	if userID <= 0 || friendID <= 0 {
		return NewValidationError("invalid user ID")
	}

	result := s.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, friendID, friendID, userID,
	).Delete(&models.Friend{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete friendship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("friendship not found")
	}

	InvalidateCounter(ctx, FriendRequestsKey(userID))
	InvalidateCounter(ctx, FriendRequestsKey(friendID))
	return nil
}

// ListFriends возвращает публичные профили принятых друзей пользователя
func (s *FriendService) ListFriends(userID int64) ([]models.PublicUser, error) {
	social := NewSocialService(s.db)
	friendIDs, err := social.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.PublicUser{}, nil
	}

	var friends []models.User
	if err := s.db.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	return publicProjections(friends), nil
}

// PendingRequests возвращает отправителей входящих заявок
func (s *FriendService) PendingRequests(userID int64) ([]models.PublicUser, error) {
	var senders []models.User
	err := s.db.
		Model(&models.User{}).
		Joins("JOIN friends f ON f.sender_id = users.id").
		Where("f.receiver_id = ? AND f.status = ?", userID, models.FriendStatusPending).
		Find(&senders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}
	return publicProjections(senders), nil
}

// PendingRequestCount - количество входящих заявок, с кешем в Redis
func (s *FriendService) PendingRequestCount(ctx context.Context, userID int64) (int64, error) {
	key := FriendRequestsKey(userID)
	if count, ok := GetCachedCounter(ctx, key); ok {
		return count, nil
	}

	var count int64
	err := s.db.Model(&models.Friend{}).
		Where("receiver_id = ? AND status = ?", userID, models.FriendStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending requests: %w", err)
	}

	SetCachedCounter(ctx, key, count)
	return count, nil
}

// notifyRequestChange сбрасывает кеш счетчика получателя и шлет уведомление
func (s *FriendService) notifyRequestChange(ctx context.Context, receiverID int64, notifyType, message string) {
	InvalidateCounter(ctx, FriendRequestsKey(receiverID))
	_ = PublishNotifyEvent(ctx, NotifyEvent{
		UserID:     receiverID,
		NotifyType: notifyType,
		Message:    message,
		CreatedAt:  time.Now(),
	})
}
