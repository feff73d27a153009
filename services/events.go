package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gather/models"

	"gorm.io/gorm"
)

// EventService - события и участие в них
type EventService struct {
	db *gorm.DB
}

func NewEventService(database *gorm.DB) *EventService {
	return &EventService{db: database}
}

// CreateEvent создает событие с организатором hostID
func (s *EventService) CreateEvent(ctx context.Context, hostID int64, title, description, location string, startsAt time.Time) (*models.Event, error) {
	if title == "" {
		return nil, NewValidationError("event title is required")
	}

	var hostCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", hostID).Count(&hostCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check host: %w", err)
	}
	if hostCount == 0 {
		return nil, NewNotFoundError("host user not found")
	}

	event := models.Event{
		HostID:      hostID,
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	InvalidateCounter(ctx, HostedEventsKey(hostID))
	return &event, nil
}

// GetEvent возвращает событие по идентификатору
func (s *EventService) GetEvent(eventID int64) (*models.Event, error) {
	var event models.Event
	err := s.db.First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// ListEvents возвращает события в порядке начала, с ограничением выборки
func (s *EventService) ListEvents(limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	events := make([]models.Event, 0)
	err := s.db.Order("starts_at, id").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// CountHostedEvents - количество событий пользователя, с кешем в Redis
func (s *EventService) CountHostedEvents(ctx context.Context, hostID int64) (int64, error) {
	key := HostedEventsKey(hostID)
	if count, ok := GetCachedCounter(ctx, key); ok {
		return count, nil
	}

	var count int64
	if err := s.db.Model(&models.Event{}).Where("host_id = ?", hostID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count hosted events: %w", err)
	}

	SetCachedCounter(ctx, key, count)
	return count, nil
}

// Join создает запись об участии пользователя в событии
func (s *EventService) Join(ctx context.Context, userID, eventID int64) error {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewNotFoundError("event not found")
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	var existing int64
	err := s.db.Model(&models.Participation{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to check participation: %w", err)
	}
	if existing > 0 {
		return NewValidationError("already participating in this event")
	}

	participation := models.Participation{
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&participation).Error; err != nil {
		return fmt.Errorf("failed to create participation: %w", err)
	}

	_ = PublishNotifyEvent(ctx, NotifyEvent{
		UserID:     event.HostID,
		NotifyType: "event_joined",
		Message:    fmt.Sprintf("new participant in event %q", event.Title),
		CreatedAt:  time.Now(),
	})
	return nil
}

// Leave удаляет запись об участии
func (s *EventService) Leave(ctx context.Context, userID, eventID int64) error {
	result := s.db.Where("user_id = ? AND event_id = ?", userID, eventID).Delete(&models.Participation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete participation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFoundError("participation not found")
	}
	return nil
}

// Participants возвращает публичные профили участников события
func (s *EventService) Participants(eventID int64) ([]models.PublicUser, error) {
	var count int64
	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if count == 0 {
		return nil, NewNotFoundError("event not found")
	}

	var users []models.User
	err := s.db.
		Model(&models.User{}).
		Joins("JOIN participations p ON p.user_id = users.id").
		Where("p.event_id = ?", eventID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return publicProjections(users), nil
}
