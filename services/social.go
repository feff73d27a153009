package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gather/models"

	"gorm.io/gorm"
)

// SocialService - запросы по социальному графу: друзья, поиск, сводный профиль.
// Хранилища не модифицируются (кроме UpdateProfile), только композиция чтений.
// Хэндл БД передается при создании, чтобы в тестах подставлять in-memory базу.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(database *gorm.DB) *SocialService {
	return &SocialService{db: database}
}

// Спецсимволы LIKE экранируются, чтобы запрос трактовался как буквальная
// подстрока: "%" или "_" в поисковой строке не должны матчить все подряд
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// ProfileView - сводный профиль: публичная проекция пользователя,
// организуемые им события и запись об участии (может отсутствовать)
type ProfileView struct {
	User          models.PublicUser     `json:"user"`
	HostedEvents  []models.Event        `json:"hosted_events"`
	Participation *models.Participation `json:"participation,omitempty"`
}

// ProfileUpdate - частичное обновление профиля.
// nil означает "не менять", пустой набор полей - ошибка валидации.
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
	Interests *string `json:"interests"`
}

// GetFriendIDs возвращает идентификаторы принятых друзей пользователя.
// Связь симметрична: пользователь может быть любой из сторон записи,
// другом считается противоположная сторона. Пустой результат - не ошибка.
func (s *SocialService) GetFriendIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := s.db.
		Model(&models.Friend{}).
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userID, userID, models.FriendStatusAccepted).
		Select("CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END", userID).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friends: %w", err)
	}

	// Дубликаты убираем на случай, если у пары оказалось несколько
	// принятых записей; себя в выдачу не включаем
	seen := make(map[int64]bool, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == userID || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result, nil
}

// SearchFriends ищет среди друзей пользователя по подстроке имени или email.
// Регистр не учитывается, пустой запрос - ошибка валидации.
func (s *SocialService) SearchFriends(userID int64, query string) ([]models.PublicUser, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required")
	}

	friendIDs, err := s.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(friendIDs) == 0 {
		return []models.PublicUser{}, nil
	}

	var friends []models.User
	pattern := likePattern(query)
	err = s.db.
		Model(&models.User{}).
		Where("id IN ?", friendIDs).
		Where(`LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`, pattern, pattern).
		Find(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search friends: %w", err)
	}

	return publicProjections(friends), nil
}

// SearchUsers ищет по всем пользователям по подстроке имени или email,
// исключая самого запрашивающего
func (s *SocialService) SearchUsers(userID int64, query string) ([]models.PublicUser, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, NewValidationError("search query is required")
	}

	var users []models.User
	pattern := likePattern(query)
	err := s.db.
		Model(&models.User{}).
		Where(`LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`, pattern, pattern).
		Where("id != ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	return publicProjections(users), nil
}

// GetProfile собирает сводный профиль пользователя. Падает с NotFoundError
// только основная выборка пользователя; события и участие при ошибке
// деградируют до пустых значений, а отсутствие участия ошибкой не является.
func (s *SocialService) GetProfile(userID int64) (*ProfileView, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	hostedEvents := make([]models.Event, 0)
	if err := s.db.Where("host_id = ?", userID).Find(&hostedEvents).Error; err != nil {
		log.Printf("failed to get hosted events for user %d: %v", userID, err)
		hostedEvents = make([]models.Event, 0)
	}

	var participation *models.Participation
	var record models.Participation
	err = s.db.Where("user_id = ?", userID).First(&record).Error
	if err == nil {
		participation = &record
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("failed to get participation for user %d: %v", userID, err)
	}

	return &ProfileView{
		User:          user.Public(),
		HostedEvents:  hostedEvents,
		Participation: participation,
	}, nil
}

// UpdateProfile применяет частичное обновление разрешенных полей профиля
// и возвращает обновленную публичную проекцию
func (s *SocialService) UpdateProfile(userID int64, patch ProfileUpdate) (*models.PublicUser, error) {
	updates := map[string]interface{}{}
	if patch.FullName != nil {
		updates["full_name"] = *patch.FullName
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.Avatar != nil {
		updates["avatar"] = *patch.Avatar
	}
	if patch.Interests != nil {
		updates["interests"] = *patch.Interests
	}

	if len(updates) == 0 {
		return nil, NewValidationError("no valid fields provided for update")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

func publicProjections(users []models.User) []models.PublicUser {
	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		result = append(result, u.Public())
	}
	return result
}
