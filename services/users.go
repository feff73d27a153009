package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gather/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

// AuthService - регистрация и вход. Пароль хранится как argon2id-хэш
// в формате hex(salt)$hex(hash).
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(database *gorm.DB) *AuthService {
	return &AuthService{db: database}
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(password, stored string) error {
	parts := strings.Split(stored, "$")
	if len(parts) != 2 {
		return errors.New("invalid password format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	if hex.EncodeToString(hash) != parts[1] {
		return errors.New("invalid password")
	}
	return nil
}

// Register создает пользователя, email должен быть уникален
func (s *AuthService) Register(fullName, email, password string) (int64, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if fullName == "" || email == "" || password == "" {
		return 0, NewValidationError("full name, email and password are required")
	}

	var alreadyExists int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&alreadyExists).Error; err != nil {
		return 0, fmt.Errorf("failed to check email: %w", err)
	}
	if alreadyExists > 0 {
		return 0, NewValidationError("user with this email already exists")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	user := models.User{
		FullName: fullName,
		Email:    email,
		Password: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return user.ID, nil
}

// Login проверяет пароль и выдает новый токен, старые токены удаляются
func (s *AuthService) Login(email, password string) (int64, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", NewNotFoundError("user not found")
		}
		return 0, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := verifyPassword(password, user.Password); err != nil {
		return 0, "", NewValidationError("invalid email or password")
	}

	if err := s.Logout(user.ID); err != nil {
		return 0, "", err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return 0, "", err
	}
	token := hex.EncodeToString(tokenBytes)

	err = s.db.Create(&models.UserTokens{
		UserID: user.ID,
		Token:  token,
	}).Error
	if err != nil {
		return 0, "", fmt.Errorf("failed to store token: %w", err)
	}
	return user.ID, token, nil
}

// Logout удаляет все токены пользователя
func (s *AuthService) Logout(userID int64) error {
	err := s.db.Where("user_id = ?", userID).Delete(&models.UserTokens{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}

// ResolveToken возвращает идентификатор пользователя по токену
func (s *AuthService) ResolveToken(token string) (int64, error) {
	if token == "" {
		return 0, NewValidationError("token is empty")
	}
	var userToken models.UserTokens
	err := s.db.Where("token = ?", token).First(&userToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, NewNotFoundError("token not found")
		}
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}
	return userToken.UserID, nil
}
