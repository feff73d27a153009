package models

import (
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Email        string    `gorm:"size:255;uniqueIndex" json:"email"`
	Bio          string    `gorm:"size:1000" json:"bio"`
	Avatar       string    `gorm:"size:512" json:"avatar"`
	Interests    string    `gorm:"size:1000" json:"interests"`
	Password     string    `gorm:"size:255" json:"-"`
	RefreshToken string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser - публичная проекция пользователя без чувствительных полей.
// Все выдачи поиска и профиля типизированы этой структурой, поэтому пароль
// и refresh token не могут попасть в ответ.
type PublicUser struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Interests string    `json:"interests"`
	CreatedAt time.Time `json:"created_at"`
}

// Public - публичная проекция записи пользователя
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Interests: u.Interests,
		CreatedAt: u.CreatedAt,
	}
}

type UserTokens struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index:user_token_idx,unique" json:"user_id"`
	Token  string `gorm:"size:255;index:user_token_idx,unique" json:"token"`
}

func (UserTokens) TableName() string {
	return "user_tokens"
}

type Migration struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:60;uniqueIndex" json:"name"`
	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`
}
