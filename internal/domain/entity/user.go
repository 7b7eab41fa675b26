package entity

import (
	"time"
)

// User представляет игрока. Подписанный игрок имеет дайджесты e-mail
// и приватного токена; неподписанный создаётся на лету при входе в
// публичный матч.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	EmailDigest *string   `gorm:"size:64;index" json:"-"`
	TokenDigest *string   `gorm:"size:64" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsSigned — игрок вошёл по e-mail и токену ограниченного матча
func (u *User) IsSigned() bool {
	return u.EmailDigest != nil
}
