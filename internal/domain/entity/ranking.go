package entity

import (
	"time"
)

// Ranking представляет итоговый счёт пользователя в матче.
// Уникальный индекс (match_id, user_id) делает финализацию
// идемпотентной: повторная запись обновляет существующую строку.
type Ranking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MatchID   uint      `gorm:"not null;uniqueIndex:idx_match_user,priority:1" json:"match_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_match_user,priority:2" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score     float64   `gorm:"not null;default:0" json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Ranking) TableName() string {
	return "rankings"
}
