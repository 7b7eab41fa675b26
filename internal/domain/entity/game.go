package entity

import (
	"time"
)

// Game представляет этап матча со своим набором вопросов
type Game struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MatchID   uint       `gorm:"not null;index" json:"match_id"`
	Index     int        `gorm:"column:idx;not null;default:1" json:"index"`
	Ordered   bool       `gorm:"column:is_ordered;not null;default:true" json:"order"`
	Questions []Question `gorm:"foreignKey:GameID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}
