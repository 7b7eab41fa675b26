package entity

import (
	"time"
)

// Match представляет матч — упорядоченный набор игр, который игрок
// проходит последовательно. Позиция игрока нигде не хранится: она
// восстанавливается из реакций при каждом запросе.
type Match struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	UHash        *string    `gorm:"size:8;uniqueIndex" json:"uhash,omitempty"`
	Code         *string    `gorm:"size:4;index" json:"code,omitempty"`
	Password     *string    `gorm:"size:64" json:"-"`
	IsRestricted bool       `gorm:"not null;default:false" json:"is_restricted"`
	Ordered      bool       `gorm:"column:is_ordered;not null;default:true" json:"order"`
	Times        int        `gorm:"not null;default:1" json:"times"`
	FromTime     time.Time  `gorm:"not null" json:"from_time"`
	ToTime       *time.Time `json:"to_time,omitempty"`
	Games        []Game     `gorm:"foreignKey:MatchID" json:"games,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Match) TableName() string {
	return "matches"
}

// IsActiveAt проверяет, доступен ли матч для игры в момент t
func (m *Match) IsActiveAt(t time.Time) bool {
	if t.Before(m.FromTime) {
		return false
	}
	if m.ToTime != nil && t.After(*m.ToTime) {
		return false
	}
	return true
}

// IsOpen — матч без даты окончания
func (m *Match) IsOpen() bool {
	return m.ToTime == nil
}

// UnlimitedTries — матч можно начинать неограниченное число раз
func (m *Match) UnlimitedTries() bool {
	return m.Times == 0
}
