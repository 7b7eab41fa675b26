package entity

import (
	"time"
)

// Answer представляет вариант ответа на вопрос.
// Level — вес ответа, учитывается функцией подсчёта очков.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Text       string    `gorm:"size:3000;not null" json:"text"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	Level      int       `gorm:"not null;default:0" json:"level"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
