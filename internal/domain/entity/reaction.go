package entity

import (
	"time"
)

// Reaction представляет факт показа вопроса игроку и, после ответа,
// его результат. Запись создаётся в момент показа вопроса (ещё до
// ответа) и затем дополняется ответом и очками; она никогда не
// удаляется. Уникальный индекс (user_id, match_id, question_id)
// гарантирует не более одной реакции на вопрос в рамках матча.
type Reaction struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_user_match_question,priority:1" json:"user_id"`
	MatchID    uint       `gorm:"not null;uniqueIndex:idx_user_match_question,priority:2" json:"match_id"`
	QuestionID uint       `gorm:"not null;uniqueIndex:idx_user_match_question,priority:3" json:"question_id"`
	GameID     uint       `gorm:"not null;index" json:"game_id"`
	AnswerID   *uint      `json:"answer_id,omitempty"`
	Score      *float64   `json:"score,omitempty"`
	Starter    bool       `gorm:"not null;default:false" json:"starter"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	Question   Question   `gorm:"foreignKey:QuestionID" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Reaction) TableName() string {
	return "reactions"
}

// Answered — на показанный вопрос уже дан ответ (или пропуск)
func (r *Reaction) Answered() bool {
	return r.AnsweredAt != nil
}
