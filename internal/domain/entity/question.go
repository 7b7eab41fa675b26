package entity

import (
	"time"
)

// Question представляет вопрос. Вопрос без game_id — шаблон:
// он живёт в общем каталоге и привязывается к игре копированием.
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     *uint     `gorm:"index" json:"game_id,omitempty"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Text       string    `gorm:"size:500;not null" json:"text"`
	ContentURL *string   `gorm:"size:2048" json:"content_url,omitempty"`
	TimeSec    *int      `json:"time_sec,omitempty"`
	Boolean    bool      `gorm:"not null;default:false" json:"boolean"`
	Answers    []Answer  `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsTemplate — вопрос не привязан ни к одной игре
func (q *Question) IsTemplate() bool {
	return q.GameID == nil
}

// AnswerByID возвращает ответ вопроса по его ID, либо nil
func (q *Question) AnswerByID(id uint) *Answer {
	for i := range q.Answers {
		if q.Answers[i].ID == id {
			return &q.Answers[i]
		}
	}
	return nil
}

// Clone возвращает несохранённую копию вопроса вместе с ответами,
// готовую к привязке к игре. Используется при импорте шаблонов.
func (q *Question) Clone() *Question {
	copied := &Question{
		Position:   q.Position,
		Text:       q.Text,
		ContentURL: q.ContentURL,
		TimeSec:    q.TimeSec,
		Boolean:    q.Boolean,
		Answers:    make([]Answer, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		copied.Answers = append(copied.Answers, Answer{
			Position:  a.Position,
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			Level:     a.Level,
		})
	}
	return copied
}
