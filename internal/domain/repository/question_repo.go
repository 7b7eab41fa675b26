package repository

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	// GetByID возвращает вопрос с ответами
	GetByID(id uint) (*entity.Question, error)
	GetManyByIDs(ids []uint) ([]entity.Question, error)
	GetByGameID(gameID uint) ([]entity.Question, error)
	// ListTemplates возвращает вопросы каталога (без привязки к игре)
	ListTemplates(limit, offset int) ([]entity.Question, int64, error)
	Update(question *entity.Question) error
	Delete(id uint) error
}
