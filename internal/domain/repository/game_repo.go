package repository

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// GameRepository определяет методы для работы с играми матча
type GameRepository interface {
	Create(game *entity.Game) error
	// GetByID возвращает игру с вопросами и ответами
	GetByID(id uint) (*entity.Game, error)
	GetByMatchID(matchID uint) ([]entity.Game, error)
	Update(game *entity.Game) error
	Delete(id uint) error
}
