package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create сохраняет игру
func (r *GameRepo) Create(game *entity.Game) error {
	return r.db.Create(game).Error
}

// GetByID возвращает игру с вопросами и ответами
func (r *GameRepo) GetByID(id uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position ASC, questions.id ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetByMatchID возвращает игры матча по возрастанию индекса
func (r *GameRepo) GetByMatchID(matchID uint) ([]entity.Game, error) {
	var games []entity.Game
	err := r.db.
		Where("match_id = ?", matchID).
		Order("idx ASC, id ASC").
		Find(&games).Error
	return games, err
}

// Update обновляет игру
func (r *GameRepo) Update(game *entity.Game) error {
	return r.db.Save(game).Error
}

// Delete удаляет игру
func (r *GameRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Game{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
