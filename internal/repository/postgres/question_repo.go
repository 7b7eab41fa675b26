package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create сохраняет вопрос вместе с ответами
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch сохраняет несколько вопросов одной вставкой
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetByID возвращает вопрос с ответами
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetManyByIDs возвращает вопросы с ответами по списку ID
func (r *QuestionRepo) GetManyByIDs(ids []uint) ([]entity.Question, error) {
	var questions []entity.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		Where("id IN ?", ids).
		Find(&questions).Error
	return questions, err
}

// GetByGameID возвращает вопросы игры по возрастанию позиции
func (r *QuestionRepo) GetByGameID(gameID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		Where("game_id = ?", gameID).
		Order("position ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

// ListTemplates возвращает вопросы каталога (без привязки к игре)
func (r *QuestionRepo) ListTemplates(limit, offset int) ([]entity.Question, int64, error) {
	var questions []entity.Question
	var total int64

	if err := r.db.Model(&entity.Question{}).Where("game_id IS NULL").Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		Where("game_id IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// Update обновляет вопрос вместе с ответами
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(question).Error
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
