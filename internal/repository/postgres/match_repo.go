package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
)

// MatchRepo реализует repository.MatchRepository
type MatchRepo struct {
	db *gorm.DB
}

// NewMatchRepo создает новый репозиторий матчей
func NewMatchRepo(db *gorm.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

// Create сохраняет матч
func (r *MatchRepo) Create(match *entity.Match) error {
	return r.db.Create(match).Error
}

// GetByID возвращает матч без связей
func (r *MatchRepo) GetByID(id uint) (*entity.Match, error) {
	var match entity.Match
	err := r.db.First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetWithGames возвращает матч с играми, вопросами и ответами.
// Игры и вопросы загружаются по id — в порядке вставки: это контракт
// неупорядоченного обхода, а упорядоченный сортируют сами фабрики
// (по index и position).
func (r *MatchRepo) GetWithGames(id uint) (*entity.Match, error) {
	var match entity.Match
	err := r.db.
		Preload("Games", func(db *gorm.DB) *gorm.DB {
			return db.Order("games.id ASC")
		}).
		Preload("Games.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Games.Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.position ASC, answers.id ASC")
		}).
		First(&match, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetByUHash возвращает матч по публичному хэшу
func (r *MatchRepo) GetByUHash(uhash string) (*entity.Match, error) {
	var match entity.Match
	err := r.db.Where("u_hash = ?", uhash).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetActiveByCode возвращает матч по коду среди активных в момент now
func (r *MatchRepo) GetActiveByCode(code string, now time.Time) (*entity.Match, error) {
	var match entity.Match
	err := r.db.
		Where("code = ? AND from_time <= ? AND (to_time IS NULL OR to_time >= ?)", code, now, now).
		First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &match, nil
}

// List возвращает матчи с пагинацией и общим количеством
func (r *MatchRepo) List(limit, offset int) ([]entity.Match, int64, error) {
	var matches []entity.Match
	var total int64

	if err := r.db.Model(&entity.Match{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// Update обновляет матч
func (r *MatchRepo) Update(match *entity.Match) error {
	return r.db.Save(match).Error
}

// Delete удаляет матч
func (r *MatchRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Match{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NameExists проверяет занятость имени матча
func (r *MatchRepo) NameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Match{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// UHashExists проверяет занятость публичного хэша
func (r *MatchRepo) UHashExists(uhash string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Match{}).Where("u_hash = ?", uhash).Count(&count).Error
	return count > 0, err
}

// PasswordExists проверяет занятость пароля среди ограниченных матчей
func (r *MatchRepo) PasswordExists(password string) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Match{}).
		Where("is_restricted = true AND password = ?", password).
		Count(&count).Error
	return count > 0, err
}

// CodeExists проверяет занятость кода среди активных матчей
func (r *MatchRepo) CodeExists(code string, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&entity.Match{}).
		Where("code = ? AND from_time <= ? AND (to_time IS NULL OR to_time >= ?)", code, now, now).
		Count(&count).Error
	return count > 0, err
}
