package postgres

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// RankingRepo реализует repository.RankingRepository
type RankingRepo struct {
	db *gorm.DB
}

// NewRankingRepo создает новый репозиторий рейтинга
func NewRankingRepo(db *gorm.DB) *RankingRepo {
	return &RankingRepo{db: db}
}

// conn возвращает переданную транзакцию либо базовое подключение
func (r *RankingRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert записывает счёт по (match_id, user_id). Повторная
// финализация — в том числе из двух гонящихся терминальных
// запросов — обновляет существующую строку.
func (r *RankingRepo) Upsert(tx *gorm.DB, ranking *entity.Ranking) error {
	return r.conn(tx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).
		Create(ranking).Error
}

// ListByMatch возвращает счета матча по убыванию, с пользователями
func (r *RankingRepo) ListByMatch(matchID uint, limit, offset int) ([]entity.Ranking, int64, error) {
	var rankings []entity.Ranking
	var total int64

	if err := r.db.Model(&entity.Ranking{}).Where("match_id = ?", matchID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("User").
		Where("match_id = ?", matchID).
		Order("score DESC, updated_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&rankings).Error
	if err != nil {
		return nil, 0, err
	}
	return rankings, total, nil
}

// GetAllByMatch возвращает все счета матча для экспорта
func (r *RankingRepo) GetAllByMatch(matchID uint) ([]entity.Ranking, error) {
	var rankings []entity.Ranking
	err := r.db.
		Preload("User").
		Where("match_id = ?", matchID).
		Order("score DESC, updated_at ASC").
		Find(&rankings).Error
	return rankings, err
}
