package repository

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"gorm.io/gorm"
)

// RankingRepository определяет методы для работы с итоговыми счетами
type RankingRepository interface {
	// Upsert записывает счёт по (match_id, user_id); повторный вызов
	// обновляет существующую строку
	Upsert(tx *gorm.DB, ranking *entity.Ranking) error
	// ListByMatch возвращает счета матча по убыванию, с пользователями
	ListByMatch(matchID uint, limit, offset int) ([]entity.Ranking, int64, error)
	GetAllByMatch(matchID uint) ([]entity.Ranking, error)
}
