package service

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
)

// RankingService отдаёт итоговые счета матчей
type RankingService struct {
	rankingRepo  repository.RankingRepository
	reactionRepo repository.ReactionRepository
}

// NewRankingService создает новый сервис рейтинга
func NewRankingService(
	rankingRepo repository.RankingRepository,
	reactionRepo repository.ReactionRepository,
) *RankingService {
	return &RankingService{
		rankingRepo:  rankingRepo,
		reactionRepo: reactionRepo,
	}
}

// ListByMatch возвращает страницу рейтинга матча по убыванию счёта
func (s *RankingService) ListByMatch(matchID uint, page, pageSize int) ([]entity.Ranking, int64, error) {
	offset := (page - 1) * pageSize
	return s.rankingRepo.ListByMatch(matchID, pageSize, offset)
}

// GetAllByMatch возвращает весь рейтинг матча, для экспорта
func (s *RankingService) GetAllByMatch(matchID uint) ([]entity.Ranking, error) {
	return s.rankingRepo.GetAllByMatch(matchID)
}

// CountReactions возвращает общее число реакций в матче —
// грубая метрика активности для панели администратора
func (s *RankingService) CountReactions(matchID uint) (int64, error) {
	return s.reactionRepo.CountByMatch(matchID)
}
