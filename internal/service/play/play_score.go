package play

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// PlayScore — итоговый счёт игрока в матче
type PlayScore struct {
	MatchID uint
	UserID  uint
	Score   float64
}

// NewPlayScore создаёт итоговый счёт матча
func NewPlayScore(matchID, userID uint, score float64) *PlayScore {
	return &PlayScore{MatchID: matchID, UserID: userID, Score: score}
}

// SaveToRanking записывает счёт в рейтинг. Запись идемпотентна:
// повторная финализация обновляет строку (match_id, user_id).
func (p *PlayScore) SaveToRanking(store RankingStore) (*entity.Ranking, error) {
	ranking := &entity.Ranking{
		MatchID: p.MatchID,
		UserID:  p.UserID,
		Score:   p.Score,
	}
	if err := store.Upsert(ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}
