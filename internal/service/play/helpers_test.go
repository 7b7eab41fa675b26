package play

import (
	"fmt"
	"time"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
)

// identityShuffle оставляет порядок элементов без изменений
func identityShuffle(int, func(i, j int)) {}

// fakeClock — часы с управляемым временем
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// memoryStore — хранилище реакций и рейтинга в памяти, общее для
// читателя и писателя: записи видны сразу, как внутри транзакции
type memoryStore struct {
	reactions []entity.Reaction
	rankings  map[string]entity.Ranking
	nextID    uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rankings: make(map[string]entity.Ranking)}
}

func (s *memoryStore) ListByUserAndMatch(userID, matchID uint) ([]entity.Reaction, error) {
	var out []entity.Reaction
	for _, r := range s.reactions {
		if r.UserID == userID && r.MatchID == matchID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) Create(r *entity.Reaction) error {
	for i := range s.reactions {
		if s.reactions[i].UserID == r.UserID &&
			s.reactions[i].MatchID == r.MatchID &&
			s.reactions[i].QuestionID == r.QuestionID {
			return repository.ErrDuplicateReaction
		}
	}
	s.nextID++
	r.ID = s.nextID
	s.reactions = append(s.reactions, *r)
	return nil
}

func (s *memoryStore) Update(r *entity.Reaction) error {
	for i := range s.reactions {
		if s.reactions[i].ID == r.ID {
			s.reactions[i] = *r
			return nil
		}
	}
	return fmt.Errorf("reaction %d not found", r.ID)
}

func (s *memoryStore) Upsert(rk *entity.Ranking) error {
	key := fmt.Sprintf("%d:%d", rk.MatchID, rk.UserID)
	if existing, ok := s.rankings[key]; ok {
		rk.ID = existing.ID
	} else {
		s.nextID++
		rk.ID = s.nextID
	}
	s.rankings[key] = *rk
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}
