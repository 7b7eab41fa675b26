package play

import (
	"fmt"
	"sort"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// GameFactory обходит игры матча по тому же протоколу, что и
// QuestionFactory вопросы: по индексу для упорядоченного матча,
// иначе перестановкой shuffle. Игры из played пропускаются, за счёт
// чего обход продолжается между HTTP-запросами.
type GameFactory struct {
	match    *entity.Match
	sequence []entity.Game
	played   map[uint]bool
	history  []int
}

// NewGameFactory создаёт фабрику для match; played — ID уже
// сыгранных игр.
func NewGameFactory(match *entity.Match, shuffle Shuffle, played ...uint) *GameFactory {
	sequence := make([]entity.Game, len(match.Games))
	copy(sequence, match.Games)
	if match.Ordered {
		sort.SliceStable(sequence, func(i, j int) bool {
			return sequence[i].Index < sequence[j].Index
		})
	} else if shuffle != nil {
		shuffle(len(sequence), func(i, j int) {
			sequence[i], sequence[j] = sequence[j], sequence[i]
		})
	}

	playedSet := make(map[uint]bool, len(played))
	for _, id := range played {
		playedSet[id] = true
	}
	return &GameFactory{
		match:    match,
		sequence: sequence,
		played:   playedSet,
	}
}

// Next возвращает следующую несыгранную игру либо ErrMatchOver,
// когда игры матча исчерпаны.
func (f *GameFactory) Next() (*entity.Game, error) {
	start := 0
	if n := len(f.history); n > 0 {
		start = f.history[n-1] + 1
	}
	for i := start; i < len(f.sequence); i++ {
		if f.played[f.sequence[i].ID] {
			continue
		}
		f.history = append(f.history, i)
		return &f.sequence[i], nil
	}
	return nil, ErrMatchOver
}

// Previous возвращает игру, выданную перед текущей в этой сессии
func (f *GameFactory) Previous() (*entity.Game, error) {
	if len(f.history) < 2 {
		return nil, &MatchError{
			Message: fmt.Sprintf("no previous game in match %d", f.match.ID),
		}
	}
	f.history = f.history[:len(f.history)-1]
	return &f.sequence[f.history[len(f.history)-1]], nil
}

// Current возвращает последнюю выданную игру либо nil
func (f *GameFactory) Current() *entity.Game {
	if len(f.history) == 0 {
		return nil
	}
	return &f.sequence[f.history[len(f.history)-1]]
}

// MatchStarted — хотя бы одна игра выдана или уже была сыграна ранее
func (f *GameFactory) MatchStarted() bool {
	return len(f.history) > 0 || len(f.played) > 0
}

// IsLastGame — после текущей несыгранных игр не осталось
func (f *GameFactory) IsLastGame() bool {
	if len(f.history) == 0 {
		return false
	}
	last := f.history[len(f.history)-1]
	for i := last + 1; i < len(f.sequence); i++ {
		if !f.played[f.sequence[i].ID] {
			return false
		}
	}
	return true
}
