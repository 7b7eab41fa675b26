package play

import (
	"fmt"
	"sort"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// QuestionFactory обходит вопросы одной игры. Порядок обхода
// фиксируется при создании: по позиции для упорядоченной игры,
// иначе перестановкой shuffle. Вопросы из seen пропускаются —
// так фабрика продолжает обход, начатый в прошлых запросах.
type QuestionFactory struct {
	game     *entity.Game
	sequence []entity.Question
	seen     map[uint]bool
	history  []int
}

// NewQuestionFactory создаёт фабрику для game; seen — ID уже
// показанных вопросов.
func NewQuestionFactory(game *entity.Game, shuffle Shuffle, seen ...uint) *QuestionFactory {
	sequence := make([]entity.Question, len(game.Questions))
	copy(sequence, game.Questions)
	if game.Ordered {
		sort.SliceStable(sequence, func(i, j int) bool {
			return sequence[i].Position < sequence[j].Position
		})
	} else if shuffle != nil {
		shuffle(len(sequence), func(i, j int) {
			sequence[i], sequence[j] = sequence[j], sequence[i]
		})
	}

	seenSet := make(map[uint]bool, len(seen))
	for _, id := range seen {
		seenSet[id] = true
	}
	return &QuestionFactory{
		game:     game,
		sequence: sequence,
		seen:     seenSet,
	}
}

// Next возвращает следующий непоказанный вопрос либо ErrGameOver,
// когда вопросы игры исчерпаны.
func (f *QuestionFactory) Next() (*entity.Question, error) {
	start := 0
	if n := len(f.history); n > 0 {
		start = f.history[n-1] + 1
	}
	for i := start; i < len(f.sequence); i++ {
		if f.seen[f.sequence[i].ID] {
			continue
		}
		f.history = append(f.history, i)
		return &f.sequence[i], nil
	}
	return nil, ErrGameOver
}

// Previous возвращает вопрос, показанный перед текущим в этой сессии
func (f *QuestionFactory) Previous() (*entity.Question, error) {
	if len(f.history) < 2 {
		return nil, &GameError{
			Message: fmt.Sprintf("no previous question in game %d", f.game.ID),
		}
	}
	f.history = f.history[:len(f.history)-1]
	return &f.sequence[f.history[len(f.history)-1]], nil
}

// Current возвращает последний показанный вопрос либо nil
func (f *QuestionFactory) Current() *entity.Question {
	if len(f.history) == 0 {
		return nil
	}
	return &f.sequence[f.history[len(f.history)-1]]
}

// IsLastQuestion — после текущего непоказанных вопросов не осталось
func (f *QuestionFactory) IsLastQuestion() bool {
	if len(f.history) == 0 {
		return false
	}
	last := f.history[len(f.history)-1]
	for i := last + 1; i < len(f.sequence); i++ {
		if !f.seen[f.sequence[i].ID] {
			return false
		}
	}
	return true
}
