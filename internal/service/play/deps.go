package play

import (
	"math/rand"
	"time"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// Clock абстрагирует текущее время: проверки окна матча зависят от
// него, и тесты подменяют его фиксированным значением.
type Clock interface {
	Now() time.Time
}

// SystemClock — часы реального времени
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Shuffle переставляет n элементов через swap. Сигнатура совместима
// с rand.Shuffle, поэтому тесты могут подставить тождественную
// перестановку, а сервис — перестановку с детерминированным зерном.
type Shuffle func(n int, swap func(i, j int))

// SeededShuffle возвращает перестановку с фиксированным зерном.
// Генератор пересоздаётся на каждый вызов: перестановка зависит
// только от зерна и размера набора, а не от того, сколько наборов
// было перемешано до этого. Поэтому порядок вопросов не меняется
// между запросами одного прохождения.
func SeededShuffle(seed int64) Shuffle {
	return func(n int, swap func(i, j int)) {
		rand.New(rand.NewSource(seed)).Shuffle(n, swap)
	}
}

// ScoreFunc вычисляет очки за ответ. nil ответ — пропуск вопроса,
// очки не начисляются (nil).
type ScoreFunc func(question *entity.Question, answer *entity.Answer) *float64

// DefaultScore — базовая функция подсчёта: неверный ответ даёт 0,
// верный — 1 либо вес ответа (Level), если он задан.
func DefaultScore(_ *entity.Question, answer *entity.Answer) *float64 {
	if answer == nil {
		return nil
	}
	s := 0.0
	if answer.IsCorrect {
		s = 1.0
		if answer.Level > 0 {
			s = float64(answer.Level)
		}
	}
	return &s
}

// ReactionReader читает реакции пользователя в матче одним запросом
// (вместе с вопросами, в порядке создания).
type ReactionReader interface {
	ListByUserAndMatch(userID, matchID uint) ([]entity.Reaction, error)
}

// ReactionStore записывает реакции в рамках текущей транзакции
type ReactionStore interface {
	Create(reaction *entity.Reaction) error
	Update(reaction *entity.Reaction) error
}

// RankingStore фиксирует итоговый счёт матча
type RankingStore interface {
	Upsert(ranking *entity.Ranking) error
}
