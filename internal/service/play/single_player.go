package play

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// Dependencies — внешние зависимости игрока. Незаполненные поля
// получают значения по умолчанию.
type Dependencies struct {
	Clock     Clock
	Shuffle   Shuffle
	Score     ScoreFunc
	Reactions ReactionStore
	Rankings  RankingStore
}

// SinglePlayer проводит пользователя через матч. Экземпляр живёт один
// HTTP-запрос: позиция игрока каждый раз восстанавливается из реакций,
// поэтому прохождение можно продолжить с любого места и после сбоя.
type SinglePlayer struct {
	status  *PlayerStatus
	user    *entity.User
	match   *entity.Match
	deps    Dependencies
	current *entity.Question
}

// NewSinglePlayer создаёт игрока user в матче match
func NewSinglePlayer(status *PlayerStatus, user *entity.User, match *entity.Match, deps Dependencies) *SinglePlayer {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Shuffle == nil {
		deps.Shuffle = rand.Shuffle
	}
	if deps.Score == nil {
		deps.Score = DefaultScore
	}
	return &SinglePlayer{
		status: status,
		user:   user,
		match:  match,
		deps:   deps,
	}
}

// Start начинает (или начинает заново) прохождение матча: находит
// первый непоказанный вопрос, сразу создаёт его стартовую реакцию и
// возвращает вопрос. Возвращает MatchError для просроченного матча,
// ErrMatchNotPlayable при исчерпанном лимите стартов и ErrMatchOver,
// когда показывать больше нечего (счёт при этом финализируется).
func (p *SinglePlayer) Start() (*entity.Question, error) {
	if !p.match.IsActiveAt(p.deps.Clock.Now()) {
		return nil, &MatchError{Message: "Expired match"}
	}
	attempts, err := p.status.StartAttempts()
	if err != nil {
		return nil, err
	}
	if !p.match.UnlimitedTries() && attempts >= p.match.Times {
		return nil, ErrMatchNotPlayable
	}

	game, question, err := p.nextUndisplayed()
	if err != nil {
		if errors.Is(err, ErrMatchOver) {
			if ferr := p.finalize(); ferr != nil {
				return nil, ferr
			}
		}
		return nil, err
	}

	reaction := &entity.Reaction{
		UserID:     p.user.ID,
		MatchID:    p.match.ID,
		GameID:     game.ID,
		QuestionID: question.ID,
		Starter:    true,
	}
	if err := p.deps.Reactions.Create(reaction); err != nil {
		return nil, err
	}
	p.current = question
	return question, nil
}

// React записывает ответ на текущий вопрос и возвращает следующий.
// question должен быть последним показанным вопросом без ответа:
// повторные и внеочередные отправки отклоняются. nil answer — пропуск.
// Когда вопросов не остаётся, счёт финализируется и возвращается
// ErrMatchOver.
func (p *SinglePlayer) React(answer *entity.Answer, question *entity.Question) (*entity.Question, error) {
	now := p.deps.Clock.Now()
	if !p.match.IsActiveAt(now) {
		return nil, &MatchError{Message: "Expired match"}
	}

	reactions, err := p.status.Reactions()
	if err != nil {
		return nil, err
	}
	var outstanding *entity.Reaction
	for i := len(reactions) - 1; i >= 0; i-- {
		if !reactions[i].Answered() {
			outstanding = &reactions[i]
			break
		}
	}
	if outstanding == nil || outstanding.QuestionID != question.ID {
		return nil, &GameError{
			Message: fmt.Sprintf("question %d is not the question on display", question.ID),
		}
	}

	outstanding.Score = p.deps.Score(question, answer)
	outstanding.AnsweredAt = &now
	if answer != nil {
		outstanding.AnswerID = &answer.ID
	}
	if err := p.deps.Reactions.Update(outstanding); err != nil {
		return nil, err
	}

	game, next, err := p.nextUndisplayed()
	if err != nil {
		if errors.Is(err, ErrMatchOver) {
			if ferr := p.finalize(); ferr != nil {
				return nil, ferr
			}
		}
		return nil, err
	}

	reaction := &entity.Reaction{
		UserID:     p.user.ID,
		MatchID:    p.match.ID,
		GameID:     game.ID,
		QuestionID: next.ID,
	}
	if err := p.deps.Reactions.Create(reaction); err != nil {
		return nil, err
	}
	p.current = next
	return next, nil
}

// Current возвращает вопрос, показанный этим экземпляром, либо nil
func (p *SinglePlayer) Current() *entity.Question {
	return p.current
}

// MatchCanBeResumed — прохождение можно продолжить: матч ограниченный
// и остались непоказанные вопросы
func (p *SinglePlayer) MatchCanBeResumed() (bool, error) {
	if !p.match.IsRestricted {
		return false, nil
	}
	displayed, err := p.status.QuestionsDisplayed()
	if err != nil {
		return false, err
	}
	total := 0
	for i := range p.match.Games {
		total += len(p.match.Games[i].Questions)
	}
	return total > len(displayed), nil
}

// nextUndisplayed восстанавливает обход из реакций и возвращает
// следующий непоказанный вопрос вместе с его игрой
func (p *SinglePlayer) nextUndisplayed() (*entity.Game, *entity.Question, error) {
	played, err := p.status.AllGamesPlayed()
	if err != nil {
		return nil, nil, err
	}
	playedIDs := make([]uint, 0, len(played))
	for id := range played {
		playedIDs = append(playedIDs, id)
	}

	gameFactory := NewGameFactory(p.match, p.deps.Shuffle, playedIDs...)
	for {
		game, err := gameFactory.Next()
		if err != nil {
			return nil, nil, err
		}
		displayed, err := p.status.QuestionsDisplayedByGame(game)
		if err != nil {
			return nil, nil, err
		}
		seen := make([]uint, 0, len(displayed))
		for id := range displayed {
			seen = append(seen, id)
		}
		questionFactory := NewQuestionFactory(game, p.deps.Shuffle, seen...)
		question, err := questionFactory.Next()
		if err != nil {
			if errors.Is(err, ErrGameOver) {
				continue
			}
			return nil, nil, err
		}
		return game, question, nil
	}
}

// finalize записывает накопленный счёт пользователя в рейтинг
func (p *SinglePlayer) finalize() error {
	total, err := p.status.CurrentScore()
	if err != nil {
		return err
	}
	_, err = NewPlayScore(p.match.ID, p.user.ID, total).SaveToRanking(p.deps.Rankings)
	return err
}
