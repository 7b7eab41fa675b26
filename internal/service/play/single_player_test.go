package play

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

func newPlayer(user *entity.User, match *entity.Match, store *memoryStore, clock Clock) *SinglePlayer {
	status := NewPlayerStatus(user, match, store)
	return NewSinglePlayer(status, user, match, Dependencies{
		Clock:     clock,
		Shuffle:   identityShuffle,
		Reactions: store,
		Rankings:  store,
	})
}

func TestSinglePlayer_ReactionCreatedAsSoonAsQuestionIsReturned(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
			{ID: 1, Position: 0, Text: "Where is London?"},
		}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	question, err := player.Start()

	require.NoError(t, err)
	assert.Equal(t, uint(1), question.ID)
	assert.Equal(t, question, player.Current())
	require.Len(t, store.reactions, 1)
	assert.True(t, store.reactions[0].Starter)
	assert.False(t, store.reactions[0].Answered())
}

func TestSinglePlayer_ReactToFirstQuestion(t *testing.T) {
	user := &entity.User{ID: 7}
	first := entity.Question{ID: 1, Position: 0, Text: "Where is London?", Answers: []entity.Answer{
		{ID: 10, QuestionID: 1, Position: 1, Text: "UK", IsCorrect: true},
	}}
	second := entity.Question{ID: 2, Position: 1, Text: "Where is Paris?"}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{first, second}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	next, err := player.React(&first.Answers[0], &first)

	require.NoError(t, err)
	assert.Equal(t, uint(2), next.ID)
	require.Len(t, store.reactions, 2)
	assert.True(t, store.reactions[0].Answered())
	require.NotNil(t, store.reactions[0].AnswerID)
	assert.Equal(t, uint(10), *store.reactions[0].AnswerID)
	assert.False(t, store.reactions[1].Answered())
}

func TestSinglePlayer_StartMatchAlreadyExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	user := &entity.User{ID: 7}
	match := &entity.Match{
		ID:       1,
		Times:    1,
		Ordered:  true,
		FromTime: clock.now.Add(-time.Hour),
		ToTime:   timePtr(clock.now.Add(-time.Microsecond)),
		Games: []entity.Game{
			{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{{ID: 1, Position: 0}}},
		},
	}
	player := newPlayer(user, match, newMemoryStore(), clock)

	_, err := player.Start()

	var matchErr *MatchError
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, "Expired match", matchErr.Message)
}

func TestSinglePlayer_MatchExpiresAfterStartButBeforeReaction(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	user := &entity.User{ID: 7}
	question := entity.Question{ID: 1, Position: 0, Text: "Where is London?", Answers: []entity.Answer{
		{ID: 10, QuestionID: 1, Position: 1, Text: "UK"},
	}}
	match := &entity.Match{
		ID:       1,
		Times:    1,
		Ordered:  true,
		FromTime: clock.now.Add(-time.Hour),
		ToTime:   timePtr(clock.now.Add(8 * time.Millisecond)),
		Games: []entity.Game{
			{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{question}},
		},
	}
	store := newMemoryStore()
	player := newPlayer(user, match, store, clock)

	_, err := player.Start()
	require.NoError(t, err)

	// Матч истекает между показом вопроса и ответом
	clock.now = clock.now.Add(time.Second)
	_, err = player.React(&question.Answers[0], &question)

	var matchErr *MatchError
	require.True(t, errors.As(err, &matchErr))
	assert.Equal(t, "Expired match", matchErr.Message)
}

func TestSinglePlayer_MatchCannotBePlayedMoreThanMatchTimes(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{{ID: 1, Position: 0}}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	_, err = player.Start()
	assert.ErrorIs(t, err, ErrMatchNotPlayable)
	assert.Len(t, store.reactions, 1)
}

func TestSinglePlayer_ZeroTimesMeansUnlimitedStarts(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 0, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
			{ID: 1, Position: 0}, {ID: 2, Position: 1},
		}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	first, err := player.Start()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.ID)

	// Повторный старт допустим и продолжает с непоказанного вопроса
	second, err := player.Start()
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.ID)
}

func TestSinglePlayer_MatchOverOnLastReaction(t *testing.T) {
	user := &entity.User{ID: 7}
	question := entity.Question{ID: 1, Position: 0, Text: "Where is London?", Answers: []entity.Answer{
		{ID: 10, QuestionID: 1, Position: 1, Text: "UK", IsCorrect: true, Level: 2},
	}}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Ordered: true, Questions: []entity.Question{question}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	_, err = player.React(&question.Answers[0], &question)

	assert.ErrorIs(t, err, ErrMatchOver)
	// Счёт финализирован в рейтинге
	require.Len(t, store.rankings, 1)
	ranking := store.rankings["1:7"]
	assert.InDelta(t, 2.0, ranking.Score, 1e-9)
}

func TestSinglePlayer_PlayMatchOverMultipleInstances(t *testing.T) {
	// SinglePlayer пересоздаётся на каждый запрос, как в HTTP-сценарии
	user := &entity.User{ID: 7}
	questions := []entity.Question{
		{ID: 1, Position: 0, Text: "Where is London?", Answers: []entity.Answer{{ID: 10, QuestionID: 1, Position: 1, Text: "UK", IsCorrect: true}}},
		{ID: 2, Position: 1, Text: "Where is Paris?", Answers: []entity.Answer{{ID: 20, QuestionID: 2, Position: 1, Text: "France", IsCorrect: true}}},
		{ID: 3, Position: 2, Text: "Where is Dublin?", Answers: []entity.Answer{{ID: 30, QuestionID: 3, Position: 1, Text: "Ireland", IsCorrect: true}}},
	}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: false, Questions: questions},
	}}
	store := newMemoryStore()

	player := newPlayer(user, match, store, nil)
	first, err := player.Start()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.ID)

	// Пропуск первого вопроса
	next, err := player.React(nil, &questions[0])
	require.NoError(t, err)
	assert.Equal(t, uint(2), next.ID)

	player = newPlayer(user, match, store, nil)
	next, err = player.React(&questions[1].Answers[0], &questions[1])
	require.NoError(t, err)
	assert.Equal(t, uint(3), next.ID)

	player = newPlayer(user, match, store, nil)
	_, err = player.React(&questions[2].Answers[0], &questions[2])
	assert.ErrorIs(t, err, ErrMatchOver)

	// Пропуск очков не приносит: засчитаны два верных ответа
	ranking := store.rankings["1:7"]
	assert.InDelta(t, 2.0, ranking.Score, 1e-9)
}

func TestSinglePlayer_ReactRejectsQuestionNotOnDisplay(t *testing.T) {
	user := &entity.User{ID: 7}
	questions := []entity.Question{
		{ID: 1, Position: 0, Text: "Where is London?"},
		{ID: 2, Position: 1, Text: "Where is Paris?"},
	}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: questions},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	// Показан первый вопрос, ответ прислан на второй
	_, err = player.React(nil, &questions[1])
	var gameErr *GameError
	assert.True(t, errors.As(err, &gameErr))
}

func TestSinglePlayer_ReactRejectsDuplicateSubmission(t *testing.T) {
	user := &entity.User{ID: 7}
	questions := []entity.Question{
		{ID: 1, Position: 0, Text: "Where is London?"},
		{ID: 2, Position: 1, Text: "Where is Paris?"},
	}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: questions},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)
	_, err = player.React(nil, &questions[0])
	require.NoError(t, err)

	// Повторный ответ на уже закрытый вопрос
	_, err = player.React(nil, &questions[0])
	var gameErr *GameError
	assert.True(t, errors.As(err, &gameErr))
}

func TestSinglePlayer_MatchCanBeResumed(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, IsRestricted: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Ordered: true, Questions: []entity.Question{
			{ID: 1, Position: 0}, {ID: 2, Position: 1},
		}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	resumable, err := player.MatchCanBeResumed()
	require.NoError(t, err)
	assert.True(t, resumable)
}

func TestSinglePlayer_MatchCanNotBeResumedBecausePublic(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, IsRestricted: false, FromTime: time.Now().Add(-time.Hour)}
	player := newPlayer(user, match, newMemoryStore(), nil)

	resumable, err := player.MatchCanBeResumed()
	require.NoError(t, err)
	assert.False(t, resumable)
}

func TestSinglePlayer_MatchCanNotBeResumedWhenAllDisplayed(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 1, Ordered: true, IsRestricted: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Ordered: true, Questions: []entity.Question{{ID: 1, Position: 0}}},
	}}
	store := newMemoryStore()
	player := newPlayer(user, match, store, nil)

	_, err := player.Start()
	require.NoError(t, err)

	resumable, err := player.MatchCanBeResumed()
	require.NoError(t, err)
	assert.False(t, resumable)
}

func TestSinglePlayer_StartSpansGames(t *testing.T) {
	// Первая игра сыграна целиком: старт продолжает со второй игры
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Times: 0, Ordered: true, FromTime: time.Now().Add(-time.Hour), Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Ordered: true, Questions: []entity.Question{{ID: 1, Position: 0}}},
		{ID: 2, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{{ID: 2, Position: 0}}},
	}}
	store := newMemoryStore()
	answered := time.Now()
	require.NoError(t, store.Create(&entity.Reaction{
		UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1,
		Starter: true, AnsweredAt: &answered, Score: floatPtr(1),
	}))
	player := newPlayer(user, match, store, nil)

	question, err := player.Start()

	require.NoError(t, err)
	assert.Equal(t, uint(2), question.ID)
}
