package play

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

func TestPlayerStatus_QuestionsDisplayed(t *testing.T) {
	// Arrange: реакции в двух матчах — чужой матч не учитывается
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Questions: []entity.Question{
			{ID: 1, Position: 0}, {ID: 2, Position: 1}, {ID: 3, Position: 2},
		}},
	}}
	store := newMemoryStore()
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 2}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 2, GameID: 1, QuestionID: 3}))

	status := NewPlayerStatus(user, match, store)

	// Act
	displayed, err := status.QuestionsDisplayed()

	// Assert
	require.NoError(t, err)
	assert.Len(t, displayed, 2)
	assert.Contains(t, displayed, uint(1))
	assert.Contains(t, displayed, uint(2))
}

func TestPlayerStatus_QuestionsDisplayedByGame(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
		{ID: 2, MatchID: 1, Index: 1},
	}}
	store := newMemoryStore()
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 2, QuestionID: 2}))

	status := NewPlayerStatus(user, match, store)

	displayed, err := status.QuestionsDisplayedByGame(&match.Games[0])
	require.NoError(t, err)
	assert.Len(t, displayed, 1)
	assert.Contains(t, displayed, uint(1))
}

func TestPlayerStatus_AllGamesPlayed(t *testing.T) {
	// Вопрос q3 не показан: вторая игра сыгранной не считается
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Questions: []entity.Question{{ID: 1, Position: 0}}},
		{ID: 2, MatchID: 1, Index: 1, Questions: []entity.Question{{ID: 2, Position: 0}, {ID: 3, Position: 1}}},
	}}
	store := newMemoryStore()
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 2, QuestionID: 2}))

	status := NewPlayerStatus(user, match, store)

	played, err := status.AllGamesPlayed()
	require.NoError(t, err)
	assert.Len(t, played, 1)
	assert.Contains(t, played, uint(1))
}

func TestPlayerStatus_GameWithoutQuestionsIsNeverPlayed(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
	}}
	status := NewPlayerStatus(user, match, newMemoryStore())

	played, err := status.AllGamesPlayed()
	require.NoError(t, err)
	assert.Empty(t, played)
}

func TestPlayerStatus_CurrentScore(t *testing.T) {
	// Реакция без очков (пропуск) в сумму не входит
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0, Questions: []entity.Question{{ID: 1, Position: 0}}},
		{ID: 2, MatchID: 1, Index: 1, Questions: []entity.Question{{ID: 2, Position: 0}, {ID: 3, Position: 1}}},
	}}
	store := newMemoryStore()
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1, Score: floatPtr(3)}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 2, QuestionID: 2, Score: floatPtr(2.4)}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 2, QuestionID: 3}))

	status := NewPlayerStatus(user, match, store)

	score, err := status.CurrentScore()
	require.NoError(t, err)
	assert.InDelta(t, 5.4, score, 1e-9)

	played, err := status.AllGamesPlayed()
	require.NoError(t, err)
	assert.Len(t, played, 2)
}

func TestPlayerStatus_StartAttempts(t *testing.T) {
	user := &entity.User{ID: 7}
	match := &entity.Match{ID: 1, Ordered: true}
	store := newMemoryStore()
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 1, Starter: true}))
	require.NoError(t, store.Create(&entity.Reaction{UserID: 7, MatchID: 1, GameID: 1, QuestionID: 2}))

	status := NewPlayerStatus(user, match, store)

	attempts, err := status.StartAttempts()
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
