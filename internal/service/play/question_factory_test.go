package play

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

func TestQuestionFactory_InsertionOrderWhenNotOrdered(t *testing.T) {
	// Arrange: вопросы неупорядоченной игры, тождественная перестановка
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: false, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Berlin?"},
		{ID: 2, Position: 1, Text: "Where is Zurich?"},
		{ID: 3, Position: 2, Text: "Where is Paris?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	// Act & Assert
	q, err := factory.Next()
	require.NoError(t, err)
	assert.Equal(t, "Where is Berlin?", q.Text)

	q, err = factory.Next()
	require.NoError(t, err)
	assert.Equal(t, "Where is Zurich?", q.Text)
	assert.Equal(t, q, factory.Current())

	q, err = factory.Next()
	require.NoError(t, err)
	assert.Equal(t, "Where is Paris?", q.Text)
}

func TestQuestionFactory_InsertionOrderBeatsPositionWhenNotOrdered(t *testing.T) {
	// Позиции обратны порядку вставки: при тождественной перестановке
	// обход неупорядоченной игры идёт по порядку вставки, а не по position
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: false, Questions: []entity.Question{
		{ID: 1, Position: 2, Text: "Where is Madrid?"},
		{ID: 2, Position: 1, Text: "Where is Lisbon?"},
		{ID: 3, Position: 0, Text: "Where is Porto?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	for _, want := range []uint{1, 2, 3} {
		q, err := factory.Next()
		require.NoError(t, err)
		assert.Equal(t, want, q.ID)
	}

	_, err := factory.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestQuestionFactory_NextByPositionWhenOrdered(t *testing.T) {
	// Вопросы добавлены в обратном порядке: сортировка по position
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 2, Position: 1, Text: "Where is London?"},
		{ID: 1, Position: 0, Text: "Where is Paris?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	q, err := factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(1), q.ID)

	q, err = factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(2), q.ID)
}

func TestQuestionFactory_GameOverWhenThereAreNoQuestions(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true}
	factory := NewQuestionFactory(game, identityShuffle)

	_, err := factory.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestQuestionFactory_GameOverAfterLastQuestion(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Paris?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	_, err := factory.Next()
	require.NoError(t, err)
	_, err = factory.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestQuestionFactory_SkipsAlreadySeenQuestions(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Amsterdam?"},
		{ID: 2, Position: 1, Text: "Where is Lion?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle, 1)

	q, err := factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(2), q.ID)

	_, err = factory.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestQuestionFactory_IsLastQuestion(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Amsterdam?"},
		{ID: 2, Position: 1, Text: "Where is Lion?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	_, err := factory.Next()
	require.NoError(t, err)
	assert.False(t, factory.IsLastQuestion())

	_, err = factory.Next()
	require.NoError(t, err)
	assert.True(t, factory.IsLastQuestion())
}

func TestQuestionFactory_Previous(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Amsterdam?"},
		{ID: 2, Position: 1, Text: "Where is Lion?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	first, err := factory.Next()
	require.NoError(t, err)
	_, err = factory.Next()
	require.NoError(t, err)

	prev, err := factory.Previous()
	require.NoError(t, err)
	assert.Equal(t, first, prev)
}

func TestQuestionFactory_PreviousWithoutNext(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Amsterdam?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	_, err := factory.Previous()
	var gameErr *GameError
	assert.True(t, errors.As(err, &gameErr))
}

func TestQuestionFactory_PreviousAfterFirstNext(t *testing.T) {
	game := &entity.Game{ID: 1, MatchID: 1, Index: 1, Ordered: true, Questions: []entity.Question{
		{ID: 1, Position: 0, Text: "Where is Amsterdam?"},
		{ID: 2, Position: 1, Text: "Where is Lion?"},
	}}
	factory := NewQuestionFactory(game, identityShuffle)

	_, err := factory.Next()
	require.NoError(t, err)

	_, err = factory.Previous()
	var gameErr *GameError
	assert.True(t, errors.As(err, &gameErr))
}
