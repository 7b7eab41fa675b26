package play

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

func TestGameFactory_NextWhenOrdered(t *testing.T) {
	// Игры добавлены в обратном порядке: сортировка по индексу
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 2, MatchID: 1, Index: 2},
		{ID: 1, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle)

	g, err := factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(1), g.ID)

	g, err = factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(2), g.ID)
}

func TestGameFactory_MatchWithoutGames(t *testing.T) {
	match := &entity.Match{ID: 1, Ordered: true}
	factory := NewGameFactory(match, identityShuffle)

	_, err := factory.Next()
	assert.ErrorIs(t, err, ErrMatchOver)
}

func TestGameFactory_MatchStarted(t *testing.T) {
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle)

	assert.False(t, factory.MatchStarted())

	_, err := factory.Next()
	require.NoError(t, err)
	assert.True(t, factory.MatchStarted())
}

func TestGameFactory_IsLastGame(t *testing.T) {
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
		{ID: 2, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle)

	_, err := factory.Next()
	require.NoError(t, err)
	assert.False(t, factory.IsLastGame())

	_, err = factory.Next()
	require.NoError(t, err)
	assert.True(t, factory.IsLastGame())
}

func TestGameFactory_NextOverTwoSessions(t *testing.T) {
	// Первая игра сыграна в прошлой сессии: обход продолжается со второй
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
		{ID: 2, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle, 1)

	g, err := factory.Next()
	require.NoError(t, err)
	assert.Equal(t, uint(2), g.ID)
	assert.True(t, factory.IsLastGame())
}

func TestGameFactory_PreviousRightAfterFirstNext(t *testing.T) {
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
		{ID: 2, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle)

	_, err := factory.Next()
	require.NoError(t, err)

	_, err = factory.Previous()
	var matchErr *MatchError
	assert.True(t, errors.As(err, &matchErr))
}

func TestGameFactory_PreviousWithoutNext(t *testing.T) {
	match := &entity.Match{ID: 1, Ordered: true, Games: []entity.Game{
		{ID: 1, MatchID: 1, Index: 0},
		{ID: 2, MatchID: 1, Index: 1},
	}}
	factory := NewGameFactory(match, identityShuffle)

	_, err := factory.Previous()
	var matchErr *MatchError
	assert.True(t, errors.As(err, &matchErr))
}
