package play

import "errors"

// Управляющие сигналы обхода. Это не сбои: они сообщают вызывающему,
// что вопросы игры или игры матча исчерпаны.
var (
	ErrGameOver  = errors.New("game over")
	ErrMatchOver = errors.New("match over")
)

// ErrMatchNotPlayable означает, что лимит стартов матча исчерпан
var ErrMatchNotPlayable = errors.New("match is not playable")

// MatchError — матч не может быть сыгран или навигация по играм
// некорректна ("Expired match" и т.п.)
type MatchError struct {
	Message string
}

func (e *MatchError) Error() string {
	return e.Message
}

// GameError — некорректная навигация по вопросам внутри игры
type GameError struct {
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}
