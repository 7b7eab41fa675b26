package repository

import "errors"

var (
	// ErrDuplicateReaction означает повторную реакцию на тот же вопрос
	// в рамках матча (нарушение уникального индекса).
	ErrDuplicateReaction = errors.New("reaction already exists for this question")
	// ErrNotUsableQuestion означает попытку импортировать вопрос,
	// уже привязанный к игре.
	ErrNotUsableQuestion = errors.New("question is already bound to a game")
)
