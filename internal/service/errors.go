package service

import "errors"

// Ошибки уровня сервисов
var (
	// ErrMatchHasNoInvite означает, что для приглашения матчу не хватает
	// публичного хэша или пароля.
	ErrMatchHasNoInvite = errors.New("match has no uhash or password to invite with")
	// ErrCodeSpaceExhausted означает, что свободный код матча подобрать
	// не удалось за разумное число попыток.
	ErrCodeSpaceExhausted = errors.New("could not reserve a unique match code")
)

// NotPlayableError — лимит стартов матча исчерпан. CanBeResumed
// подсказывает клиенту, что прохождение ограниченного матча можно
// продолжить через /play/next.
type NotPlayableError struct {
	CanBeResumed bool
}

func (e *NotPlayableError) Error() string {
	return "match is not playable"
}
