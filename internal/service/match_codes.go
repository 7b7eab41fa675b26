package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	uhashAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	uhashLength   = 5
	passwordLength = 8
	codeLength     = 4

	maxGenerationAttempts = 30
)

// newUHash подбирает свободный публичный хэш матча
func (s *MatchService) newUHash() (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		var b strings.Builder
		for i := 0; i < uhashLength; i++ {
			b.WriteByte(uhashAlphabet[rand.Intn(len(uhashAlphabet))])
		}
		uhash := b.String()
		taken, err := s.matchRepo.UHashExists(uhash)
		if err != nil {
			return "", err
		}
		if !taken {
			return uhash, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique match hash")
}

// newPassword подбирает пароль, свободный среди ограниченных матчей
func (s *MatchService) newPassword() (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		var b strings.Builder
		for i := 0; i < passwordLength; i++ {
			b.WriteByte(byte('0' + rand.Intn(10)))
		}
		password := b.String()
		taken, err := s.matchRepo.PasswordExists(password)
		if err != nil {
			return "", err
		}
		if !taken {
			return password, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique match password")
}

// reserveCode подбирает четырёхзначный код, свободный среди активных
// матчей, и резервирует его в кеше до окончания матча. SetNX защищает
// от гонки двух одновременных созданий с одинаковым кодом: код,
// взятый другим запросом, ещё не виден в базе до его коммита.
func (s *MatchService) reserveCode(now time.Time, toTime *time.Time) (string, error) {
	ttl := 24 * time.Hour
	if toTime != nil {
		ttl = toTime.Sub(now)
	}

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		code := fmt.Sprintf("%04d", rand.Intn(10000))
		taken, err := s.matchRepo.CodeExists(code, now)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		if s.cacheRepo == nil {
			return code, nil
		}
		reserved, err := s.cacheRepo.SetNX("match:code:"+code, 1, ttl)
		if err != nil {
			// Кеш недоступен: полагаемся только на проверку в базе
			return code, nil
		}
		if reserved {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
