package service

import (
	"errors"
	"fmt"
	"log"
	"net/mail"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
	"github.com/yourusername/matchplay-api/pkg/auth"
)

// UserService управляет игроками: анонимными для публичных матчей
// и подписанными (e-mail + токен) для ограниченных.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис игроков
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateAnonymous создаёт игрока без e-mail для публичного матча
func (s *UserService) CreateAnonymous() (*entity.User, error) {
	user := &entity.User{}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create anonymous user: %w", err)
	}
	log.Printf("[UserService] Created anonymous user %d", user.ID)
	return user, nil
}

// Sign находит или создаёт подписанного игрока по e-mail и приватному
// токену. В базе хранятся только дайджесты: сами значения не пишутся.
func (s *UserService) Sign(email, token string) (*entity.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", apperrors.ErrValidation)
	}

	emailDigest := auth.WordDigest(email)
	tokenDigest := auth.WordDigest(token)

	user, err := s.userRepo.GetBySignedDigests(emailDigest, tokenDigest)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user = &entity.User{
		EmailDigest: &emailDigest,
		TokenDigest: &tokenDigest,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create signed user: %w", err)
	}
	log.Printf("[UserService] Created signed user %d", user.ID)
	return user, nil
}

// GetByID возвращает игрока по ID
func (s *UserService) GetByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// List возвращает игроков с пагинацией
func (s *UserService) List(limit, offset int) ([]entity.User, int64, error) {
	return s.userRepo.List(limit, offset)
}
