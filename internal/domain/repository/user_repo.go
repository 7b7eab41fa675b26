package repository

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с игроками
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetBySignedDigests ищет подписанного игрока по дайджестам
	// e-mail и приватного токена
	GetBySignedDigests(emailDigest, tokenDigest string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]entity.User, int64, error)
}
