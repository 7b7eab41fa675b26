package repository

import (
	"time"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// MatchRepository определяет методы для работы с матчами
type MatchRepository interface {
	Create(match *entity.Match) error
	// GetByID возвращает матч без связей
	GetByID(id uint) (*entity.Match, error)
	// GetWithGames возвращает матч с играми, вопросами и ответами,
	// отсортированными по индексу/позиции
	GetWithGames(id uint) (*entity.Match, error)
	GetByUHash(uhash string) (*entity.Match, error)
	// GetActiveByCode ищет матч по коду среди активных в момент now
	GetActiveByCode(code string, now time.Time) (*entity.Match, error)
	List(limit, offset int) ([]entity.Match, int64, error)
	Update(match *entity.Match) error
	Delete(id uint) error

	// Проверки уникальности для генераторов имени, хэша, пароля и кода
	NameExists(name string) (bool, error)
	UHashExists(uhash string) (bool, error)
	PasswordExists(password string) (bool, error)
	CodeExists(code string, now time.Time) (bool, error)
}
