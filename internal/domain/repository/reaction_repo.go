package repository

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"gorm.io/gorm"
)

// ReactionRepository определяет методы для работы с реакциями.
// Методы принимают tx для выполнения внутри транзакции запроса;
// при tx == nil используется базовое подключение.
type ReactionRepository interface {
	// Create возвращает ErrDuplicateReaction при нарушении уникальности
	// (user_id, match_id, question_id)
	Create(tx *gorm.DB, reaction *entity.Reaction) error
	Update(tx *gorm.DB, reaction *entity.Reaction) error
	// ListByUserAndMatch возвращает реакции пользователя в матче вместе
	// с вопросами, в порядке создания
	ListByUserAndMatch(tx *gorm.DB, userID, matchID uint) ([]entity.Reaction, error)
	CountByMatch(matchID uint) (int64, error)
}
