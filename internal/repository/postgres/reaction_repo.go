package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
)

// ReactionRepo реализует repository.ReactionRepository
type ReactionRepo struct {
	db *gorm.DB
}

// NewReactionRepo создает новый репозиторий реакций
func NewReactionRepo(db *gorm.DB) *ReactionRepo {
	return &ReactionRepo{db: db}
}

// conn возвращает переданную транзакцию либо базовое подключение
func (r *ReactionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create сохраняет реакцию. Нарушение уникального индекса
// (user_id, match_id, question_id) — например при двух параллельных
// запросах одного игрока — переводится в ErrDuplicateReaction.
func (r *ReactionRepo) Create(tx *gorm.DB, reaction *entity.Reaction) error {
	if err := r.conn(tx).Create(reaction).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: question #%d", repository.ErrDuplicateReaction, reaction.QuestionID)
		}
		return err
	}
	return nil
}

// Update обновляет реакцию (записывает ответ и очки)
func (r *ReactionRepo) Update(tx *gorm.DB, reaction *entity.Reaction) error {
	return r.conn(tx).Save(reaction).Error
}

// ListByUserAndMatch возвращает реакции пользователя в матче вместе
// с вопросами, в порядке создания
func (r *ReactionRepo) ListByUserAndMatch(tx *gorm.DB, userID, matchID uint) ([]entity.Reaction, error) {
	var reactions []entity.Reaction
	err := r.conn(tx).
		Preload("Question").
		Where("user_id = ? AND match_id = ?", userID, matchID).
		Order("created_at ASC, id ASC").
		Find(&reactions).Error
	return reactions, err
}

// CountByMatch возвращает количество реакций в матче
func (r *ReactionRepo) CountByMatch(matchID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Reaction{}).Where("match_id = ?", matchID).Count(&count).Error
	return count, err
}

// isUniqueViolation проверяет Postgres unique violation (23505).
// Драйвер gorm работает поверх pgx, ошибки приходят как pgconn.PgError.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
