package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/matchplay-api/internal/domain/repository"
	"github.com/yourusername/matchplay-api/internal/handler/dto"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
	"github.com/yourusername/matchplay-api/internal/service"
	"github.com/yourusername/matchplay-api/internal/service/play"
)

// PlayHandler обрабатывает запросы игроков: вход в матч,
// начало прохождения и ответы на вопросы
type PlayHandler struct {
	playService *service.PlayService
}

// NewPlayHandler создает новый обработчик прохождения
func NewPlayHandler(playService *service.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

// Land открывает матч по публичному хэшу
// GET /api/play/:uhash
func (h *PlayHandler) Land(c *gin.Context) {
	uhash := c.Param("uhash")
	if uhash == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uhash is required"})
		return
	}

	match, user, err := h.playService.Land(uhash)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}

	resp := gin.H{"match": dto.NewPlayMatchResponse(match)}
	if user != nil {
		resp["user_id"] = user.ID
	}
	c.JSON(http.StatusOK, resp)
}

// CodeEntryRequest представляет вход в матч по коду
type CodeEntryRequest struct {
	Code string `json:"code" binding:"required,len=4"`
}

// CodeEntry открывает матч по четырёхзначному коду
// POST /api/play/code
func (h *PlayHandler) CodeEntry(c *gin.Context) {
	var req CodeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, user, err := h.playService.CodeEntry(req.Code)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match":   dto.NewPlayMatchResponse(match),
		"user_id": user.ID,
	})
}

// SignRequest представляет вход подписанного игрока
type SignRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// Sign находит или создаёт подписанного игрока для ограниченного матча
// POST /api/play/sign
func (h *PlayHandler) Sign(c *gin.Context) {
	var req SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.playService.Sign(req.Email, req.Token)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": user.ID})
}

// StartRequest представляет запрос на начало прохождения
type StartRequest struct {
	MatchID  uint   `json:"match_id" binding:"required"`
	UserID   uint   `json:"user_id" binding:"required"`
	Password string `json:"password"`
}

// Start начинает прохождение матча и возвращает первый вопрос
// POST /api/play/start
func (h *PlayHandler) Start(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playService.Start(req.MatchID, req.UserID, req.Password)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPlayStepResponse(result))
}

// NextRequest представляет ответ на текущий вопрос.
// AnswerID == null — пропуск вопроса.
type NextRequest struct {
	MatchID    uint  `json:"match_id" binding:"required"`
	UserID     uint  `json:"user_id" binding:"required"`
	QuestionID uint  `json:"question_id" binding:"required"`
	AnswerID   *uint `json:"answer_id"`
}

// Next записывает ответ и возвращает следующий вопрос либо итог матча
// POST /api/play/next
func (h *PlayHandler) Next(c *gin.Context) {
	var req NextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playService.Next(req.MatchID, req.UserID, req.QuestionID, req.AnswerID)
	if err != nil {
		h.handlePlayError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPlayStepResponse(result))
}

// handlePlayError переводит ошибки прохождения в HTTP ответы
func (h *PlayHandler) handlePlayError(c *gin.Context, err error) {
	var matchErr *play.MatchError
	var gameErr *play.GameError
	var notPlayable *service.NotPlayableError

	switch {
	case errors.As(err, &notPlayable):
		c.JSON(http.StatusForbidden, gin.H{
			"error":          notPlayable.Error(),
			"error_type":     "not_playable",
			"can_be_resumed": notPlayable.CanBeResumed,
		})
	case errors.Is(err, play.ErrMatchNotPlayable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "error_type": "not_playable"})
	case errors.As(err, &matchErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": matchErr.Message, "error_type": "match"})
	case errors.As(err, &gameErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gameErr.Message, "error_type": "game"})
	case errors.Is(err, repository.ErrDuplicateReaction):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "duplicate"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in PlayHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
