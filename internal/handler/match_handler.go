package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
	"github.com/yourusername/matchplay-api/internal/handler/dto"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
	"github.com/yourusername/matchplay-api/internal/service"
)

// MatchHandler обрабатывает административные запросы: авторинг
// матчей, импорт вопросов, приглашения и рейтинг
type MatchHandler struct {
	matchService   *service.MatchService
	rankingService *service.RankingService
}

// NewMatchHandler создает новый обработчик матчей
func NewMatchHandler(
	matchService *service.MatchService,
	rankingService *service.RankingService,
) *MatchHandler {
	return &MatchHandler{
		matchService:   matchService,
		rankingService: rankingService,
	}
}

// CreateMatchRequest представляет запрос на создание матча
type CreateMatchRequest struct {
	Name         string     `json:"name" binding:"omitempty,max=100"`
	WithCode     bool       `json:"with_code"`
	IsRestricted bool       `json:"is_restricted"`
	Order        *bool      `json:"order"`
	Times        *int       `json:"times"`
	FromTime     *time.Time `json:"from_time"`
	ToTime       *time.Time `json:"to_time"`
}

// CreateMatch обрабатывает запрос на создание матча
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(service.CreateMatchInput{
		Name:         req.Name,
		WithCode:     req.WithCode,
		IsRestricted: req.IsRestricted,
		Order:        req.Order,
		Times:        req.Times,
		FromTime:     req.FromTime,
		ToTime:       req.ToTime,
	})
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMatchResponse(match, false))
}

// GetMatch возвращает матч с деревом игр и вопросов
func (h *MatchHandler) GetMatch(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint) // Получаем из контекста

	match, err := h.matchService.GetMatchWithGames(matchID)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchResponse(match, true))
}

// ListMatches возвращает список матчей с пагинацией
func (h *MatchHandler) ListMatches(c *gin.Context) {
	page, pageSize := pagination(c)

	matches, total, err := h.matchService.ListMatches(pageSize, (page-1)*pageSize)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": dto.NewListMatchResponse(matches),
		"total":   total,
		"page":    page,
		"size":    pageSize,
	})
}

// UpdateMatchRequest представляет запрос на изменение матча
type UpdateMatchRequest struct {
	Name     *string    `json:"name" binding:"omitempty,max=100"`
	Times    *int       `json:"times"`
	Order    *bool      `json:"order"`
	FromTime *time.Time `json:"from_time"`
	ToTime   *time.Time `json:"to_time"`
}

// UpdateMatch обрабатывает запрос на изменение матча
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateMatch(matchID, service.UpdateMatchInput{
		Name:     req.Name,
		Times:    req.Times,
		Order:    req.Order,
		FromTime: req.FromTime,
		ToTime:   req.ToTime,
	})
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchResponse(match, false))
}

// DeleteMatch обрабатывает запрос на удаление матча
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	if err := h.matchService.DeleteMatch(matchID); err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Match deleted successfully"})
}

// AddGameRequest представляет запрос на добавление игры
type AddGameRequest struct {
	Index int   `json:"index"`
	Order *bool `json:"order"`
}

// AddGame обрабатывает запрос на добавление игры в матч
func (h *MatchHandler) AddGame(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	var req AddGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.matchService.AddGame(matchID, service.GameInput{
		Index: req.Index,
		Order: req.Order,
	})
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewGameResponse(game, false))
}

// QuestionRequest представляет запрос на создание или изменение вопроса
type QuestionRequest struct {
	Text       string  `json:"text" binding:"required,min=1,max=500"`
	Position   *int    `json:"position"`
	TimeSec    *int    `json:"time_sec"`
	ContentURL *string `json:"content_url"`
	Boolean    bool    `json:"boolean"`
	Answers    []struct {
		Text      string `json:"text" binding:"required,max=3000"`
		Position  *int   `json:"position"`
		IsCorrect bool   `json:"is_correct"`
		Level     int    `json:"level"`
	} `json:"answers"`
}

func (r *QuestionRequest) toInput() service.QuestionInput {
	in := service.QuestionInput{
		Text:       r.Text,
		Position:   r.Position,
		TimeSec:    r.TimeSec,
		ContentURL: r.ContentURL,
		Boolean:    r.Boolean,
	}
	for _, a := range r.Answers {
		in.Answers = append(in.Answers, service.AnswerInput{
			Text:      a.Text,
			Position:  a.Position,
			IsCorrect: a.IsCorrect,
			Level:     a.Level,
		})
	}
	return in
}

// AddQuestion обрабатывает запрос на добавление вопроса в игру
func (h *MatchHandler) AddQuestion(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.matchService.AddQuestion(gameID, req.toInput())
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// CreateTemplateQuestion добавляет вопрос в общий каталог
func (h *MatchHandler) CreateTemplateQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.matchService.CreateTemplateQuestion(req.toInput())
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question))
}

// ListTemplateQuestions возвращает каталог шаблонных вопросов
func (h *MatchHandler) ListTemplateQuestions(c *gin.Context) {
	page, pageSize := pagination(c)

	questions, total, err := h.matchService.ListTemplateQuestions(pageSize, (page-1)*pageSize)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	list := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		list[i] = dto.NewQuestionResponse(&questions[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": list,
		"total":     total,
		"page":      page,
		"size":      pageSize,
	})
}

// UpdateQuestion обрабатывает запрос на изменение вопроса
func (h *MatchHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.matchService.UpdateQuestion(questionID, req.toInput())
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// ImportTemplatesRequest представляет запрос на импорт шаблонов в игру
type ImportTemplatesRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

// ImportTemplateQuestions клонирует шаблонные вопросы в игру
func (h *MatchHandler) ImportTemplateQuestions(c *gin.Context) {
	gameID := c.MustGet("gameID").(uint)

	var req ImportTemplatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.matchService.ImportTemplateQuestions(gameID, req.QuestionIDs)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	list := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		list[i] = dto.NewQuestionResponse(&questions[i])
	}
	c.JSON(http.StatusOK, gin.H{"questions": list, "total": len(list)})
}

// ImportYAML создаёт игры и вопросы матча из YAML-файла.
// Файл принимается полем 'file' формы либо сырым телом запроса.
func (h *MatchHandler) ImportYAML(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	data, err := readUploadedFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.ImportYAML(matchID, data)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchResponse(match, true))
}

// InviteRequest представляет запрос на приглашение в матч
type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Invite отправляет приглашение в ограниченный матч по e-mail
func (h *MatchHandler) Invite(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.matchService.InviteToMatch(c.Request.Context(), matchID, req.Email); err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite sent successfully"})
}

// GetRankings возвращает пагинированный рейтинг матча
func (h *MatchHandler) GetRankings(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)
	page, pageSize := pagination(c)

	rankings, total, err := h.rankingService.ListByMatch(matchID, page, pageSize)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedRankingResponse(rankings, total, page, pageSize))
}

// GetMatchStats возвращает сводку активности матча
func (h *MatchHandler) GetMatchStats(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)

	reactions, err := h.rankingService.CountReactions(matchID)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}
	rankings, err := h.rankingService.GetAllByMatch(matchID)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reactions": reactions,
		"players":   len(rankings),
	})
}

// ExportRankings экспортирует рейтинг матча в CSV или Excel формате
// GET /api/admin/matches/:id/rankings/export?format=csv|xlsx
func (h *MatchHandler) ExportRankings(c *gin.Context) {
	matchID := c.MustGet("matchID").(uint)
	format := c.DefaultQuery("format", "csv")

	rankings, err := h.rankingService.GetAllByMatch(matchID)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}
	match, err := h.matchService.GetMatch(matchID)
	if err != nil {
		h.handleMatchError(c, err)
		return
	}

	filename := fmt.Sprintf("match_%d_rankings_%s", matchID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rankings, match, filename)
	default:
		h.exportCSV(c, rankings, match, filename)
	}
}

// exportCSV экспортирует рейтинг в CSV с правильным экранированием спецсимволов
func (h *MatchHandler) exportCSV(c *gin.Context, rankings []entity.Ranking, match *entity.Match, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Место", "Матч", "Игрок", "Очки", "Завершён"})

	for i, r := range rankings {
		writer.Write([]string{
			strconv.Itoa(i + 1),
			sanitizeForExcel(match.Name),
			playerLabel(&r),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			r.UpdatedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует рейтинг в Excel с использованием StreamWriter
func (h *MatchHandler) exportXLSX(c *gin.Context, rankings []entity.Ranking, match *entity.Match, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Рейтинг"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[MatchHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Место", "Матч", "Игрок", "Очки", "Завершён"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[MatchHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range rankings {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{i + 1, sanitizeForExcel(match.Name), playerLabel(&r), r.Score, r.UpdatedAt.Format(time.RFC3339)}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[MatchHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[MatchHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[MatchHandler] Ошибка записи Excel в response: %v", err)
	}
}

// playerLabel — подпись игрока для экспорта; e-mail игроков не
// хранится в открытом виде, поэтому подписываем по ID
func playerLabel(r *entity.Ranking) string {
	if r.User.IsSigned() {
		return fmt.Sprintf("Игрок %d (подписан)", r.UserID)
	}
	return fmt.Sprintf("Игрок %d", r.UserID)
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// pagination извлекает параметры пагинации из query
func pagination(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// readUploadedFile читает файл из multipart-формы либо тело запроса
func readUploadedFile(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil {
		opened, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer opened.Close()
		return io.ReadAll(opened)
	}
	data, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("file is required")
	}
	return data, nil
}

// handleMatchError обрабатывает ошибки от сервисов и отправляет соответствующий HTTP ответ
func (h *MatchHandler) handleMatchError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, repository.ErrNotUsableQuestion) || errors.Is(err, service.ErrMatchHasNoInvite) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in MatchHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
