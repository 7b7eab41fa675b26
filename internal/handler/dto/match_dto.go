package dto

import (
	"time"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// AnswerResponse представляет вариант ответа в формате для администратора
type AnswerResponse struct {
	ID        uint   `json:"id"`
	Position  int    `json:"position"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Level     int    `json:"level"`
}

// QuestionResponse представляет вопрос в формате для администратора
type QuestionResponse struct {
	ID         uint             `json:"id"`
	GameID     *uint            `json:"game_id,omitempty"`
	Position   int              `json:"position"`
	Text       string           `json:"text"`
	ContentURL *string          `json:"content_url,omitempty"`
	TimeSec    *int             `json:"time_sec,omitempty"`
	Boolean    bool             `json:"boolean"`
	Answers    []AnswerResponse `json:"answers,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// GameResponse представляет игру в формате для администратора
type GameResponse struct {
	ID        uint               `json:"id"`
	MatchID   uint               `json:"match_id"`
	Index     int                `json:"index"`
	Order     bool               `json:"order"`
	Questions []QuestionResponse `json:"questions,omitempty"`
}

// MatchResponse представляет матч в формате для администратора.
// Пароль возвращается только здесь: игрокам он не виден.
type MatchResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	UHash        *string        `json:"uhash,omitempty"`
	Code         *string        `json:"code,omitempty"`
	Password     *string        `json:"password,omitempty"`
	IsRestricted bool           `json:"is_restricted"`
	Order        bool           `json:"order"`
	Times        int            `json:"times"`
	FromTime     time.Time      `json:"from_time"`
	ToTime       *time.Time     `json:"to_time,omitempty"`
	Games        []GameResponse `json:"games,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// RankingResponse представляет строку итогового рейтинга матча
type RankingResponse struct {
	UserID    uint      `json:"user_id"`
	Score     float64   `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginatedRankingResponse представляет пагинированный рейтинг
type PaginatedRankingResponse struct {
	Rankings []RankingResponse `json:"rankings"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
}

// NewAnswerResponse создает DTO для варианта ответа
func NewAnswerResponse(a *entity.Answer) AnswerResponse {
	return AnswerResponse{
		ID:        a.ID,
		Position:  a.Position,
		Text:      a.Text,
		IsCorrect: a.IsCorrect,
		Level:     a.Level,
	}
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	answers := make([]AnswerResponse, len(q.Answers))
	for i := range q.Answers {
		answers[i] = NewAnswerResponse(&q.Answers[i])
	}
	return QuestionResponse{
		ID:         q.ID,
		GameID:     q.GameID,
		Position:   q.Position,
		Text:       q.Text,
		ContentURL: q.ContentURL,
		TimeSec:    q.TimeSec,
		Boolean:    q.Boolean,
		Answers:    answers,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// NewGameResponse создает DTO для игры
func NewGameResponse(g *entity.Game, includeQuestions bool) GameResponse {
	resp := GameResponse{
		ID:      g.ID,
		MatchID: g.MatchID,
		Index:   g.Index,
		Order:   g.Ordered,
	}
	if includeQuestions {
		resp.Questions = make([]QuestionResponse, len(g.Questions))
		for i := range g.Questions {
			resp.Questions[i] = NewQuestionResponse(&g.Questions[i])
		}
	}
	return resp
}

// NewMatchResponse создает DTO для матча
func NewMatchResponse(m *entity.Match, includeGames bool) *MatchResponse {
	if m == nil {
		return nil
	}
	resp := &MatchResponse{
		ID:           m.ID,
		Name:         m.Name,
		UHash:        m.UHash,
		Code:         m.Code,
		Password:     m.Password,
		IsRestricted: m.IsRestricted,
		Order:        m.Ordered,
		Times:        m.Times,
		FromTime:     m.FromTime,
		ToTime:       m.ToTime,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if includeGames {
		resp.Games = make([]GameResponse, len(m.Games))
		for i := range m.Games {
			resp.Games[i] = NewGameResponse(&m.Games[i], true)
		}
	}
	return resp
}

// NewListMatchResponse создает слайс DTO для списка матчей
func NewListMatchResponse(matches []entity.Match) []*MatchResponse {
	list := make([]*MatchResponse, len(matches))
	for i := range matches {
		list[i] = NewMatchResponse(&matches[i], false)
	}
	return list
}

// NewRankingResponse создает DTO для строки рейтинга
func NewRankingResponse(r *entity.Ranking) RankingResponse {
	return RankingResponse{
		UserID:    r.UserID,
		Score:     r.Score,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewPaginatedRankingResponse создает DTO для пагинированного рейтинга
func NewPaginatedRankingResponse(rankings []entity.Ranking, total int64, page, perPage int) *PaginatedRankingResponse {
	list := make([]RankingResponse, len(rankings))
	for i := range rankings {
		list[i] = NewRankingResponse(&rankings[i])
	}
	return &PaginatedRankingResponse{
		Rankings: list,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
}
