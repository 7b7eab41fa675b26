package dto

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/service"
)

// PlayAnswerResponse представляет вариант ответа для игрока.
// Правильность и вес ответа игроку не раскрываются.
type PlayAnswerResponse struct {
	ID       uint   `json:"id"`
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// PlayQuestionResponse представляет показанный игроку вопрос
type PlayQuestionResponse struct {
	ID         uint                 `json:"id"`
	GameID     *uint                `json:"game_id,omitempty"`
	Text       string               `json:"text"`
	ContentURL *string              `json:"content_url,omitempty"`
	TimeSec    *int                 `json:"time_sec,omitempty"`
	Boolean    bool                 `json:"boolean"`
	Answers    []PlayAnswerResponse `json:"answers"`
}

// PlayMatchResponse представляет матч глазами игрока
type PlayMatchResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	IsRestricted bool   `json:"is_restricted"`
}

// PlayStepResponse представляет итог одного шага прохождения
type PlayStepResponse struct {
	Match     *PlayMatchResponse    `json:"match,omitempty"`
	UserID    uint                  `json:"user_id,omitempty"`
	Question  *PlayQuestionResponse `json:"question,omitempty"`
	MatchOver bool                  `json:"match_over"`
	Score     *float64              `json:"score,omitempty"`
}

// NewPlayQuestionResponse создает DTO вопроса для игрока
func NewPlayQuestionResponse(q *entity.Question) *PlayQuestionResponse {
	if q == nil {
		return nil
	}
	answers := make([]PlayAnswerResponse, len(q.Answers))
	for i := range q.Answers {
		answers[i] = PlayAnswerResponse{
			ID:       q.Answers[i].ID,
			Position: q.Answers[i].Position,
			Text:     q.Answers[i].Text,
		}
	}
	return &PlayQuestionResponse{
		ID:         q.ID,
		GameID:     q.GameID,
		Text:       q.Text,
		ContentURL: q.ContentURL,
		TimeSec:    q.TimeSec,
		Boolean:    q.Boolean,
		Answers:    answers,
	}
}

// NewPlayMatchResponse создает DTO матча для игрока
func NewPlayMatchResponse(m *entity.Match) *PlayMatchResponse {
	if m == nil {
		return nil
	}
	return &PlayMatchResponse{
		ID:           m.ID,
		Name:         m.Name,
		IsRestricted: m.IsRestricted,
	}
}

// NewPlayStepResponse создает DTO шага прохождения
func NewPlayStepResponse(result *service.PlayResult) *PlayStepResponse {
	resp := &PlayStepResponse{
		Match:     NewPlayMatchResponse(result.Match),
		Question:  NewPlayQuestionResponse(result.Question),
		MatchOver: result.MatchOver,
	}
	if result.User != nil {
		resp.UserID = result.User.ID
	}
	if result.MatchOver {
		score := result.Score
		resp.Score = &score
	}
	return resp
}
