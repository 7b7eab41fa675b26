package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
)

// CreateMatchInput — параметры создания матча
type CreateMatchInput struct {
	Name         string
	WithCode     bool
	IsRestricted bool
	Order        *bool
	Times        *int
	FromTime     *time.Time
	ToTime       *time.Time
}

// UpdateMatchInput — параметры изменения матча; nil-поля не трогаются
type UpdateMatchInput struct {
	Name     *string
	Times    *int
	Order    *bool
	FromTime *time.Time
	ToTime   *time.Time
}

// GameInput — параметры новой игры
type GameInput struct {
	Index int
	Order *bool
}

// AnswerInput — параметры ответа при создании вопроса
type AnswerInput struct {
	Text      string
	Position  *int
	IsCorrect bool
	Level     int
}

// QuestionInput — параметры нового вопроса
type QuestionInput struct {
	Text       string
	Position   *int
	TimeSec    *int
	ContentURL *string
	Boolean    bool
	Answers    []AnswerInput
}

// MatchService отвечает за авторинг: создание и изменение матчей,
// игр и вопросов, импорт шаблонов и YAML, приглашения.
type MatchService struct {
	db           *gorm.DB
	matchRepo    repository.MatchRepository
	gameRepo     repository.GameRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	emailService EmailService
}

// NewMatchService создает новый сервис авторинга матчей
func NewMatchService(
	db *gorm.DB,
	matchRepo repository.MatchRepository,
	gameRepo repository.GameRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
	emailService EmailService,
) *MatchService {
	return &MatchService{
		db:           db,
		matchRepo:    matchRepo,
		gameRepo:     gameRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		emailService: emailService,
	}
}

// CreateMatch создаёт матч. Матч с кодом получает четырёхзначный код,
// зарезервированный среди активных матчей; остальные — публичный
// хэш. Ограниченный матч дополнительно получает пароль.
func (s *MatchService) CreateMatch(in CreateMatchInput) (*entity.Match, error) {
	now := time.Now()

	if in.FromTime != nil && in.FromTime.Before(now) {
		return nil, fmt.Errorf("%w: from-time must be greater than now", apperrors.ErrValidation)
	}
	fromTime := now
	if in.FromTime != nil {
		fromTime = *in.FromTime
	}
	if in.ToTime != nil && !in.ToTime.After(fromTime) {
		return nil, fmt.Errorf("%w: to-time must be greater than from-time", apperrors.ErrValidation)
	}

	times := 1
	if in.Times != nil {
		if *in.Times < 0 {
			return nil, fmt.Errorf("%w: times cannot be negative", apperrors.ErrValidation)
		}
		times = *in.Times
	}
	ordered := true
	if in.Order != nil {
		ordered = *in.Order
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		generated, err := s.newMatchName()
		if err != nil {
			return nil, err
		}
		name = generated
	} else {
		taken, err := s.matchRepo.NameExists(name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: match name %q is taken", apperrors.ErrConflict, name)
		}
	}

	match := &entity.Match{
		Name:         name,
		IsRestricted: in.IsRestricted,
		Ordered:      ordered,
		Times:        times,
		FromTime:     fromTime,
		ToTime:       in.ToTime,
	}

	if in.WithCode {
		code, err := s.reserveCode(now, in.ToTime)
		if err != nil {
			return nil, err
		}
		match.Code = &code
	} else {
		uhash, err := s.newUHash()
		if err != nil {
			return nil, err
		}
		match.UHash = &uhash
	}
	if in.IsRestricted {
		password, err := s.newPassword()
		if err != nil {
			return nil, err
		}
		match.Password = &password
	}

	if err := s.matchRepo.Create(match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	log.Printf("[MatchService] Created match %d (%s)", match.ID, match.Name)
	return match, nil
}

// GetMatch возвращает матч без связей
func (s *MatchService) GetMatch(id uint) (*entity.Match, error) {
	return s.matchRepo.GetByID(id)
}

// GetMatchWithGames возвращает матч с полным деревом игр и вопросов
func (s *MatchService) GetMatchWithGames(id uint) (*entity.Match, error) {
	return s.matchRepo.GetWithGames(id)
}

// ListMatches возвращает матчи с пагинацией
func (s *MatchService) ListMatches(limit, offset int) ([]entity.Match, int64, error) {
	return s.matchRepo.List(limit, offset)
}

// UpdateMatch изменяет матч; nil-поля остаются как есть
func (s *MatchService) UpdateMatch(id uint, in UpdateMatchInput) (*entity.Match, error) {
	match, err := s.matchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != match.Name {
		taken, err := s.matchRepo.NameExists(*in.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: match name %q is taken", apperrors.ErrConflict, *in.Name)
		}
		match.Name = *in.Name
	}
	if in.Times != nil {
		if *in.Times < 0 {
			return nil, fmt.Errorf("%w: times cannot be negative", apperrors.ErrValidation)
		}
		match.Times = *in.Times
	}
	if in.Order != nil {
		match.Ordered = *in.Order
	}
	if in.FromTime != nil {
		match.FromTime = *in.FromTime
	}
	if in.ToTime != nil {
		match.ToTime = in.ToTime
	}
	if match.ToTime != nil && !match.ToTime.After(match.FromTime) {
		return nil, fmt.Errorf("%w: to-time must be greater than from-time", apperrors.ErrValidation)
	}

	if err := s.matchRepo.Update(match); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

// DeleteMatch удаляет матч
func (s *MatchService) DeleteMatch(id uint) error {
	return s.matchRepo.Delete(id)
}

// AddGame добавляет игру в матч
func (s *MatchService) AddGame(matchID uint, in GameInput) (*entity.Game, error) {
	if _, err := s.matchRepo.GetByID(matchID); err != nil {
		return nil, err
	}
	ordered := true
	if in.Order != nil {
		ordered = *in.Order
	}
	game := &entity.Game{
		MatchID: matchID,
		Index:   in.Index,
		Ordered: ordered,
	}
	if err := s.gameRepo.Create(game); err != nil {
		return nil, fmt.Errorf("failed to create game for match %d: %w", matchID, err)
	}
	return game, nil
}

// AddQuestion добавляет вопрос в игру. Позиция по умолчанию —
// следующая за последним вопросом игры.
func (s *MatchService) AddQuestion(gameID uint, in QuestionInput) (*entity.Question, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	question, err := buildQuestion(in)
	if err != nil {
		return nil, err
	}
	question.GameID = &game.ID
	if in.Position == nil {
		question.Position = len(game.Questions)
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question for game %d: %w", gameID, err)
	}
	return question, nil
}

// CreateTemplateQuestion добавляет вопрос в общий каталог
func (s *MatchService) CreateTemplateQuestion(in QuestionInput) (*entity.Question, error) {
	question, err := buildQuestion(in)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create template question: %w", err)
	}
	return question, nil
}

// ListTemplateQuestions возвращает каталог шаблонных вопросов
func (s *MatchService) ListTemplateQuestions(limit, offset int) ([]entity.Question, int64, error) {
	return s.questionRepo.ListTemplates(limit, offset)
}

// UpdateQuestion изменяет вопрос вместе с ответами
func (s *MatchService) UpdateQuestion(id uint, in QuestionInput) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	updated, err := buildQuestion(in)
	if err != nil {
		return nil, err
	}
	question.Text = updated.Text
	question.TimeSec = updated.TimeSec
	question.ContentURL = updated.ContentURL
	question.Boolean = updated.Boolean
	if in.Position != nil {
		question.Position = *in.Position
	}
	if in.Answers != nil {
		for i := range updated.Answers {
			updated.Answers[i].QuestionID = question.ID
		}
		question.Answers = updated.Answers
	}
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	return question, nil
}

// ImportTemplateQuestions клонирует шаблонные вопросы в игру.
// Шаблон остаётся в каталоге; вопрос, уже привязанный к игре,
// импортировать нельзя.
func (s *MatchService) ImportTemplateQuestions(gameID uint, questionIDs []uint) ([]entity.Question, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	templates, err := s.questionRepo.GetManyByIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	if len(templates) != len(questionIDs) {
		return nil, fmt.Errorf("%w: some questions do not exist", apperrors.ErrNotFound)
	}

	position := len(game.Questions)
	clones := make([]entity.Question, 0, len(templates))
	for i := range templates {
		if !templates[i].IsTemplate() {
			return nil, fmt.Errorf("%w: question #%d", repository.ErrNotUsableQuestion, templates[i].ID)
		}
		clone := templates[i].Clone()
		clone.GameID = &game.ID
		clone.Position = position
		position++
		clones = append(clones, *clone)
	}

	if err := s.questionRepo.CreateBatch(clones); err != nil {
		return nil, fmt.Errorf("failed to import questions into game %d: %w", gameID, err)
	}
	log.Printf("[MatchService] Imported %d template questions into game %d", len(clones), gameID)
	return clones, nil
}

// yamlMatchFile — формат YAML-импорта матча
type yamlMatchFile struct {
	Games []struct {
		Index     int   `yaml:"index"`
		Order     *bool `yaml:"order"`
		Questions []struct {
			Text       string `yaml:"text"`
			Time       *int   `yaml:"time"`
			ContentURL string `yaml:"content_url"`
			Boolean    bool   `yaml:"boolean"`
			Answers    []struct {
				Text    string `yaml:"text"`
				Correct bool   `yaml:"correct"`
				Level   int    `yaml:"level"`
			} `yaml:"answers"`
		} `yaml:"questions"`
	} `yaml:"games"`
}

// ImportYAML создаёт игры и вопросы матча из YAML-файла одной
// транзакцией: либо импортируется весь файл, либо ничего.
func (s *MatchService) ImportYAML(matchID uint, data []byte) (*entity.Match, error) {
	if _, err := s.matchRepo.GetByID(matchID); err != nil {
		return nil, err
	}

	var file yamlMatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: malformed yaml: %v", apperrors.ErrValidation, err)
	}
	if len(file.Games) == 0 {
		return nil, fmt.Errorf("%w: yaml file has no games", apperrors.ErrValidation)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, g := range file.Games {
			ordered := true
			if g.Order != nil {
				ordered = *g.Order
			}
			game := entity.Game{
				MatchID: matchID,
				Index:   g.Index,
				Ordered: ordered,
			}
			if err := tx.Create(&game).Error; err != nil {
				return err
			}
			for position, q := range g.Questions {
				if strings.TrimSpace(q.Text) == "" {
					return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
				}
				question := entity.Question{
					GameID:   &game.ID,
					Position: position,
					Text:     q.Text,
					TimeSec:  q.Time,
					Boolean:  q.Boolean,
				}
				if q.ContentURL != "" {
					contentURL := q.ContentURL
					question.ContentURL = &contentURL
				}
				for answerPosition, a := range q.Answers {
					question.Answers = append(question.Answers, entity.Answer{
						Position:  answerPosition,
						Text:      a.Text,
						IsCorrect: a.Correct,
						Level:     a.Level,
					})
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import yaml into match %d: %w", matchID, err)
	}

	log.Printf("[MatchService] Imported %d games into match %d from yaml", len(file.Games), matchID)
	return s.matchRepo.GetWithGames(matchID)
}

// InviteToMatch отправляет приглашение в ограниченный матч
func (s *MatchService) InviteToMatch(ctx context.Context, matchID uint, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	match, err := s.matchRepo.GetByID(matchID)
	if err != nil {
		return err
	}
	if !match.IsRestricted {
		return fmt.Errorf("%w: match %d is public", apperrors.ErrValidation, matchID)
	}
	if match.UHash == nil || match.Password == nil {
		return ErrMatchHasNoInvite
	}
	return s.emailService.SendMatchInvite(ctx, email, match.Name, *match.UHash, *match.Password)
}

// buildQuestion собирает вопрос из входных параметров
func buildQuestion(in QuestionInput) (*entity.Question, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	question := &entity.Question{
		Text:       in.Text,
		TimeSec:    in.TimeSec,
		ContentURL: in.ContentURL,
		Boolean:    in.Boolean,
	}
	if in.Position != nil {
		question.Position = *in.Position
	}
	for i, a := range in.Answers {
		if strings.TrimSpace(a.Text) == "" {
			return nil, fmt.Errorf("%w: answer text is required", apperrors.ErrValidation)
		}
		position := i
		if a.Position != nil {
			position = *a.Position
		}
		question.Answers = append(question.Answers, entity.Answer{
			Position:  position,
			Text:      a.Text,
			IsCorrect: a.IsCorrect,
			Level:     a.Level,
		})
	}
	return question, nil
}

// уникальное имя по умолчанию в духе "M-<uuid>"
func (s *MatchService) newMatchName() (string, error) {
	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		name := "M-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:23]
		taken, err := s.matchRepo.NameExists(name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique match name")
}
