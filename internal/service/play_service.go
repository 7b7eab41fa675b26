package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/matchplay-api/internal/domain/entity"
	"github.com/yourusername/matchplay-api/internal/domain/repository"
	apperrors "github.com/yourusername/matchplay-api/internal/pkg/errors"
	"github.com/yourusername/matchplay-api/internal/service/play"
)

// PlayResult — итог одного шага прохождения: либо следующий вопрос,
// либо завершение матча с финальным счётом
type PlayResult struct {
	Match     *entity.Match
	User      *entity.User
	Question  *entity.Question
	MatchOver bool
	Score     float64
}

// PlayService — оркестрация прохождения матча. Каждый мутирующий
// вызов выполняется в одной транзакции: чтение реакций и запись
// новых видят одно состояние, а гонку двух одинаковых запросов
// разрешает уникальный индекс реакций.
type PlayService struct {
	db           *gorm.DB
	matchRepo    repository.MatchRepository
	reactionRepo repository.ReactionRepository
	rankingRepo  repository.RankingRepository
	userService  *UserService
	clock        play.Clock
	score        play.ScoreFunc
}

// NewPlayService создает новый сервис прохождения матчей
func NewPlayService(
	db *gorm.DB,
	matchRepo repository.MatchRepository,
	reactionRepo repository.ReactionRepository,
	rankingRepo repository.RankingRepository,
	userService *UserService,
) *PlayService {
	return &PlayService{
		db:           db,
		matchRepo:    matchRepo,
		reactionRepo: reactionRepo,
		rankingRepo:  rankingRepo,
		userService:  userService,
		clock:        play.SystemClock{},
		score:        play.DefaultScore,
	}
}

// txReactions привязывает репозиторий реакций к транзакции запроса
type txReactions struct {
	tx   *gorm.DB
	repo repository.ReactionRepository
}

func (a txReactions) Create(r *entity.Reaction) error {
	return a.repo.Create(a.tx, r)
}

func (a txReactions) Update(r *entity.Reaction) error {
	return a.repo.Update(a.tx, r)
}

func (a txReactions) ListByUserAndMatch(userID, matchID uint) ([]entity.Reaction, error) {
	return a.repo.ListByUserAndMatch(a.tx, userID, matchID)
}

// txRankings привязывает репозиторий рейтинга к транзакции запроса
type txRankings struct {
	tx   *gorm.DB
	repo repository.RankingRepository
}

func (a txRankings) Upsert(rk *entity.Ranking) error {
	return a.repo.Upsert(a.tx, rk)
}

// Land открывает матч по публичному хэшу. Для публичного матча сразу
// создаётся анонимный игрок; в ограниченный надо войти через Sign.
func (s *PlayService) Land(uhash string) (*entity.Match, *entity.User, error) {
	match, err := s.matchRepo.GetByUHash(uhash)
	if err != nil {
		return nil, nil, err
	}
	if !match.IsActiveAt(s.clock.Now()) {
		return nil, nil, &play.MatchError{Message: "Expired match"}
	}
	if match.IsRestricted {
		return match, nil, nil
	}
	user, err := s.userService.CreateAnonymous()
	if err != nil {
		return nil, nil, err
	}
	return match, user, nil
}

// CodeEntry открывает матч по коду среди активных матчей
func (s *PlayService) CodeEntry(code string) (*entity.Match, *entity.User, error) {
	match, err := s.matchRepo.GetActiveByCode(code, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userService.CreateAnonymous()
	if err != nil {
		return nil, nil, err
	}
	return match, user, nil
}

// Sign — вход подписанного игрока по e-mail и приватному токену
func (s *PlayService) Sign(email, token string) (*entity.User, error) {
	return s.userService.Sign(email, token)
}

// Start начинает прохождение матча и возвращает первый непоказанный
// вопрос. Ограниченный матч требует подписанного игрока и пароль.
func (s *PlayService) Start(matchID, userID uint, password string) (*PlayResult, error) {
	match, user, err := s.loadMatchAndUser(matchID, userID)
	if err != nil {
		return nil, err
	}
	if match.IsRestricted {
		if !user.IsSigned() {
			return nil, &play.MatchError{Message: "User cannot access this match"}
		}
		if password == "" {
			return nil, &play.MatchError{Message: "Password is required for private matches"}
		}
		if match.Password == nil || password != *match.Password {
			return nil, &play.MatchError{Message: "Password mismatch"}
		}
	}

	var out PlayResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		reactions := txReactions{tx: tx, repo: s.reactionRepo}
		status := play.NewPlayerStatus(user, match, reactions)

		attempts, err := status.StartAttempts()
		if err != nil {
			return err
		}
		player := s.newPlayer(status, user, match, tx, attempts+1)

		question, err := player.Start()
		if err != nil {
			if errors.Is(err, play.ErrMatchNotPlayable) {
				resumable, rerr := player.MatchCanBeResumed()
				if rerr != nil {
					return rerr
				}
				return &NotPlayableError{CanBeResumed: resumable}
			}
			if errors.Is(err, play.ErrMatchOver) {
				total, serr := status.CurrentScore()
				if serr != nil {
					return serr
				}
				out = PlayResult{Match: match, User: user, MatchOver: true, Score: total}
				return nil
			}
			return err
		}
		out = PlayResult{Match: match, User: user, Question: question}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[PlayService] User %d started match %d", userID, matchID)
	return &out, nil
}

// Next записывает ответ на текущий вопрос и возвращает следующий,
// либо завершение матча с финальным счётом. Вызов без предыдущего
// Start продолжает прохождение с последнего показанного вопроса.
func (s *PlayService) Next(matchID, userID, questionID uint, answerID *uint) (*PlayResult, error) {
	match, user, err := s.loadMatchAndUser(matchID, userID)
	if err != nil {
		return nil, err
	}

	question := findQuestion(match, questionID)
	if question == nil {
		return nil, fmt.Errorf("%w: question #%d in match #%d", apperrors.ErrNotFound, questionID, matchID)
	}
	var answer *entity.Answer
	if answerID != nil {
		answer = question.AnswerByID(*answerID)
		if answer == nil {
			return nil, fmt.Errorf("%w: answer #%d does not belong to question #%d",
				apperrors.ErrValidation, *answerID, questionID)
		}
	}

	var out PlayResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		reactions := txReactions{tx: tx, repo: s.reactionRepo}
		status := play.NewPlayerStatus(user, match, reactions)

		attempts, err := status.StartAttempts()
		if err != nil {
			return err
		}
		if attempts < 1 {
			attempts = 1
		}
		player := s.newPlayer(status, user, match, tx, attempts)

		next, err := player.React(answer, question)
		if err != nil {
			if errors.Is(err, play.ErrMatchOver) {
				total, serr := status.CurrentScore()
				if serr != nil {
					return serr
				}
				out = PlayResult{Match: match, User: user, MatchOver: true, Score: total}
				return nil
			}
			return err
		}
		out = PlayResult{Match: match, User: user, Question: next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.MatchOver {
		log.Printf("[PlayService] User %d finished match %d with score %.2f", userID, matchID, out.Score)
	}
	return &out, nil
}

// newPlayer собирает SinglePlayer с зерном перестановки, стабильным
// внутри одной попытки прохождения
func (s *PlayService) newPlayer(status *play.PlayerStatus, user *entity.User, match *entity.Match, tx *gorm.DB, attempt int) *play.SinglePlayer {
	return play.NewSinglePlayer(status, user, match, play.Dependencies{
		Clock:     s.clock,
		Shuffle:   play.SeededShuffle(playSeed(match.ID, user.ID, attempt)),
		Score:     s.score,
		Reactions: txReactions{tx: tx, repo: s.reactionRepo},
		Rankings:  txRankings{tx: tx, repo: s.rankingRepo},
	})
}

func (s *PlayService) loadMatchAndUser(matchID, userID uint) (*entity.Match, *entity.User, error) {
	match, err := s.matchRepo.GetWithGames(matchID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.userService.GetByID(userID)
	if err != nil {
		return nil, nil, err
	}
	return match, user, nil
}

// findQuestion ищет вопрос в загруженном дереве матча
func findQuestion(match *entity.Match, questionID uint) *entity.Question {
	for i := range match.Games {
		for j := range match.Games[i].Questions {
			if match.Games[i].Questions[j].ID == questionID {
				return &match.Games[i].Questions[j]
			}
		}
	}
	return nil
}

// playSeed — зерно перестановки: матч, игрок и номер попытки.
// Внутри одной попытки порядок стабилен, между попытками различается.
func playSeed(matchID, userID uint, attempt int) int64 {
	return int64(matchID)*1_000_003 + int64(userID)*7_919 + int64(attempt)
}
