package play

import (
	"github.com/yourusername/matchplay-api/internal/domain/entity"
)

// PlayerStatus отвечает на вопросы о прогрессе пользователя в матче.
// Каждый метод выполняет не более одного запроса к хранилищу: все
// производные значения считаются из списка реакций в памяти.
type PlayerStatus struct {
	user   *entity.User
	match  *entity.Match
	reader ReactionReader
}

// NewPlayerStatus создаёт статус игрока user в матче match.
// match должен быть загружен вместе с играми и вопросами.
func NewPlayerStatus(user *entity.User, match *entity.Match, reader ReactionReader) *PlayerStatus {
	return &PlayerStatus{user: user, match: match, reader: reader}
}

// User возвращает игрока
func (p *PlayerStatus) User() *entity.User {
	return p.user
}

// Match возвращает матч
func (p *PlayerStatus) Match() *entity.Match {
	return p.match
}

// Reactions возвращает реакции пользователя в матче в порядке создания
func (p *PlayerStatus) Reactions() ([]entity.Reaction, error) {
	return p.reader.ListByUserAndMatch(p.user.ID, p.match.ID)
}

// QuestionsDisplayed возвращает вопросы, уже показанные пользователю
// в этом матче
func (p *PlayerStatus) QuestionsDisplayed() (map[uint]*entity.Question, error) {
	reactions, err := p.Reactions()
	if err != nil {
		return nil, err
	}
	displayed := make(map[uint]*entity.Question, len(reactions))
	for i := range reactions {
		displayed[reactions[i].QuestionID] = &reactions[i].Question
	}
	return displayed, nil
}

// QuestionsDisplayedByGame возвращает показанные вопросы одной игры
func (p *PlayerStatus) QuestionsDisplayedByGame(game *entity.Game) (map[uint]*entity.Question, error) {
	reactions, err := p.Reactions()
	if err != nil {
		return nil, err
	}
	displayed := make(map[uint]*entity.Question)
	for i := range reactions {
		if reactions[i].GameID == game.ID {
			displayed[reactions[i].QuestionID] = &reactions[i].Question
		}
	}
	return displayed, nil
}

// AllGamesPlayed возвращает игры матча, в которых показаны все
// вопросы. Игра без вопросов сыгранной не считается.
func (p *PlayerStatus) AllGamesPlayed() (map[uint]*entity.Game, error) {
	reactions, err := p.Reactions()
	if err != nil {
		return nil, err
	}
	reacted := make(map[uint]bool, len(reactions))
	for i := range reactions {
		reacted[reactions[i].QuestionID] = true
	}

	played := make(map[uint]*entity.Game)
	for i := range p.match.Games {
		game := &p.match.Games[i]
		if len(game.Questions) == 0 {
			continue
		}
		done := true
		for j := range game.Questions {
			if !reacted[game.Questions[j].ID] {
				done = false
				break
			}
		}
		if done {
			played[game.ID] = game
		}
	}
	return played, nil
}

// CurrentScore возвращает сумму очков всех реакций пользователя
// в матче; реакции без очков не учитываются
func (p *PlayerStatus) CurrentScore() (float64, error) {
	reactions, err := p.Reactions()
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range reactions {
		if reactions[i].Score != nil {
			total += *reactions[i].Score
		}
	}
	return total, nil
}

// StartAttempts возвращает число стартов матча пользователем
func (p *PlayerStatus) StartAttempts() (int, error) {
	reactions, err := p.Reactions()
	if err != nil {
		return 0, err
	}
	attempts := 0
	for i := range reactions {
		if reactions[i].Starter {
			attempts++
		}
	}
	return attempts, nil
}
