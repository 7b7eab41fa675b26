package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsTemplate(t *testing.T) {
	// Arrange
	template := &Question{ID: 1, Text: "Какой язык используется в Go?"}
	gameID := uint(5)
	bound := &Question{ID: 2, GameID: &gameID}

	// Act & Assert
	assert.True(t, template.IsTemplate(), "вопрос без game_id — шаблон")
	assert.False(t, bound.IsTemplate(), "вопрос с game_id — не шаблон")
}

func TestQuestion_AnswerByID(t *testing.T) {
	// Arrange
	question := &Question{
		ID:   1,
		Text: "Столица Казахстана?",
		Answers: []Answer{
			{ID: 10, Text: "Астана", IsCorrect: true},
			{ID: 11, Text: "Алматы"},
		},
	}

	// Act & Assert
	found := question.AnswerByID(11)
	require.NotNil(t, found)
	assert.Equal(t, "Алматы", found.Text)

	assert.Nil(t, question.AnswerByID(99), "неизвестный ID должен вернуть nil")
}

func TestQuestion_Clone(t *testing.T) {
	// Arrange
	gameID := uint(3)
	contentURL := "https://example.com/image.png"
	timeSec := 30
	original := &Question{
		ID:         7,
		GameID:     &gameID,
		Position:   2,
		Text:       "Вопрос с ответами",
		ContentURL: &contentURL,
		TimeSec:    &timeSec,
		Boolean:    true,
		Answers: []Answer{
			{ID: 70, QuestionID: 7, Position: 0, Text: "Да", IsCorrect: true, Level: 2},
			{ID: 71, QuestionID: 7, Position: 1, Text: "Нет"},
		},
	}

	// Act
	clone := original.Clone()

	// Assert: копия без ID и привязки, содержимое сохранено
	assert.Zero(t, clone.ID)
	assert.Nil(t, clone.GameID)
	assert.Equal(t, original.Text, clone.Text)
	assert.Equal(t, original.Position, clone.Position)
	assert.Equal(t, original.ContentURL, clone.ContentURL)
	assert.Equal(t, original.TimeSec, clone.TimeSec)
	assert.True(t, clone.Boolean)

	require.Len(t, clone.Answers, 2)
	assert.Zero(t, clone.Answers[0].ID)
	assert.Zero(t, clone.Answers[0].QuestionID)
	assert.Equal(t, "Да", clone.Answers[0].Text)
	assert.True(t, clone.Answers[0].IsCorrect)
	assert.Equal(t, 2, clone.Answers[0].Level)

	// Изменение клона не трогает оригинал
	clone.Answers[0].Text = "Изменено"
	assert.Equal(t, "Да", original.Answers[0].Text)
}
