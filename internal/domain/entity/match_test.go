package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatch_IsActiveAt(t *testing.T) {
	now := time.Now()
	toTime := now.Add(time.Hour)

	open := &Match{FromTime: now.Add(-time.Hour)}
	windowed := &Match{FromTime: now.Add(-time.Hour), ToTime: &toTime}

	assert.True(t, open.IsActiveAt(now), "матч без to_time активен после from_time")
	assert.False(t, open.IsActiveAt(now.Add(-2*time.Hour)), "матч не активен до from_time")

	assert.True(t, windowed.IsActiveAt(now))
	assert.False(t, windowed.IsActiveAt(now.Add(2*time.Hour)), "матч не активен после to_time")
}

func TestMatch_IsOpen(t *testing.T) {
	toTime := time.Now().Add(time.Hour)

	assert.True(t, (&Match{}).IsOpen())
	assert.False(t, (&Match{ToTime: &toTime}).IsOpen())
}

func TestMatch_UnlimitedTries(t *testing.T) {
	assert.True(t, (&Match{Times: 0}).UnlimitedTries(), "times=0 — без ограничения попыток")
	assert.False(t, (&Match{Times: 1}).UnlimitedTries())
}

func TestReaction_Answered(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Reaction{}).Answered(), "реакция без answered_at — только показ")
	assert.True(t, (&Reaction{AnsweredAt: &now}).Answered())

	// Пропуск вопроса (answer_id == nil) — тоже ответ
	assert.True(t, (&Reaction{AnsweredAt: &now, AnswerID: nil}).Answered())
}
