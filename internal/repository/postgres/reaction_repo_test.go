package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert reaction: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(dup), "23505 даже под обёрткой — нарушение уникальности")

	fk := fmt.Errorf("insert reaction: %w", &pgconn.PgError{Code: "23503"})
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(fmt.Errorf("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
