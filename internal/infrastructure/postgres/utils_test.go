package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "grn_notes_grn_number_key"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert grn note: %w", dup)))

	fk := &pgconn.PgError{Code: "23503"}
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("conexión rechazada")))
}
