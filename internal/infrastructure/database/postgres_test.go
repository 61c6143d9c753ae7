package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	for _, code := range []string{CodeSerializationFailure, CodeDeadlockDetected, CodeLockNotAvailable} {
		err := MapError(fmt.Errorf("update: %w", &pgconn.PgError{Code: code, Message: "boom"}))
		assert.ErrorIs(t, err, apperror.ErrTxConflict, code)
	}

	other := errors.New("x")
	assert.Same(t, other, MapError(other))
	assert.NoError(t, MapError(nil))
	assert.NotErrorIs(t, MapError(&pgconn.PgError{Code: CodeUniqueViolation}), apperror.ErrTxConflict)
}

func TestIsUniqueViolation(t *testing.T) {
	name, ok := IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "products_normalized_name_key"}))
	assert.True(t, ok)
	assert.Equal(t, "products_normalized_name_key", name)

	_, ok = IsUniqueViolation(errors.New("x"))
	assert.False(t, ok)
}
