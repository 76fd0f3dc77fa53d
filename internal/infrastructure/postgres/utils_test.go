package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger/internal/domain"
)

func TestWrapLock(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, true},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"contexto vencido", context.DeadlineExceeded, true},
		{"unique violation no es transitorio", &pgconn.PgError{Code: "23505"}, false},
		{"error genérico", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLock("record x", tt.err)
			assert.Equal(t, tt.transient, domain.IsTransient(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
	assert.NoError(t, wrapLock("x", nil))
}

func TestPgErrorHelpers(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isFKViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isFKViolation(errors.New("23503")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	v := nullable("lot-1")
	if assert.NotNil(t, v) {
		assert.Equal(t, "lot-1", *v)
	}
	assert.Equal(t, "", deref(nil))
}
