package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	require.True(t, IsUniqueViolation(dup))

	// gorm membungkus error driver; errors.As harus tetap menemukannya
	require.True(t, IsUniqueViolation(fmt.Errorf("insert users: %w", dup)))

	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsUniqueViolation(errors.New("duplicate key value violates unique constraint")))
	require.False(t, IsUniqueViolation(nil))
}
