package service

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"baetelanshar_backend/internals/constants"
)

// newMockDB membuka gorm di atas koneksi sqlmock, tanpa transaksi
// default supaya ekspektasi cukup satu statement per operasi.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func userColumns() []string {
	return []string{"id", "email", "password", "role", "is_active", "created_at", "updated_at"}
}

func guardianRow(id uuid.UUID, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumns()).
		AddRow(id.String(), email, "$2a$10$bukanhashsungguhan", constants.RoleUser, true, now, now)
}

func TestEnsureGuardianAccount_ExistingEmail(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(guardianRow(userID, "budi@mail.com"))

	account, err := EnsureGuardianAccount(db, "budi@mail.com")
	require.NoError(t, err)
	require.Equal(t, userID, account.UserID)
	require.False(t, account.IsNewUser)
	require.Empty(t, account.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureGuardianAccount_CreatesNewAccount(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))
	// email tersimpan ternormalisasi; password sudah berupa hash
	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs("budi@mail.com", sqlmock.AnyArg(), constants.RoleUser, true,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))

	account, err := EnsureGuardianAccount(db, "  Budi@Mail.com ")
	require.NoError(t, err)
	require.Equal(t, userID, account.UserID)
	require.True(t, account.IsNewUser)

	require.Len(t, account.Password, GeneratedPasswordLength)
	for _, r := range account.Password {
		require.True(t, strings.ContainsRune(passwordChars, r),
			"karakter %q di luar alfabet password", r)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureGuardianAccount_LosesCreateRace(t *testing.T) {
	db, mock := newMockDB(t)
	winnerID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	// kalah balapan insert: baca ulang dan pakai akun pemenang
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(guardianRow(winnerID, "budi@mail.com"))

	account, err := EnsureGuardianAccount(db, "budi@mail.com")
	require.NoError(t, err)
	require.Equal(t, winnerID, account.UserID)
	require.False(t, account.IsNewUser)
	require.Empty(t, account.Password)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureGuardianAccount_RejectsBlankEmail(t *testing.T) {
	_, err := EnsureGuardianAccount(nil, "   ")
	require.Error(t, err)
}
