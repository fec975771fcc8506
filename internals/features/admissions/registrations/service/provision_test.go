package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"baetelanshar_backend/internals/constants"
	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
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

// provisionRequest: wali Budi mendaftarkan santri Aisyah ke SMP,
// dokumen berbentuk peta path lama.
func provisionRequest() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		Parent: dto.RegisterParent{
			Name:    "Budi Santoso",
			Email:   "budi@mail.com",
			Phone:   "081234567890",
			Address: "Jl. Merdeka No. 1, Bandung",
		},
		Student: dto.RegisterStudent{
			Name:       "Aisyah Putri",
			BirthPlace: "Bandung",
			BirthDate:  "2012-04-15",
			Gender:     "perempuan",
		},
		InstitutionID: "smp",
		Documents: json.RawMessage(`{
			"kk": "budi_mail_com/kk.pdf",
			"ktp": "budi_mail_com/ktp.jpg",
			"ijazah": "budi_mail_com/ijazah.pdf",
			"photo": "budi_mail_com/photo.jpg",
			"bukti_transfer": "budi_mail_com/bukti_transfer.jpg"
		}`),
	}
}

func idRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"}).AddRow(id.String())
}

func emptyUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password", "role", "is_active", "created_at", "updated_at"})
}

func guardianRows(id uuid.UUID, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "email", "password", "role", "is_active", "created_at", "updated_at"}).
		AddRow(id.String(), email, "$2a$10$bukanhashsungguhan", constants.RoleUser, true, now, now)
}

func institutionRows(id uuid.UUID, code string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "type", "name", "created_at", "updated_at"}).
		AddRow(id.String(), code, "SMP Baet El Anshar", now, now)
}

func TestProvision_NewGuardianReceivesCredentials(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvisioner(db, nil)
	req := provisionRequest()
	docs, birthDate, err := p.prepare(req)
	require.NoError(t, err)

	userID, instID := uuid.New(), uuid.New()
	studentID, regID := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).WillReturnRows(emptyUserRows())
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(idRows(userID))
	mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM "institutions"`).WillReturnRows(institutionRows(instID, "smp"))
	mock.ExpectQuery(`INSERT INTO "students"`).WillReturnRows(idRows(studentID))
	mock.ExpectQuery(`INSERT INTO "registrations"`).WillReturnRows(idRows(regID))

	resp, err := p.provision(req, docs, birthDate)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.IsNewUser)
	require.Equal(t, "Pendaftaran berhasil! Akun baru telah dibuat.", resp.Message)
	require.Equal(t, regID, resp.RegistrationID)
	require.Equal(t, studentID, resp.StudentID)

	require.NotNil(t, resp.Credentials)
	require.Equal(t, "budi@mail.com", resp.Credentials.Email)
	require.Len(t, resp.Credentials.Password, 8)
	// alfabet password tidak memuat karakter ambigu
	require.False(t, strings.ContainsAny(resp.Credentials.Password, "0O1lIio"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_ExistingGuardianWithoutCredentials(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvisioner(db, nil)
	req := provisionRequest()
	docs, birthDate, err := p.prepare(req)
	require.NoError(t, err)

	userID, instID := uuid.New(), uuid.New()
	studentID, regID := uuid.New(), uuid.New()

	// akun sudah ada: tidak ada insert users, santri kedua menempel
	// ke akun yang sama
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(guardianRows(userID, "budi@mail.com"))
	mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM "institutions"`).WillReturnRows(institutionRows(instID, "smp"))
	mock.ExpectQuery(`INSERT INTO "students"`).WillReturnRows(idRows(studentID))
	mock.ExpectQuery(`INSERT INTO "registrations"`).WillReturnRows(idRows(regID))

	resp, err := p.provision(req, docs, birthDate)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.False(t, resp.IsNewUser)
	require.Equal(t, "Pendaftaran berhasil! Santri ditambahkan ke akun yang sudah ada.", resp.Message)
	require.Nil(t, resp.Credentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProvision_UnknownInstitutionAborts(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvisioner(db, nil)
	req := provisionRequest()
	req.InstitutionID = "universitas"
	docs, birthDate, err := p.prepare(req)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(guardianRows(uuid.New(), "budi@mail.com"))
	mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	// berhenti di sini: tidak ada insert santri maupun registrasi

	resp, err := p.provision(req, docs, birthDate)
	require.Nil(t, resp)
	require.ErrorContains(t, err, "lembaga tidak dikenal: universitas")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStaged_RegistrationInsertFailureMarksAttemptFailed(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvisioner(db, nil)
	req := provisionRequest()
	attempt := &regModel.RegistrationAttemptModel{ID: uuid.New(), Status: constants.AttemptProcessing}

	userID, instID, studentID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).
		WillReturnRows(guardianRows(userID, "budi@mail.com"))
	mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM "institutions"`).WillReturnRows(institutionRows(instID, "smp"))
	mock.ExpectQuery(`INSERT INTO "students"`).WillReturnRows(idRows(studentID))
	mock.ExpectQuery(`INSERT INTO "registrations"`).
		WillReturnError(errors.New("simpan registrasi kandas"))
	// attempt ditandai failed beserta alasannya
	mock.ExpectExec(`UPDATE "registration_attempts" SET`).
		WithArgs("gagal menyimpan pendaftaran: simpan registrasi kandas",
			constants.AttemptFailed, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := p.RegisterStaged(context.Background(), attempt, req)
	require.Nil(t, resp)
	require.ErrorContains(t, err, "gagal menyimpan pendaftaran")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterStudent_FullFlowForNewGuardian(t *testing.T) {
	db, mock := newMockDB(t)
	p := NewProvisioner(db, nil)
	req := provisionRequest()

	attemptID, userID, instID := uuid.New(), uuid.New(), uuid.New()
	studentID, regID := uuid.New(), uuid.New()

	mock.ExpectQuery(`INSERT INTO "registration_attempts"`).WillReturnRows(idRows(attemptID))
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE email =`).WillReturnRows(emptyUserRows())
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnRows(idRows(userID))
	mock.ExpectExec(`INSERT INTO profiles`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM "institutions"`).WillReturnRows(institutionRows(instID, "smp"))
	mock.ExpectQuery(`INSERT INTO "students"`).WillReturnRows(idRows(studentID))
	mock.ExpectQuery(`INSERT INTO "registrations"`).WillReturnRows(idRows(regID))
	mock.ExpectExec(`UPDATE "registration_attempts" SET`).
		WithArgs(constants.AttemptCompleted, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := p.RegisterStudent(context.Background(), req)
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.True(t, resp.IsNewUser)
	require.Equal(t, regID, resp.RegistrationID)
	require.NotNil(t, resp.Credentials)
	require.Len(t, resp.Credentials.Password, 8)
	require.NoError(t, mock.ExpectationsWereMet())
}
