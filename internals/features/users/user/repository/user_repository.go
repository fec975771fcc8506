package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	userModel "baetelanshar_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

// FindUserByEmail: lookup langsung ke unique index, bukan list-then-find.
func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newPassword string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newPassword).Error
}

// IsUniqueViolation: 23505 dari Postgres (email sudah dipakai).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

/* ====================== PROFILE ====================== */

func FindProfileByID(db *gorm.DB, userID uuid.UUID) (*userModel.ProfileModel, error) {
	var p userModel.ProfileModel
	if err := db.First(&p, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile menulis nama/telepon/alamat wali. Dipanggil best-effort
// dari provisioning: gagal di sini tidak menggagalkan pendaftaran.
func UpsertProfile(db *gorm.DB, p *userModel.ProfileModel) error {
	return db.Exec(`
		INSERT INTO profiles (id, full_name, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
		    phone     = EXCLUDED.phone,
		    address   = EXCLUDED.address,
		    updated_at = NOW()
	`, p.ID, p.FullName, p.Phone, p.Address).Error
}
