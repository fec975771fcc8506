package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	userModel "baetelanshar_backend/internals/features/users/user/model"
	userRepo "baetelanshar_backend/internals/features/users/user/repository"
)

// GuardianAccount hasil lookup-or-create saat provisioning pendaftaran.
// Password hanya terisi untuk akun baru dan hanya dikembalikan sekali.
type GuardianAccount struct {
	UserID    uuid.UUID
	IsNewUser bool
	Password  string
}

// EnsureGuardianAccount mencari akun wali lewat unique index email,
// atau membuatkannya dengan password acak. Dua submit yang balapan untuk
// email baru diselesaikan oleh constraint: yang kalah insert membaca ulang
// dan lanjut sebagai "akun sudah ada".
func EnsureGuardianAccount(db *gorm.DB, email string) (*GuardianAccount, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("email wali kosong")
	}

	if existing, err := userRepo.FindUserByEmail(db, email); err == nil {
		log.Printf("[PROVISION] pakai akun lama: %s", existing.ID)
		return &GuardianAccount{UserID: existing.ID, IsNewUser: false}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	plain, err := GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("gagal generate password: %w", err)
	}
	hashed, err := HashPassword(plain)
	if err != nil {
		return nil, fmt.Errorf("gagal hash password: %w", err)
	}

	user := &userModel.UserModel{
		Email:    email,
		Password: hashed,
		Role:     constants.RoleUser,
		IsActive: true, // pre-confirmed, tanpa verifikasi email
	}
	if err := userRepo.CreateUser(db, user); err != nil {
		if userRepo.IsUniqueViolation(err) {
			winner, ferr := userRepo.FindUserByEmail(db, email)
			if ferr != nil {
				return nil, ferr
			}
			log.Printf("[PROVISION] kalah balapan create, pakai akun: %s", winner.ID)
			return &GuardianAccount{UserID: winner.ID, IsNewUser: false}, nil
		}
		return nil, err
	}

	log.Printf("[PROVISION] akun wali baru: %s", user.ID)
	return &GuardianAccount{UserID: user.ID, IsNewUser: true, Password: plain}, nil
}
