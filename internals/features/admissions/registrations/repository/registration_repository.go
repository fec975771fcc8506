package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
)

/* ====================== REGISTRATION ====================== */

func CreateRegistration(db *gorm.DB, r *regModel.RegistrationModel) error {
	return db.Create(r).Error
}

func FindRegistrationByID(db *gorm.DB, id uuid.UUID) (*regModel.RegistrationModel, error) {
	var r regModel.RegistrationModel
	if err := db.Preload("Student").First(&r, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRegistrations: daftar admin, join santri untuk pencarian nama.
// status kosong = semua status.
func ListRegistrations(db *gorm.DB, status, search string, limit, offset int) ([]regModel.RegistrationModel, int64, error) {
	query := db.Model(&regModel.RegistrationModel{}).
		Joins("JOIN students ON students.id = registrations.student_id")

	if status != "" {
		query = query.Where("registrations.status = ?", status)
	}
	if s := strings.TrimSpace(search); s != "" {
		query = query.Where("students.full_name ILIKE ?", "%"+s+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []regModel.RegistrationModel
	err := query.Preload("Student").
		Order("registrations.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func FindRegistrationsByStudentIDs(db *gorm.DB, studentIDs []uuid.UUID) ([]regModel.RegistrationModel, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []regModel.RegistrationModel
	err := db.Where("student_id IN ?", studentIDs).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateRegistrationFields: patch kolom tertentu, last-write-wins.
func UpdateRegistrationFields(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return db.Model(&regModel.RegistrationModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

/* ====================== STATUS LOG ====================== */

func CreateStatusLog(db *gorm.DB, logRow *regModel.RegistrationStatusLogModel) error {
	return db.Create(logRow).Error
}

func ListStatusLogs(db *gorm.DB, registrationID uuid.UUID) ([]regModel.RegistrationStatusLogModel, error) {
	var rows []regModel.RegistrationStatusLogModel
	err := db.Where("registration_id = ?", registrationID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

/* ====================== ATTEMPT ====================== */

func CreateAttempt(db *gorm.DB, a *regModel.RegistrationAttemptModel) error {
	return db.Create(a).Error
}

func UpdateAttempt(db *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	return db.Model(&regModel.RegistrationAttemptModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// FindStaleAttempts: attempt yang bukan completed dan sudah melewati
// cutoff. Dipakai reaper untuk bersih-bersih upload yatim.
func FindStaleAttempts(db *gorm.DB, olderThanMinutes int, limit int) ([]regModel.RegistrationAttemptModel, error) {
	var rows []regModel.RegistrationAttemptModel
	err := db.Where("status <> ?", "completed").
		Where("updated_at < NOW() - (? * INTERVAL '1 minute')", olderThanMinutes).
		Order("updated_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func DeleteAttempt(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&regModel.RegistrationAttemptModel{}, "id = ?", id).Error
}
