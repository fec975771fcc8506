package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RegistrationAttemptModel: bracket saga provisioning. Ditulis sebelum
// efek samping pertama dan ditandai completed setelah insert registrasi.
// Attempt yang tertinggal di processing/failed dibersihkan reaper
// beserta objek upload yatimnya.
type RegistrationAttemptModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentEmail   string         `gorm:"size:255;not null;index" json:"parent_email"`
	StudentName   string         `gorm:"size:255;not null" json:"student_name"`
	Status        string         `gorm:"type:varchar(20);not null;default:'processing'" json:"status"`
	DocumentPaths datatypes.JSON `gorm:"type:jsonb" json:"document_paths"`
	LastError     *string        `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RegistrationAttemptModel) TableName() string {
	return "registration_attempts"
}
