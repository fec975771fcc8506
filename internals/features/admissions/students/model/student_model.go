package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentModel: santri milik satu wali. Dibuat sekali per submit
// pendaftaran; data hafalan/akademik menempel lewat tabel anak.
type StudentModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"parent_id"`
	InstitutionID  *uuid.UUID `gorm:"type:uuid" json:"institution_id"`
	FullName       string     `gorm:"size:255;not null" json:"full_name"`
	BirthPlace     string     `gorm:"size:100" json:"birth_place"`
	BirthDate      time.Time  `gorm:"type:date" json:"birth_date"`
	Gender         string     `gorm:"size:20" json:"gender"`
	PreviousSchool *string    `gorm:"size:255" json:"previous_school,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}
