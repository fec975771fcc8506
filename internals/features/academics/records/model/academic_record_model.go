package model

import (
	"time"

	"github.com/google/uuid"
)

// AcademicRecordModel: nilai akademik per santri per mata pelajaran.
type AcademicRecordModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	Subject      string    `gorm:"size:100;not null" json:"subject"`
	Semester     string    `gorm:"size:20;not null" json:"semester"`
	AcademicYear string    `gorm:"size:20;not null" json:"academic_year"`
	Score        float64   `gorm:"not null" json:"score"`
	Grade        *string   `gorm:"size:5" json:"grade"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AcademicRecordModel) TableName() string {
	return "academic_records"
}
