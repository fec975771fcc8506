package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	studentModel "baetelanshar_backend/internals/features/admissions/students/model"
)

// RegistrationModel: entitas pusat alur penerimaan. Status digerakkan
// admin; revision_notes dan interview_* adalah kanal samping yang hanya
// memaksa status lewat dua aksi workflow (revisi → document_review,
// undangan → interview). Update single-row, last-write-wins.
type RegistrationModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	InstitutionID  *uuid.UUID     `gorm:"type:uuid" json:"institution_id"`
	Status         string         `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	Documents      datatypes.JSON `gorm:"type:jsonb" json:"documents"`
	Notes          *string        `gorm:"type:text" json:"notes"`
	RevisionNotes  *string        `gorm:"type:text" json:"revision_notes"`
	InterviewDate  *time.Time     `json:"interview_date"`
	InterviewLink  *string        `gorm:"size:500" json:"interview_link"`
	InterviewNotes *string        `gorm:"type:text" json:"interview_notes"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (RegistrationModel) TableName() string {
	return "registrations"
}
