package dto

import (
	"time"

	"github.com/google/uuid"

	recordModel "baetelanshar_backend/internals/features/academics/records/model"
)

type CreateAcademicRecordRequest struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required"`
	Subject      string    `json:"subject" validate:"required,min=2"`
	Semester     string    `json:"semester" validate:"required"`
	AcademicYear string    `json:"academic_year" validate:"required"`
	Score        float64   `json:"score" validate:"gte=0,lte=100"`
	Grade        *string   `json:"grade" validate:"omitempty,max=5"`
}

type AcademicRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	StudentID    uuid.UUID `json:"student_id"`
	Subject      string    `json:"subject"`
	Semester     string    `json:"semester"`
	AcademicYear string    `json:"academic_year"`
	Score        float64   `json:"score"`
	Grade        *string   `json:"grade,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToAcademicRecordResponse(m *recordModel.AcademicRecordModel) AcademicRecordResponse {
	return AcademicRecordResponse{
		ID:           m.ID,
		StudentID:    m.StudentID,
		Subject:      m.Subject,
		Semester:     m.Semester,
		AcademicYear: m.AcademicYear,
		Score:        m.Score,
		Grade:        m.Grade,
		CreatedAt:    m.CreatedAt,
	}
}

func ToAcademicRecordResponses(rows []recordModel.AcademicRecordModel) []AcademicRecordResponse {
	out := make([]AcademicRecordResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToAcademicRecordResponse(&rows[i]))
	}
	return out
}
