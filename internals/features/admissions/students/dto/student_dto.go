package dto

import (
	"time"

	"github.com/google/uuid"

	studentModel "baetelanshar_backend/internals/features/admissions/students/model"
)

type StudentResponse struct {
	ID             uuid.UUID  `json:"id"`
	ParentID       uuid.UUID  `json:"parent_id"`
	InstitutionID  *uuid.UUID `json:"institution_id"`
	FullName       string     `json:"full_name"`
	BirthPlace     string     `json:"birth_place"`
	BirthDate      string     `json:"birth_date"`
	Gender         string     `json:"gender"`
	PreviousSchool *string    `json:"previous_school,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToStudentResponse(m *studentModel.StudentModel) StudentResponse {
	return StudentResponse{
		ID:             m.ID,
		ParentID:       m.ParentID,
		InstitutionID:  m.InstitutionID,
		FullName:       m.FullName,
		BirthPlace:     m.BirthPlace,
		BirthDate:      m.BirthDate.Format("2006-01-02"),
		Gender:         m.Gender,
		PreviousSchool: m.PreviousSchool,
		CreatedAt:      m.CreatedAt,
	}
}

func ToStudentResponses(list []studentModel.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToStudentResponse(&list[i]))
	}
	return out
}
