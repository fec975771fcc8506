package dto

import (
	"time"

	"github.com/google/uuid"

	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
	studentDto "baetelanshar_backend/internals/features/admissions/students/dto"
)

type RegistrationResponse struct {
	ID             uuid.UUID  `json:"id"`
	StudentID      uuid.UUID  `json:"student_id"`
	InstitutionID  *uuid.UUID `json:"institution_id"`
	Status         string     `json:"status"`
	Notes          *string    `json:"notes,omitempty"`
	RevisionNotes  *string    `json:"revision_notes,omitempty"`
	InterviewDate  *string    `json:"interview_date,omitempty"`
	InterviewLink  *string    `json:"interview_link,omitempty"`
	InterviewNotes *string    `json:"interview_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Student *studentDto.StudentResponse `json:"student,omitempty"`
}

func ToRegistrationResponse(m *regModel.RegistrationModel) RegistrationResponse {
	resp := RegistrationResponse{
		ID:             m.ID,
		StudentID:      m.StudentID,
		InstitutionID:  m.InstitutionID,
		Status:         m.Status,
		Notes:          m.Notes,
		RevisionNotes:  m.RevisionNotes,
		InterviewLink:  m.InterviewLink,
		InterviewNotes: m.InterviewNotes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.InterviewDate != nil {
		s := m.InterviewDate.Format(time.RFC3339)
		resp.InterviewDate = &s
	}
	if m.Student != nil {
		s := studentDto.ToStudentResponse(m.Student)
		resp.Student = &s
	}
	return resp
}

func ToRegistrationResponses(rows []regModel.RegistrationModel) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToRegistrationResponse(&rows[i]))
	}
	return out
}

type StatusLogResponse struct {
	ID         uuid.UUID  `json:"id"`
	AdminID    *uuid.UUID `json:"admin_id"`
	FromStatus string     `json:"from_status"`
	ToStatus   string     `json:"to_status"`
	CreatedAt  time.Time  `json:"created_at"`
}

func ToStatusLogResponses(rows []regModel.RegistrationStatusLogModel) []StatusLogResponse {
	out := make([]StatusLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatusLogResponse{
			ID:         r.ID,
			AdminID:    r.AdminID,
			FromStatus: r.FromStatus,
			ToStatus:   r.ToStatus,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out
}

// SignedDocument: item dokumen dengan URL bertanda tangan sementara.
type SignedDocument struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}
