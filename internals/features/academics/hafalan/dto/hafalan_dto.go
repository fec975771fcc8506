package dto

import (
	"time"

	"github.com/google/uuid"

	hafalanModel "baetelanshar_backend/internals/features/academics/hafalan/model"
)

type CreateHafalanRequest struct {
	StudentID    uuid.UUID `json:"student_id" validate:"required"`
	SurahName    string    `json:"surah_name" validate:"required,min=2"`
	Juz          *int      `json:"juz" validate:"omitempty,min=1,max=30"`
	Status       string    `json:"status" validate:"omitempty,oneof=in_progress completed review"`
	TeacherNotes *string   `json:"teacher_notes"`
}

type UpdateHafalanStatusRequest struct {
	Status       string  `json:"status" validate:"required,oneof=in_progress completed review"`
	TeacherNotes *string `json:"teacher_notes"`
}

type HafalanResponse struct {
	ID            uuid.UUID `json:"id"`
	StudentID     uuid.UUID `json:"student_id"`
	SurahName     string    `json:"surah_name"`
	Juz           *int      `json:"juz,omitempty"`
	Status        string    `json:"status"`
	TeacherNotes  *string   `json:"teacher_notes,omitempty"`
	MemorizedDate *string   `json:"memorized_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToHafalanResponse(m *hafalanModel.HafalanProgressModel) HafalanResponse {
	resp := HafalanResponse{
		ID:           m.ID,
		StudentID:    m.StudentID,
		SurahName:    m.SurahName,
		Juz:          m.Juz,
		Status:       m.Status,
		TeacherNotes: m.TeacherNotes,
		CreatedAt:    m.CreatedAt,
	}
	if m.MemorizedDate != nil {
		s := m.MemorizedDate.Format("2006-01-02")
		resp.MemorizedDate = &s
	}
	return resp
}

func ToHafalanResponses(rows []hafalanModel.HafalanProgressModel) []HafalanResponse {
	out := make([]HafalanResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToHafalanResponse(&rows[i]))
	}
	return out
}
