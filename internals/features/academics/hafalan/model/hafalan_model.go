package model

import (
	"time"

	"github.com/google/uuid"
)

// HafalanProgressModel: catatan hafalan per santri per surah.
// memorized_date terisi saat status jadi completed.
type HafalanProgressModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	SurahName     string     `gorm:"size:100;not null" json:"surah_name"`
	Juz           *int       `json:"juz"`
	Status        string     `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	TeacherNotes  *string    `gorm:"type:text" json:"teacher_notes"`
	MemorizedDate *time.Time `gorm:"type:date" json:"memorized_date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HafalanProgressModel) TableName() string {
	return "hafalan_progress"
}
