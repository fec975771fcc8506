package model

import (
	"time"

	"github.com/google/uuid"
)

// InstitutionModel: lembaga di bawah yayasan. Read-only bagi alur
// pendaftaran; kolom type adalah kode stabil (dta/smp/sma/pesantren).
type InstitutionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Type        string    `gorm:"type:varchar(20);unique;not null" json:"type"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InstitutionModel) TableName() string {
	return "institutions"
}
