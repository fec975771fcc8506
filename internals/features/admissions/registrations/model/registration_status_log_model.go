package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatusLogModel: jejak audit tiap transisi status
// (siapa, kapan, dari, ke). Ditulis juga oleh aksi revisi/wawancara.
type RegistrationStatusLogModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RegistrationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"registration_id"`
	AdminID        *uuid.UUID `gorm:"type:uuid" json:"admin_id"`
	FromStatus     string     `gorm:"type:varchar(30);not null" json:"from_status"`
	ToStatus       string     `gorm:"type:varchar(30);not null" json:"to_status"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (RegistrationStatusLogModel) TableName() string {
	return "registration_status_logs"
}
