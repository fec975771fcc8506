package dto

import (
	"time"

	"github.com/google/uuid"
)

// DraftDocumentView: ringkasan satu dokumen yang sudah di-staging.
// Isi file tidak pernah ikut keluar, hanya metadata.
type DraftDocumentView struct {
	Category   string `json:"category"`
	Label      string `json:"label"`
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	HasPreview bool   `json:"has_preview"`
}

type DraftResponse struct {
	ID        uuid.UUID           `json:"id"`
	Step      int                 `json:"step"`
	Form      RegistrationForm    `json:"form"`
	Documents []DraftDocumentView `json:"documents"`
	Missing   []string            `json:"missing_documents"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
