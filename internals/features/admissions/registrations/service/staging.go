package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"baetelanshar_backend/internals/configs"
	"baetelanshar_backend/internals/constants"
	helperOSS "baetelanshar_backend/internals/helpers/oss"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
)

const MaxDocumentSize = 5 * 1024 * 1024 // 5MB per dokumen

var (
	ErrDraftNotFound   = errors.New("draft pendaftaran tidak ditemukan atau sudah kadaluarsa")
	ErrInvalidCategory = errors.New("kategori dokumen tidak dikenal")
	ErrInvalidFileType = errors.New("file harus berupa gambar atau PDF")
	ErrFileTooLarge    = errors.New("ukuran file maksimal 5MB")
)

// StagedDocument: satu file yang ditahan di memori sampai submit.
// Preview hanya terisi untuk gambar (thumbnail WebP), nil untuk PDF.
type StagedDocument struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
	Preview     []byte
	StagedAt    time.Time
}

// Draft: state form multi-step milik satu calon pendaftar.
type Draft struct {
	ID        uuid.UUID
	Form      dto.RegistrationForm
	Step      int
	Documents map[string]*StagedDocument
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StagingStore menahan draft pendaftaran di memori proses. Tidak ada
// efek samping eksternal sebelum submit; draft yang tidak disentuh
// selama TTL dibuang oleh evictor.
type StagingStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*Draft
	ttl    time.Duration
}

func NewStagingStore(ttl time.Duration) *StagingStore {
	return &StagingStore{
		drafts: make(map[uuid.UUID]*Draft),
		ttl:    ttl,
	}
}

// DraftTTLFromEnv membaca DRAFT_TTL_MINUTES, default 60 menit.
func DraftTTLFromEnv() time.Duration {
	raw := configs.GetEnv("DRAFT_TTL_MINUTES", "60")
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// StartEviction menjalankan pembersih draft kadaluarsa di background.
func (s *StagingStore) StartEviction() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := s.evictExpired(); n > 0 {
				log.Printf("[STAGING] %d draft kadaluarsa dibuang", n)
			}
		}
	}()
}

func (s *StagingStore) evictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for id, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}

// CreateDraft membuat draft kosong baru dan mengembalikan salinannya.
func (s *StagingStore) CreateDraft() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	d := &Draft{
		ID:        uuid.New(),
		Step:      1,
		Documents: make(map[string]*StagedDocument),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.drafts[d.ID] = d
	return snapshotDraft(d)
}

// Get mengembalikan salinan draft, atau ErrDraftNotFound.
func (s *StagingStore) Get(id uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return snapshotDraft(d), nil
}

// SaveForm menimpa isi form draft dan, bila maju, posisi langkahnya.
func (s *StagingStore) SaveForm(id uuid.UUID, form dto.RegistrationForm, step int) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	d.Form = form
	if step > d.Step {
		d.Step = step
	}
	d.UpdatedAt = time.Now()
	return snapshotDraft(d), nil
}

// SaveStep menyalin hanya field langkah tsb ke form draft.
func (s *StagingStore) SaveStep(id uuid.UUID, form dto.RegistrationForm, step int) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	d.Form.ApplyStep(form, step)
	if step > d.Step {
		d.Step = step
	}
	d.UpdatedAt = time.Now()
	return snapshotDraft(d), nil
}

// Stage menaruh satu dokumen pada kategorinya. Unggahan ulang kategori
// yang sama menggantikan file lama. File yang melanggar aturan ditolak
// tanpa menyentuh state sebelumnya.
func (s *StagingStore) Stage(id uuid.UUID, category, filename, contentType string, data []byte) (*Draft, error) {
	if !constants.IsDocumentCategory(category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}
	if !isAllowedDocumentType(contentType) {
		return nil, ErrInvalidFileType
	}
	if int64(len(data)) > MaxDocumentSize {
		return nil, ErrFileTooLarge
	}

	doc := &StagedDocument{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
		StagedAt:    time.Now(),
	}
	if strings.HasPrefix(contentType, "image/") {
		// preview gagal bukan alasan menolak dokumen
		if preview, err := helperOSS.MakeImagePreview(data, filename); err == nil {
			doc.Preview = preview
		} else {
			log.Printf("[STAGING] preview %s gagal: %v", category, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	d.Documents[category] = doc
	d.UpdatedAt = time.Now()
	return snapshotDraft(d), nil
}

// Remove melepas dokumen satu kategori dari draft.
func (s *StagingStore) Remove(id uuid.UUID, category string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	delete(d.Documents, category)
	d.UpdatedAt = time.Now()
	return snapshotDraft(d), nil
}

// Drop membuang draft (dipanggil setelah submit sukses).
func (s *StagingStore) Drop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}

// MissingCategories: kategori wajib yang belum punya dokumen.
func (d *Draft) MissingCategories() []string {
	var missing []string
	for _, cat := range constants.DocumentCategories {
		if _, ok := d.Documents[cat]; !ok {
			missing = append(missing, cat)
		}
	}
	return missing
}

func isAllowedDocumentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

// snapshotDraft menyalin draft supaya pemanggil tidak memegang
// referensi map yang masih dimutasi di balik lock.
func snapshotDraft(d *Draft) *Draft {
	docs := make(map[string]*StagedDocument, len(d.Documents))
	for k, v := range d.Documents {
		docs[k] = v
	}
	return &Draft{
		ID:        d.ID,
		Form:      d.Form,
		Step:      d.Step,
		Documents: docs,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
