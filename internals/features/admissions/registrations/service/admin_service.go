package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	userRepo "baetelanshar_backend/internals/features/users/user/repository"

	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
	regRepo "baetelanshar_backend/internals/features/admissions/registrations/repository"
)

var (
	ErrRegistrationNotFound = errors.New("pendaftaran tidak ditemukan")
	ErrUnknownStatus        = errors.New("status tidak dikenal")
	ErrEmptyRevisionNotes   = errors.New("catatan revisi wajib diisi")
	ErrIncompleteInterview  = errors.New("jadwal dan link wawancara wajib diisi")
)

// AdminService: aksi workflow penerimaan yang hanya boleh dijalankan
// admin. Setiap perubahan status meninggalkan baris audit dan event
// notifikasi wali (best-effort).
type AdminService struct {
	DB       *gorm.DB
	Notifier *Notifier
}

func NewAdminService(db *gorm.DB, notifier *Notifier) *AdminService {
	return &AdminService{DB: db, Notifier: notifier}
}

// UpdateStatus memindahkan status ke nilai mana pun yang dikenal.
// Transisi bebas: admin boleh mundur, lompat, atau mengoreksi salah klik.
func (s *AdminService) UpdateStatus(ctx context.Context, adminID *uuid.UUID, registrationID uuid.UUID, toStatus string, notes *string) (*regModel.RegistrationModel, error) {
	if !constants.IsRegistrationStatus(toStatus) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, toStatus)
	}

	fields := map[string]interface{}{"status": toStatus}
	if notes != nil {
		fields["notes"] = strings.TrimSpace(*notes)
	}
	return s.applyTransition(ctx, adminID, registrationID, toStatus, fields, EventStatusChanged, "")
}

// SendRevision mengirim catatan revisi dokumen dan memaksa status
// kembali ke document_review.
func (s *AdminService) SendRevision(ctx context.Context, adminID *uuid.UUID, registrationID uuid.UUID, notes string) (*regModel.RegistrationModel, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, ErrEmptyRevisionNotes
	}

	fields := map[string]interface{}{
		"status":         constants.StatusDocumentReview,
		"revision_notes": notes,
	}
	return s.applyTransition(ctx, adminID, registrationID, constants.StatusDocumentReview,
		fields, EventRevisionRequested, notes)
}

// SendInterview menjadwalkan wawancara dan memaksa status ke interview.
func (s *AdminService) SendInterview(ctx context.Context, adminID *uuid.UUID, registrationID uuid.UUID, date time.Time, link string, notes *string) (*regModel.RegistrationModel, error) {
	link = strings.TrimSpace(link)
	if date.IsZero() || link == "" {
		return nil, ErrIncompleteInterview
	}

	fields := map[string]interface{}{
		"status":         constants.StatusInterview,
		"interview_date": date,
		"interview_link": link,
	}
	if notes != nil {
		fields["interview_notes"] = strings.TrimSpace(*notes)
	}
	msg := fmt.Sprintf("Wawancara dijadwalkan %s", date.Format("02-01-2006 15:04"))
	return s.applyTransition(ctx, adminID, registrationID, constants.StatusInterview,
		fields, EventInterviewScheduled, msg)
}

func (s *AdminService) applyTransition(ctx context.Context, adminID *uuid.UUID, registrationID uuid.UUID, toStatus string, fields map[string]interface{}, eventType, eventMessage string) (*regModel.RegistrationModel, error) {
	reg, err := regRepo.FindRegistrationByID(s.DB, registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	fromStatus := reg.Status

	if err := regRepo.UpdateRegistrationFields(s.DB, registrationID, fields); err != nil {
		return nil, fmt.Errorf("gagal memperbarui pendaftaran: %w", err)
	}

	// audit dulu, baru notifikasi
	logRow := &regModel.RegistrationStatusLogModel{
		RegistrationID: registrationID,
		AdminID:        adminID,
		FromStatus:     fromStatus,
		ToStatus:       toStatus,
	}
	if err := regRepo.CreateStatusLog(s.DB, logRow); err != nil {
		log.Printf("[ADMISSION] log status %s gagal: %v", registrationID, err)
	}

	updated, err := regRepo.FindRegistrationByID(s.DB, registrationID)
	if err != nil {
		return nil, err
	}

	event := GuardianEvent{
		Type:           eventType,
		RegistrationID: registrationID.String(),
		Status:         toStatus,
		Message:        eventMessage,
	}
	if updated.Student != nil {
		event.StudentName = updated.Student.FullName
		if email, gerr := s.guardianEmail(updated.Student.ParentID); gerr == nil {
			event.ParentEmail = email
		}
	}
	s.Notifier.Publish(ctx, event)

	log.Printf("[ADMISSION] registrasi %s: %s -> %s", registrationID, fromStatus, toStatus)
	return updated, nil
}

func (s *AdminService) guardianEmail(parentID uuid.UUID) (string, error) {
	user, err := userRepo.FindUserByID(s.DB, parentID)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}
