package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	helper "baetelanshar_backend/internals/helpers"
	helperOSS "baetelanshar_backend/internals/helpers/oss"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	regRepo "baetelanshar_backend/internals/features/admissions/registrations/repository"
	"baetelanshar_backend/internals/features/admissions/registrations/service"
)

const signedURLExpirySeconds = 3600

// AdminRegistrationController: panel penerimaan untuk admin yayasan.
type AdminRegistrationController struct {
	DB    *gorm.DB
	Admin *service.AdminService
	OSS   *helperOSS.Service
}

func NewAdminRegistrationController(db *gorm.DB, admin *service.AdminService, oss *helperOSS.Service) *AdminRegistrationController {
	return &AdminRegistrationController{DB: db, Admin: admin, OSS: oss}
}

// List: GET /registrations?status=&q=&page=&per_page=
func (ctrl *AdminRegistrationController) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !constants.IsRegistrationStatus(status) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status tidak dikenal: "+status)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	search := c.Query("q", c.Query("search"))
	rows, total, err := regRepo.ListRegistrations(ctrl.DB, status, search, paging.Limit, paging.Offset)
	if err != nil {
		log.Printf("[ADMISSION] list gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar pendaftaran")
	}

	return helper.JsonList(c, "", dto.ToRegistrationResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// Detail: GET /registrations/:id
func (ctrl *AdminRegistrationController) Detail(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	reg, err := regRepo.FindRegistrationByID(ctrl.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pendaftaran")
	}
	return helper.JsonOK(c, "", dto.ToRegistrationResponse(reg))
}

// StatusLogs: GET /registrations/:id/logs
func (ctrl *AdminRegistrationController) StatusLogs(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	rows, err := regRepo.ListStatusLogs(ctrl.DB, id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat status")
	}
	return helper.JsonOK(c, "", dto.ToStatusLogResponses(rows))
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus: PATCH /registrations/:id/status
func (ctrl *AdminRegistrationController) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	reg, err := ctrl.Admin.UpdateStatus(c.Context(), adminIDFromLocals(c), id, req.Status, req.Notes)
	if err != nil {
		return adminActionError(c, err)
	}
	return helper.JsonUpdated(c, "Status pendaftaran diperbarui", dto.ToRegistrationResponse(reg))
}

type revisionRequest struct {
	Notes string `json:"notes"`
}

// SendRevision: POST /registrations/:id/revision
func (ctrl *AdminRegistrationController) SendRevision(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	var req revisionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	reg, err := ctrl.Admin.SendRevision(c.Context(), adminIDFromLocals(c), id, req.Notes)
	if err != nil {
		return adminActionError(c, err)
	}
	return helper.JsonUpdated(c, "Catatan revisi dikirim", dto.ToRegistrationResponse(reg))
}

type interviewRequest struct {
	Date  string  `json:"date"` // RFC3339 atau datetime-local
	Link  string  `json:"link"`
	Notes *string `json:"notes"`
}

// parseInterviewDate menerima RFC3339 penuh maupun bentuk datetime-local
// ("2006-01-02T15:04") yang dikirim input jadwal di panel admin.
func parseInterviewDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04", raw)
}

// SendInterview: POST /registrations/:id/interview
func (ctrl *AdminRegistrationController) SendInterview(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	var req interviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	date, err := parseInterviewDate(req.Date)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{
			"date": {"Jadwal wawancara harus berformat RFC3339 atau YYYY-MM-DDTHH:MM."},
		})
	}

	reg, err := ctrl.Admin.SendInterview(c.Context(), adminIDFromLocals(c), id, date, req.Link, req.Notes)
	if err != nil {
		return adminActionError(c, err)
	}
	return helper.JsonUpdated(c, "Undangan wawancara dikirim", dto.ToRegistrationResponse(reg))
}

// Documents: GET /registrations/:id/documents
// Menormalkan kolom documents (bentuk lama maupun kanonik) dan
// mengembalikan URL bertanda tangan berumur pendek.
func (ctrl *AdminRegistrationController) Documents(c *fiber.Ctx) error {
	id, err := parseRegistrationID(c)
	if err != nil {
		return err
	}
	reg, err := regRepo.FindRegistrationByID(ctrl.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pendaftaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil pendaftaran")
	}

	items, err := dto.NormalizeDocuments(reg.Documents)
	if err != nil {
		log.Printf("[ADMISSION] documents %s korup: %v", id, err)
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Data dokumen tidak bisa dibaca")
	}

	signed := make([]dto.SignedDocument, 0, len(items))
	for _, item := range items {
		url, serr := ctrl.OSS.SignedURL(item.Path, signedURLExpirySeconds)
		if serr != nil {
			log.Printf("[ADMISSION] sign %s gagal: %v", item.Path, serr)
			continue
		}
		signed = append(signed, dto.SignedDocument{
			Category: item.Category,
			Label:    item.Label,
			Type:     item.Type,
			URL:      url,
		})
	}
	return helper.JsonOK(c, "", signed)
}

/* ====================== helpers ====================== */

func parseRegistrationID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "ID pendaftaran tidak valid")
	}
	return id, nil
}

func adminIDFromLocals(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func adminActionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrRegistrationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownStatus):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyRevisionNotes):
		return helper.JsonValidationError(c, map[string][]string{"notes": {err.Error() + "."}})
	case errors.Is(err, service.ErrIncompleteInterview):
		return helper.JsonValidationError(c, map[string][]string{"interview": {err.Error() + "."}})
	default:
		log.Printf("[ADMISSION] aksi admin gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}
