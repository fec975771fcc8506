package controller

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"baetelanshar_backend/internals/constants"
	helper "baetelanshar_backend/internals/helpers"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	"baetelanshar_backend/internals/features/admissions/registrations/service"
)

// DraftController: siklus hidup draft pendaftaran publik. Semua state
// di staging memori; belum ada tulisan DB/storage sebelum submit.
type DraftController struct {
	Staging      *service.StagingStore
	Orchestrator *service.Orchestrator
}

func NewDraftController(staging *service.StagingStore, orchestrator *service.Orchestrator) *DraftController {
	return &DraftController{Staging: staging, Orchestrator: orchestrator}
}

// CreateDraft: POST /registrations/drafts
func (ctrl *DraftController) CreateDraft(c *fiber.Ctx) error {
	draft := ctrl.Staging.CreateDraft()
	return helper.JsonCreated(c, "Draft pendaftaran dibuat", draftView(draft))
}

// GetDraft: GET /registrations/drafts/:id
func (ctrl *DraftController) GetDraft(c *fiber.Ctx) error {
	draft, err := ctrl.loadDraft(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", draftView(draft))
}

type saveFormRequest struct {
	Step int                  `json:"step"`
	Form dto.RegistrationForm `json:"form"`
}

// SaveForm: PUT /registrations/drafts/:id
// Memvalidasi field langkah yang dikirim sebelum menyimpan; langkah
// lain belum harus terisi.
func (ctrl *DraftController) SaveForm(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}

	var req saveFormRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.Step < 1 || req.Step > 4 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Langkah harus 1 sampai 4")
	}

	if fieldErrs := req.Form.ValidateStep(req.Step); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	draft, err := ctrl.Staging.SaveForm(id, req.Form, req.Step)
	if err != nil {
		return draftError(c, err)
	}
	return helper.JsonUpdated(c, "Draft tersimpan", draftView(draft))
}

// ValidateStep: POST /registrations/drafts/:id/steps/:step/validate
// Gerbang "Lanjut" per langkah. Langkah 1-3 memvalidasi subset field
// dari body dan, bila lolos, menyimpannya ke draft; langkah 4 mengecek
// kelengkapan dokumen yang sudah di-staging.
func (ctrl *DraftController) ValidateStep(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}
	step, err := c.ParamsInt("step")
	if err != nil || step < 1 || step > 4 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Langkah harus 1 sampai 4")
	}

	if step == 4 {
		draft, derr := ctrl.Staging.Get(id)
		if derr != nil {
			return draftError(c, derr)
		}
		if missing := draft.MissingCategories(); len(missing) > 0 {
			errs := map[string][]string{}
			for _, cat := range missing {
				errs["documents"] = append(errs["documents"],
					"Dokumen "+constants.DocumentLabels[cat]+" belum diunggah.")
			}
			return helper.JsonValidationError(c, errs)
		}
		return helper.JsonOK(c, "Dokumen lengkap", nil)
	}

	var form dto.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if fieldErrs := form.ValidateStep(step); fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}

	draft, err := ctrl.Staging.SaveStep(id, form, step)
	if err != nil {
		return draftError(c, err)
	}
	return helper.JsonOK(c, "Valid", draftView(draft))
}

// Documents: GET /registrations/drafts/:id/documents
// Peta dokumen yang sudah di-staging, tanpa isi file.
func (ctrl *DraftController) Documents(c *fiber.Ctx) error {
	draft, err := ctrl.loadDraft(c)
	if err != nil {
		return err
	}
	view := draftView(draft)
	return helper.JsonOK(c, "", fiber.Map{
		"documents": view.Documents,
		"missing":   view.Missing,
	})
}

// StageDocument: PUT /registrations/drafts/:id/documents/:category
// Multipart "file". Mengulang kategori yang sama mengganti file lama.
func (ctrl *DraftController) StageDocument(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}
	category := c.Params("category")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak ditemukan di form field 'file'")
	}
	if fileHeader.Size > service.MaxDocumentSize {
		return helper.JsonValidationError(c, map[string][]string{
			"file": {service.ErrFileTooLarge.Error() + "."},
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File tidak bisa dibaca")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	draft, err := ctrl.Staging.Stage(id, category, fileHeader.Filename, contentType, data)
	if err != nil {
		return draftError(c, err)
	}
	return helper.JsonUpdated(c, "Dokumen "+constants.DocumentLabels[category]+" diunggah", draftView(draft))
}

// RemoveDocument: DELETE /registrations/drafts/:id/documents/:category
func (ctrl *DraftController) RemoveDocument(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}
	category := c.Params("category")
	if !constants.IsDocumentCategory(category) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kategori dokumen tidak dikenal")
	}

	draft, err := ctrl.Staging.Remove(id, category)
	if err != nil {
		return draftError(c, err)
	}
	return helper.JsonDeleted(c, "Dokumen dihapus dari draft", draftView(draft))
}

// DocumentPreview: GET /registrations/drafts/:id/previews/:category
// Thumbnail WebP untuk dokumen gambar; PDF tidak punya preview.
func (ctrl *DraftController) DocumentPreview(c *fiber.Ctx) error {
	draft, err := ctrl.loadDraft(c)
	if err != nil {
		return err
	}
	doc, ok := draft.Documents[c.Params("category")]
	if !ok || len(doc.Preview) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Preview tidak tersedia")
	}
	c.Set(fiber.HeaderContentType, "image/webp")
	return c.Send(doc.Preview)
}

// Submit: POST /registrations/drafts/:id/submit
func (ctrl *DraftController) Submit(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}

	resp, fieldErrs, err := ctrl.Orchestrator.Submit(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		log.Printf("[SUBMIT] draft %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}
	if fieldErrs != nil {
		return helper.JsonValidationError(c, fieldErrs)
	}
	return helper.JsonOK(c, resp.Message, resp)
}

// DiscardDraft: DELETE /registrations/drafts/:id
func (ctrl *DraftController) DiscardDraft(c *fiber.Ctx) error {
	id, err := parseDraftID(c)
	if err != nil {
		return err
	}
	ctrl.Staging.Drop(id)
	return helper.JsonDeleted(c, "Draft dibuang", nil)
}

/* ====================== helpers ====================== */

func parseDraftID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, "ID draft tidak valid")
	}
	return id, nil
}

func (ctrl *DraftController) loadDraft(c *fiber.Ctx) (*service.Draft, error) {
	id, err := parseDraftID(c)
	if err != nil {
		return nil, err
	}
	draft, err := ctrl.Staging.Get(id)
	if err != nil {
		return nil, draftError(c, err)
	}
	return draft, nil
}

func draftError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge):
		// pelanggaran staging tidak menyentuh state sebelumnya
		return helper.JsonValidationError(c, map[string][]string{
			"file": {err.Error() + "."},
		})
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}

func draftView(d *service.Draft) dto.DraftResponse {
	docs := make([]dto.DraftDocumentView, 0, len(d.Documents))
	for _, cat := range constants.DocumentCategories {
		doc, ok := d.Documents[cat]
		if !ok {
			continue
		}
		docs = append(docs, dto.DraftDocumentView{
			Category:   cat,
			Label:      constants.DocumentLabels[cat],
			Filename:   doc.Filename,
			Size:       doc.Size,
			Type:       doc.ContentType,
			HasPreview: len(doc.Preview) > 0,
		})
	}
	return dto.DraftResponse{
		ID:        d.ID,
		Step:      d.Step,
		Form:      d.Form,
		Documents: docs,
		Missing:   d.MissingCategories(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
