package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	helper "baetelanshar_backend/internals/helpers"

	"baetelanshar_backend/internals/features/academics/hafalan/dto"
	hafalanModel "baetelanshar_backend/internals/features/academics/hafalan/model"
)

var validate = validator.New()

type HafalanController struct {
	DB *gorm.DB
}

func NewHafalanController(db *gorm.DB) *HafalanController {
	return &HafalanController{DB: db}
}

// Create: POST /hafalan
func (ctrl *HafalanController) Create(c *fiber.Ctx) error {
	var req dto.CreateHafalanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Data hafalan tidak lengkap")
	}

	row := &hafalanModel.HafalanProgressModel{
		StudentID:    req.StudentID,
		SurahName:    req.SurahName,
		Juz:          req.Juz,
		Status:       constants.HafalanInProgress,
		TeacherNotes: req.TeacherNotes,
	}
	if req.Status != "" {
		row.Status = req.Status
	}
	if row.Status == constants.HafalanCompleted {
		now := time.Now()
		row.MemorizedDate = &now
	}
	if err := ctrl.DB.Create(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan hafalan")
	}
	return helper.JsonCreated(c, "Catatan hafalan ditambahkan", dto.ToHafalanResponse(row))
}

// UpdateStatus: PATCH /hafalan/:id/status
// Pindah ke completed mengisi memorized_date; keluar dari completed
// mengosongkannya lagi.
func (ctrl *HafalanController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID hafalan tidak valid")
	}

	var req dto.UpdateHafalanStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Status hafalan tidak dikenal")
	}

	var row hafalanModel.HafalanProgressModel
	if err := ctrl.DB.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Catatan hafalan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan hafalan")
	}

	fields := map[string]interface{}{"status": req.Status}
	if req.TeacherNotes != nil {
		fields["teacher_notes"] = *req.TeacherNotes
	}
	if req.Status == constants.HafalanCompleted {
		fields["memorized_date"] = time.Now()
	} else {
		fields["memorized_date"] = nil
	}
	if err := ctrl.DB.Model(&row).Updates(fields).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui hafalan")
	}

	if err := ctrl.DB.First(&row, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil catatan hafalan")
	}
	return helper.JsonUpdated(c, "Status hafalan diperbarui", dto.ToHafalanResponse(&row))
}

// ListByStudent: GET /hafalan?student_id=
func (ctrl *HafalanController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	var rows []hafalanModel.HafalanProgressModel
	if err := ctrl.DB.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar hafalan")
	}
	return helper.JsonOK(c, "", dto.ToHafalanResponses(rows))
}
