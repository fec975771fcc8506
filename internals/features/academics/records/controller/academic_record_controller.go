package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "baetelanshar_backend/internals/helpers"

	"baetelanshar_backend/internals/features/academics/records/dto"
	recordModel "baetelanshar_backend/internals/features/academics/records/model"
)

var validate = validator.New()

type AcademicRecordController struct {
	DB *gorm.DB
}

func NewAcademicRecordController(db *gorm.DB) *AcademicRecordController {
	return &AcademicRecordController{DB: db}
}

// Create: POST /academics
func (ctrl *AcademicRecordController) Create(c *fiber.Ctx) error {
	var req dto.CreateAcademicRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Data nilai tidak lengkap")
	}

	row := &recordModel.AcademicRecordModel{
		StudentID:    req.StudentID,
		Subject:      req.Subject,
		Semester:     req.Semester,
		AcademicYear: req.AcademicYear,
		Score:        req.Score,
		Grade:        req.Grade,
	}
	if err := ctrl.DB.Create(row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}
	return helper.JsonCreated(c, "Nilai akademik ditambahkan", dto.ToAcademicRecordResponse(row))
}

// ListByStudent: GET /academics?student_id=
func (ctrl *AcademicRecordController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Query("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id wajib diisi")
	}

	var rows []recordModel.AcademicRecordModel
	if err := ctrl.DB.Where("student_id = ?", studentID).
		Order("academic_year DESC, semester DESC, subject ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar nilai")
	}
	return helper.JsonOK(c, "", dto.ToAcademicRecordResponses(rows))
}
