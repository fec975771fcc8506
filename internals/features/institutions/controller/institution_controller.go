package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instModel "baetelanshar_backend/internals/features/institutions/model"
	helper "baetelanshar_backend/internals/helpers"
)

type InstitutionController struct {
	DB *gorm.DB
}

func NewInstitutionController(db *gorm.DB) *InstitutionController {
	return &InstitutionController{DB: db}
}

// GetAll: daftar lembaga untuk halaman publik & pilihan form pendaftaran.
func (ctrl *InstitutionController) GetAll(c *fiber.Ctx) error {
	var list []instModel.InstitutionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data lembaga")
	}
	return helper.JsonOK(c, "ok", list)
}

func (ctrl *InstitutionController) GetByType(c *fiber.Ctx) error {
	code := c.Params("type")
	var inst instModel.InstitutionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("type = ?", code).
		First(&inst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lembaga tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data lembaga")
	}
	return helper.JsonOK(c, "ok", inst)
}
