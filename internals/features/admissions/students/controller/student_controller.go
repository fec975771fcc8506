package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "baetelanshar_backend/internals/helpers"

	studentDto "baetelanshar_backend/internals/features/admissions/students/dto"
	studentRepo "baetelanshar_backend/internals/features/admissions/students/repository"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// List: GET /students?q=&page=&per_page=
func (ctrl *StudentController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	search := strings.TrimSpace(c.Query("q"))

	rows, total, err := studentRepo.ListStudents(ctrl.DB, search, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar santri")
	}
	return helper.JsonList(c, "", studentDto.ToStudentResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// Detail: GET /students/:id
func (ctrl *StudentController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	s, err := studentRepo.FindStudentByID(ctrl.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}
	return helper.JsonOK(c, "", studentDto.ToStudentResponse(s))
}
