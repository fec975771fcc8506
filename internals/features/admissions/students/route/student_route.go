package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "baetelanshar_backend/internals/features/admissions/students/controller"
)

// StudentRoutes: data santri untuk back office admin.
func StudentRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentController(db)

	admin.Get("/students", ctrl.List)
	admin.Get("/students/:id", ctrl.Detail)
}
