package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	hafalanController "baetelanshar_backend/internals/features/academics/hafalan/controller"
	recordController "baetelanshar_backend/internals/features/academics/records/controller"
)

// AcademicsRoutes: pencatatan hafalan dan nilai oleh admin.
// Wali membaca keduanya lewat dashboard, bukan endpoint ini.
func AcademicsRoutes(admin fiber.Router, db *gorm.DB) {
	hafalanCtrl := hafalanController.NewHafalanController(db)
	recordCtrl := recordController.NewAcademicRecordController(db)

	admin.Post("/hafalan", hafalanCtrl.Create)
	admin.Get("/hafalan", hafalanCtrl.ListByStudent)
	admin.Patch("/hafalan/:id/status", hafalanCtrl.UpdateStatus)

	admin.Post("/academics", recordCtrl.Create)
	admin.Get("/academics", recordCtrl.ListByStudent)
}
