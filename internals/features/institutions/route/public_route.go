package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	instController "baetelanshar_backend/internals/features/institutions/controller"
)

func InstitutionRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := instController.NewInstitutionController(db)

	public.Get("/institutions", ctrl.GetAll)
	public.Get("/institutions/:type", ctrl.GetByType)
}
