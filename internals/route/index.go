package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	helperOSS "baetelanshar_backend/internals/helpers/oss"
	authMiddleware "baetelanshar_backend/internals/middlewares/auth"

	academicsRoute "baetelanshar_backend/internals/features/academics/route"
	regRoute "baetelanshar_backend/internals/features/admissions/registrations/route"
	regService "baetelanshar_backend/internals/features/admissions/registrations/service"
	studentRoute "baetelanshar_backend/internals/features/admissions/students/route"
	instRoute "baetelanshar_backend/internals/features/institutions/route"
	authRoute "baetelanshar_backend/internals/features/users/auth/route"
)

// SetupRoutes membagi permukaan API tiga lapis:
//
//	/api, /api/public  → tanpa login (draft pendaftaran, login, lembaga)
//	/api/u             → wali login
//	/api/a             → admin
func SetupRoutes(app *fiber.App, db *gorm.DB, oss *helperOSS.Service, notifier *regService.Notifier, staging *regService.StagingStore) {
	public := app.Group("/api")
	publicInfo := app.Group("/api/public")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(constants.RoleAdmin),
	)

	authRoute.AuthRoutes(public, user, db)
	instRoute.InstitutionRoutes(publicInfo, db)
	regRoute.RegistrationRoutes(public, user, admin, db, oss, notifier, staging)
	studentRoute.StudentRoutes(admin, db)
	academicsRoute.AcademicsRoutes(admin, db)
}
