package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "baetelanshar_backend/internals/features/users/auth/controller"
	"baetelanshar_backend/internals/middlewares"
)

// AuthRoutes: login publik (rate-limit ketat); ganti password di grup user.
func AuthRoutes(public fiber.Router, user fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	public.Post("/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)
	user.Post("/auth/change-password", ctrl.ChangePassword)
}
