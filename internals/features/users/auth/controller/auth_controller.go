package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "baetelanshar_backend/internals/features/users/auth/service"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(ctrl.DB, c)
}

func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	return authService.ChangePassword(ctrl.DB, c)
}
