package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	"baetelanshar_backend/internals/features/admissions/registrations/service"
)

// RPCController mempertahankan kontrak fungsi register-student untuk
// klien lama: dokumen sudah diunggah sendiri, body memuat path-nya.
// Respons mentah {success, message, ...}, bukan amplop API standar.
type RPCController struct {
	Provisioner *service.Provisioner
}

func NewRPCController(provisioner *service.Provisioner) *RPCController {
	return &RPCController{Provisioner: provisioner}
}

// RegisterStudent: POST /functions/register-student
// Selalu 200 saat sukses dan 400 saat gagal, apa pun penyebabnya.
func (ctrl *RPCController) RegisterStudent(c *fiber.Ctx) error {
	var req dto.RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Payload tidak valid",
		})
	}

	resp, err := ctrl.Provisioner.RegisterStudent(c.Context(), &req)
	if err != nil {
		log.Printf("[RPC] register-student gagal: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
