package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware mencatat satu baris ringkasan per request: status dan
// latensi di depan supaya error gampang di-grep. Jam memakai WIB karena
// operasional yayasan seluruhnya di zona itu.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "02-Jan-2006 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} ${path}\n",
	})
}
