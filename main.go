package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"baetelanshar_backend/internals/configs"
	database "baetelanshar_backend/internals/databases"
	regScheduler "baetelanshar_backend/internals/features/admissions/registrations/scheduler"
	regService "baetelanshar_backend/internals/features/admissions/registrations/service"
	helperOSS "baetelanshar_backend/internals/helpers/oss"
	middlewares "baetelanshar_backend/internals/middlewares"
	routes "baetelanshar_backend/internals/route"
	"baetelanshar_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	seeds.SeedInstitutions(database.DB)

	// Object storage untuk dokumen pendaftaran
	ossSvc, err := helperOSS.NewServiceFromEnv()
	if err != nil {
		log.Printf("[WARN] OSS tidak terkonfigurasi: %v (upload dokumen akan gagal)", err)
	}

	// Notifikasi wali (best-effort, boleh nil)
	notifier := regService.NewNotifierFromEnv()

	// Staging dokumen pendaftaran (in-memory, TTL)
	staging := regService.NewStagingStore(regService.DraftTTLFromEnv())
	staging.StartEviction()

	// Reaper attempt pendaftaran yang terbengkalai
	regScheduler.StartAttemptReaper(database.DB, ossSvc)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB, ossSvc, notifier, staging)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if notifier != nil {
		_ = notifier.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
