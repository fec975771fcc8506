package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helperOSS "baetelanshar_backend/internals/helpers/oss"
	"baetelanshar_backend/internals/middlewares"

	regController "baetelanshar_backend/internals/features/admissions/registrations/controller"
	regService "baetelanshar_backend/internals/features/admissions/registrations/service"
)

// RegistrationRoutes merangkai seluruh alur penerimaan:
// draft publik, RPC register-student, dashboard wali, panel admin.
func RegistrationRoutes(public, user, admin fiber.Router, db *gorm.DB, oss *helperOSS.Service, notifier *regService.Notifier, staging *regService.StagingStore) {
	provisioner := regService.NewProvisioner(db, notifier)
	orchestrator := regService.NewOrchestrator(staging, oss, provisioner)
	adminSvc := regService.NewAdminService(db, notifier)

	draftCtrl := regController.NewDraftController(staging, orchestrator)
	rpcCtrl := regController.NewRPCController(provisioner)
	adminCtrl := regController.NewAdminRegistrationController(db, adminSvc, oss)
	guardianCtrl := regController.NewGuardianController(db)

	// draft pendaftaran (publik, tanpa login)
	drafts := public.Group("/registrations/drafts")
	drafts.Post("/", draftCtrl.CreateDraft)
	drafts.Get("/:id", draftCtrl.GetDraft)
	drafts.Put("/:id", draftCtrl.SaveForm)
	drafts.Delete("/:id", draftCtrl.DiscardDraft)
	drafts.Post("/:id/steps/:step/validate", draftCtrl.ValidateStep)
	drafts.Get("/:id/documents", draftCtrl.Documents)
	drafts.Put("/:id/documents/:category", draftCtrl.StageDocument)
	drafts.Delete("/:id/documents/:category", draftCtrl.RemoveDocument)
	drafts.Get("/:id/previews/:category", draftCtrl.DocumentPreview)
	drafts.Post("/:id/submit", middlewares.RegisterRateLimiter(), draftCtrl.Submit)

	// kontrak lama: dokumen diunggah klien, body memuat path
	public.Post("/functions/register-student", middlewares.RegisterRateLimiter(), rpcCtrl.RegisterStudent)

	// dashboard wali
	user.Get("/dashboard", guardianCtrl.Dashboard)

	// panel admin penerimaan
	registrations := admin.Group("/registrations")
	registrations.Get("/", adminCtrl.List)
	registrations.Get("/:id", adminCtrl.Detail)
	registrations.Get("/:id/logs", adminCtrl.StatusLogs)
	registrations.Get("/:id/documents", adminCtrl.Documents)
	registrations.Patch("/:id/status", adminCtrl.UpdateStatus)
	registrations.Post("/:id/revision", adminCtrl.SendRevision)
	registrations.Post("/:id/interview", adminCtrl.SendInterview)
}
