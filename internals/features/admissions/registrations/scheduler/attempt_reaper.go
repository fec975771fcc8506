package scheduler

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/configs"
	helperOSS "baetelanshar_backend/internals/helpers/oss"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
	regRepo "baetelanshar_backend/internals/features/admissions/registrations/repository"
)

const reaperBatchSize = 50

// StartAttemptReaper menyapu registration_attempts yang macet
// (processing/failed melewati umur maksimal): objek upload yatimnya
// dihapus dari storage, lalu barisnya dibuang. Path yang sudah
// direferensikan registrasi hidup tidak pernah disentuh.
func StartAttemptReaper(db *gorm.DB, oss *helperOSS.Service) {
	spec := configs.GetEnv("ATTEMPT_REAPER_CRON", "@every 30m")

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		reapStaleAttempts(db, oss)
	})
	if err != nil {
		log.Printf("[REAPER] cron spec %q tidak valid: %v", spec, err)
		return
	}
	c.Start()
	log.Printf("[REAPER] aktif, jadwal %s", spec)
}

func reapStaleAttempts(db *gorm.DB, oss *helperOSS.Service) {
	maxAge := 120
	if raw := configs.GetEnv("ATTEMPT_MAX_AGE_MINUTES", ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			maxAge = v
		}
	}

	attempts, err := regRepo.FindStaleAttempts(db, maxAge, reaperBatchSize)
	if err != nil {
		log.Printf("[REAPER] gagal membaca attempt: %v", err)
		return
	}
	if len(attempts) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for i := range attempts {
		reapAttempt(ctx, db, oss, &attempts[i])
	}
}

func reapAttempt(ctx context.Context, db *gorm.DB, oss *helperOSS.Service, attempt *regModel.RegistrationAttemptModel) {
	items, err := dto.NormalizeDocuments(attempt.DocumentPaths)
	if err != nil {
		log.Printf("[REAPER] attempt %s document_paths korup: %v", attempt.ID, err)
	}

	var orphans []string
	for _, item := range items {
		if item.Path == "" {
			continue
		}
		// key deterministik per email: submit ulang yang sukses memakai
		// path yang sama, jadi path hidup dilewati
		if pathInUse(db, item.Path) {
			continue
		}
		orphans = append(orphans, item.Path)
	}

	if len(orphans) > 0 {
		if err := oss.DeleteObjects(ctx, orphans); err != nil {
			log.Printf("[REAPER] attempt %s hapus %d objek gagal: %v", attempt.ID, len(orphans), err)
			return // attempt dibiarkan, dicoba lagi putaran berikutnya
		}
		log.Printf("[REAPER] attempt %s: %d objek yatim dihapus", attempt.ID, len(orphans))
	}

	if err := regRepo.DeleteAttempt(db, attempt.ID); err != nil {
		log.Printf("[REAPER] attempt %s gagal dihapus: %v", attempt.ID, err)
	}
}

func pathInUse(db *gorm.DB, path string) bool {
	var count int64
	err := db.Raw(
		`SELECT COUNT(*) FROM registrations WHERE documents::text LIKE ?`,
		"%"+path+"%",
	).Scan(&count).Error
	if err != nil {
		log.Printf("[REAPER] cek path %s gagal: %v", path, err)
		return true // ragu = jangan hapus
	}
	return count > 0
}
