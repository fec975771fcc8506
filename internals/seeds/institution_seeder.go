package seeds

import (
	"log"

	"gorm.io/gorm"

	instModel "baetelanshar_backend/internals/features/institutions/model"
)

// SeedInstitutions meng-upsert empat lembaga yayasan berdasarkan kode.
// Idempotent; aman dijalankan tiap start.
func SeedInstitutions(db *gorm.DB) {
	seed := []instModel.InstitutionModel{
		{Type: "dta", Name: "DTA Arrasyd"},
		{Type: "smp", Name: "SMP Baet El Anshar"},
		{Type: "sma", Name: "SMA Baet El Anshar"},
		{Type: "pesantren", Name: "Pesantren Tahfidz Quran"},
	}

	for _, inst := range seed {
		err := db.Exec(`
			INSERT INTO institutions (type, name, created_at, updated_at)
			VALUES (?, ?, NOW(), NOW())
			ON CONFLICT (type) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		`, inst.Type, inst.Name).Error
		if err != nil {
			log.Printf("[SEED] gagal upsert lembaga %s: %v", inst.Type, err)
		}
	}
	log.Println("[SEED] institutions siap")
}
