package constants

// Slot dokumen pendaftaran. Setiap kategori maksimal satu file.
const (
	DocKK            = "kk"
	DocKTP           = "ktp"
	DocIjazah        = "ijazah"
	DocPhoto         = "photo"
	DocBuktiTransfer = "bukti_transfer"
)

// Urutan tampil mengikuti form pendaftaran.
var DocumentCategories = []string{DocKK, DocKTP, DocIjazah, DocPhoto, DocBuktiTransfer}

var DocumentLabels = map[string]string{
	DocKK:            "Kartu Keluarga",
	DocKTP:           "KTP Orang Tua",
	DocIjazah:        "Ijazah / SKL",
	DocPhoto:         "Pas Foto",
	DocBuktiTransfer: "Bukti Transfer",
}

func IsDocumentCategory(key string) bool {
	_, ok := DocumentLabels[key]
	return ok
}

// Status pendaftaran. Transisi bebas oleh admin; dua aksi workflow
// (catatan revisi, undangan wawancara) memaksa status tujuannya sendiri.
const (
	StatusPending        = "pending"
	StatusDocumentReview = "document_review"
	StatusInterview      = "interview"
	StatusAccepted       = "accepted"
	StatusRejected       = "rejected"
)

var RegistrationStatuses = []string{
	StatusPending,
	StatusDocumentReview,
	StatusInterview,
	StatusAccepted,
	StatusRejected,
}

func IsRegistrationStatus(s string) bool {
	for _, v := range RegistrationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Kode lembaga di bawah yayasan.
const (
	InstitutionDTA       = "dta"
	InstitutionSMP       = "smp"
	InstitutionSMA       = "sma"
	InstitutionPesantren = "pesantren"
)

var InstitutionTypes = []string{
	InstitutionDTA,
	InstitutionSMP,
	InstitutionSMA,
	InstitutionPesantren,
}

func IsInstitutionCode(code string) bool {
	for _, v := range InstitutionTypes {
		if v == code {
			return true
		}
	}
	return false
}

// Status attempt pendaftaran (saga bracket).
const (
	AttemptProcessing = "processing"
	AttemptCompleted  = "completed"
	AttemptFailed     = "failed"
)

// Status hafalan.
const (
	HafalanInProgress = "in_progress"
	HafalanCompleted  = "completed"
	HafalanReview     = "review"
)
