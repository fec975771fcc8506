package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

/* ===============================
   Form pendaftaran (multi-step)
=================================*/

// RegistrationForm: payload form empat langkah, field datar seperti
// form lama. Validasi per langkah hanya menyentuh subset field-nya.
type RegistrationForm struct {
	ParentName    string `json:"parentName" validate:"required,min=3"`
	ParentEmail   string `json:"parentEmail" validate:"required,email"`
	ParentPhone   string `json:"parentPhone" validate:"required,min=10"`
	ParentAddress string `json:"parentAddress" validate:"required,min=10"`

	StudentName    string `json:"studentName" validate:"required,min=3"`
	BirthPlace     string `json:"birthPlace" validate:"required,min=2"`
	BirthDate      string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required,oneof=laki-laki perempuan"`
	PreviousSchool string `json:"previousSchool" validate:"omitempty"`

	Institution string `json:"institution" validate:"required,oneof=dta smp sma pesantren"`
}

var stepFields = map[int][]string{
	1: {"ParentName", "ParentEmail", "ParentPhone", "ParentAddress"},
	2: {"StudentName", "BirthPlace", "BirthDate", "Gender", "PreviousSchool"},
	3: {"Institution"},
}

// ValidateStep memvalidasi hanya field langkah tsb (1..3). Langkah 4
// adalah kelengkapan dokumen dan dicek terhadap staging, bukan di sini.
func (f *RegistrationForm) ValidateStep(step int) map[string][]string {
	fields, ok := stepFields[step]
	if !ok {
		return nil
	}
	return translateValidation(validate.StructPartial(f, fields...))
}

// ApplyStep menyalin hanya field milik langkah tsb dari src, supaya
// simpan-per-langkah tidak mengosongkan langkah lain.
func (f *RegistrationForm) ApplyStep(src RegistrationForm, step int) {
	switch step {
	case 1:
		f.ParentName = src.ParentName
		f.ParentEmail = src.ParentEmail
		f.ParentPhone = src.ParentPhone
		f.ParentAddress = src.ParentAddress
	case 2:
		f.StudentName = src.StudentName
		f.BirthPlace = src.BirthPlace
		f.BirthDate = src.BirthDate
		f.Gender = src.Gender
		f.PreviousSchool = src.PreviousSchool
	case 3:
		f.Institution = src.Institution
	}
}

// ValidateAll memvalidasi seluruh field form sebelum submit.
func (f *RegistrationForm) ValidateAll() map[string][]string {
	return translateValidation(validate.Struct(f))
}

func translateValidation(err error) map[string][]string {
	if err == nil {
		return nil
	}
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{"Invalid input"}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = field + " wajib diisi."
		case "email":
			msg = "Format email tidak valid."
		case "min":
			msg = field + " minimal " + fe.Param() + " karakter."
		case "oneof":
			msg = field + " harus salah satu dari: " + fe.Param() + "."
		case "datetime":
			msg = field + " harus berformat " + fe.Param() + "."
		default:
			msg = field + " tidak valid."
		}
		out[field] = append(out[field], msg)
	}
	return out
}

/* ===============================
   Kontrak RPC register-student
=================================*/

type RegisterParent struct {
	Name    string `json:"name" validate:"required,min=3"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Address string `json:"address" validate:"required,min=10"`
}

type RegisterStudent struct {
	Name           string  `json:"name" validate:"required,min=3"`
	BirthPlace     string  `json:"birth_place" validate:"required,min=2"`
	BirthDate      string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender         string  `json:"gender" validate:"required"`
	PreviousSchool *string `json:"previous_school,omitempty"`
}

type RegisterStudentRequest struct {
	Parent  RegisterParent  `json:"parent"`
	Student RegisterStudent `json:"student"`
	// institution_id berisi kode lembaga (dta/smp/sma/pesantren);
	// institution adalah alias payload lama.
	InstitutionID string `json:"institution_id"`
	Institution   string `json:"institution"`
	// Toleran terhadap bentuk lama (map string) dan kanonik (map objek).
	Documents json.RawMessage `json:"documents"`
}

func (r *RegisterStudentRequest) InstitutionCode() string {
	if code := strings.TrimSpace(r.InstitutionID); code != "" {
		return code
	}
	return strings.TrimSpace(r.Institution)
}

func (r *RegisterStudentRequest) Validate() map[string][]string {
	errs := translateValidation(validate.Struct(r))
	if r.InstitutionCode() == "" {
		if errs == nil {
			errs = map[string][]string{}
		}
		errs["Institution"] = append(errs["Institution"], "Institution wajib diisi.")
	}
	return errs
}

// ParseBirthDate: tanggal lahir dikirim "2006-01-02".
func (r *RegisterStudentRequest) ParseBirthDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Student.BirthDate)
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterStudentResponse mengikuti kontrak fungsi register-student:
// 200 + payload ini saat sukses, 400 + {success:false,message} saat gagal.
type RegisterStudentResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	IsNewUser      bool         `json:"isNewUser"`
	Credentials    *Credentials `json:"credentials"`
	RegistrationID uuid.UUID    `json:"registration_id,omitempty"`
	StudentID      uuid.UUID    `json:"student_id,omitempty"`
}

// ToRegisterRequest mengubah form datar jadi payload RPC.
func (f *RegistrationForm) ToRegisterRequest(documents DocumentMap) (*RegisterStudentRequest, error) {
	docsJSON, err := json.Marshal(documents)
	if err != nil {
		return nil, err
	}
	var prev *string
	if s := strings.TrimSpace(f.PreviousSchool); s != "" {
		prev = &s
	}
	return &RegisterStudentRequest{
		Parent: RegisterParent{
			Name:    strings.TrimSpace(f.ParentName),
			Email:   strings.TrimSpace(strings.ToLower(f.ParentEmail)),
			Phone:   strings.TrimSpace(f.ParentPhone),
			Address: strings.TrimSpace(f.ParentAddress),
		},
		Student: RegisterStudent{
			Name:           strings.TrimSpace(f.StudentName),
			BirthPlace:     strings.TrimSpace(f.BirthPlace),
			BirthDate:      strings.TrimSpace(f.BirthDate),
			Gender:         f.Gender,
			PreviousSchool: prev,
		},
		InstitutionID: f.Institution,
		Documents:     docsJSON,
	}, nil
}
