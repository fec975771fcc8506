package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"baetelanshar_backend/internals/constants"
	instModel "baetelanshar_backend/internals/features/institutions/model"
	authService "baetelanshar_backend/internals/features/users/auth/service"
	userModel "baetelanshar_backend/internals/features/users/user/model"
	userRepo "baetelanshar_backend/internals/features/users/user/repository"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	regModel "baetelanshar_backend/internals/features/admissions/registrations/model"
	regRepo "baetelanshar_backend/internals/features/admissions/registrations/repository"
	studentModel "baetelanshar_backend/internals/features/admissions/students/model"
	studentRepo "baetelanshar_backend/internals/features/admissions/students/repository"
)

// Provisioner mengeksekusi pendaftaran di sisi server: akun wali,
// profil, santri, lalu baris registrasi. Tiap eksekusi dibungkus
// registration_attempts supaya sisa kegagalan bisa disapu reaper.
type Provisioner struct {
	DB       *gorm.DB
	Notifier *Notifier
}

func NewProvisioner(db *gorm.DB, notifier *Notifier) *Provisioner {
	return &Provisioner{DB: db, Notifier: notifier}
}

const (
	msgSuccessNewUser      = "Pendaftaran berhasil! Akun baru telah dibuat."
	msgSuccessExistingUser = "Pendaftaran berhasil! Santri ditambahkan ke akun yang sudah ada."
)

// RegisterStudent menjalankan seluruh provisioning untuk satu submit
// RPC. Error yang dikembalikan aman ditampilkan ke pemanggil.
func (p *Provisioner) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.RegisterStudentResponse, error) {
	docs, birthDate, err := p.prepare(req)
	if err != nil {
		return nil, err
	}

	// attempt ditulis sebelum efek samping pertama
	attempt, err := p.OpenAttempt(req.Parent.Email, req.Student.Name, docs)
	if err != nil {
		return nil, err
	}
	return p.finish(ctx, attempt, req, docs, birthDate)
}

// RegisterStaged dipakai jalur submit draft: attempt sudah dibuka
// sebelum upload dokumen, supaya upload yang kandas di tengah tetap
// tercatat dan bisa disapu reaper.
func (p *Provisioner) RegisterStaged(ctx context.Context, attempt *regModel.RegistrationAttemptModel, req *dto.RegisterStudentRequest) (*dto.RegisterStudentResponse, error) {
	docs, birthDate, err := p.prepare(req)
	if err != nil {
		p.FailAttempt(attempt.ID, err)
		return nil, err
	}
	return p.finish(ctx, attempt, req, docs, birthDate)
}

func (p *Provisioner) prepare(req *dto.RegisterStudentRequest) (dto.DocumentMap, time.Time, error) {
	if fieldErrs := req.Validate(); fieldErrs != nil {
		return nil, time.Time{}, fmt.Errorf("data pendaftaran tidak valid: %s", firstValidationMessage(fieldErrs))
	}
	docs, err := dto.ToDocumentMap(req.Documents)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("dokumen tidak valid: %w", err)
	}
	birthDate, err := req.ParseBirthDate()
	if err != nil {
		return nil, time.Time{}, errors.New("tanggal lahir tidak valid, gunakan format YYYY-MM-DD")
	}
	return docs, birthDate, nil
}

// OpenAttempt membuka bracket saga untuk satu eksekusi pendaftaran.
func (p *Provisioner) OpenAttempt(parentEmail, studentName string, docs dto.DocumentMap) (*regModel.RegistrationAttemptModel, error) {
	attempt := &regModel.RegistrationAttemptModel{
		ParentEmail: parentEmail,
		StudentName: studentName,
		Status:      constants.AttemptProcessing,
	}
	if docs != nil {
		if paths, merr := docs.ToJSON(); merr == nil {
			attempt.DocumentPaths = paths
		}
	}
	if err := regRepo.CreateAttempt(p.DB, attempt); err != nil {
		return nil, fmt.Errorf("gagal memulai pendaftaran: %w", err)
	}
	return attempt, nil
}

// FailAttempt menandai attempt gagal beserta alasannya.
func (p *Provisioner) FailAttempt(attemptID uuid.UUID, cause error) {
	_ = regRepo.UpdateAttempt(p.DB, attemptID, map[string]interface{}{
		"status":     constants.AttemptFailed,
		"last_error": cause.Error(),
	})
}

// RecordAttemptPaths memperbarui daftar path objek yang sudah terunggah.
func (p *Provisioner) RecordAttemptPaths(attemptID uuid.UUID, docs dto.DocumentMap) {
	paths, err := docs.ToJSON()
	if err != nil {
		return
	}
	_ = regRepo.UpdateAttempt(p.DB, attemptID, map[string]interface{}{
		"document_paths": paths,
	})
}

func (p *Provisioner) finish(ctx context.Context, attempt *regModel.RegistrationAttemptModel, req *dto.RegisterStudentRequest, docs dto.DocumentMap, birthDate time.Time) (*dto.RegisterStudentResponse, error) {
	resp, err := p.provision(req, docs, birthDate)
	if err != nil {
		p.FailAttempt(attempt.ID, err)
		log.Printf("[PROVISION] attempt %s gagal: %v", attempt.ID, err)
		return nil, err
	}

	_ = regRepo.UpdateAttempt(p.DB, attempt.ID, map[string]interface{}{
		"status": constants.AttemptCompleted,
	})

	p.Notifier.Publish(ctx, GuardianEvent{
		Type:           EventRegistrationCreated,
		RegistrationID: resp.RegistrationID.String(),
		ParentEmail:    req.Parent.Email,
		StudentName:    req.Student.Name,
		Status:         constants.StatusPending,
		Message:        resp.Message,
	})
	return resp, nil
}

func (p *Provisioner) provision(req *dto.RegisterStudentRequest, docs dto.DocumentMap, birthDate time.Time) (*dto.RegisterStudentResponse, error) {
	account, err := authService.EnsureGuardianAccount(p.DB, req.Parent.Email)
	if err != nil {
		return nil, fmt.Errorf("gagal menyiapkan akun wali: %w", err)
	}

	// profil wali best-effort; pendaftaran tidak boleh gagal karenanya
	profile := &userModel.ProfileModel{
		ID:       account.UserID,
		FullName: req.Parent.Name,
		Phone:    req.Parent.Phone,
		Address:  req.Parent.Address,
	}
	if perr := userRepo.UpsertProfile(p.DB, profile); perr != nil {
		log.Printf("[PROVISION] upsert profil %s gagal: %v", account.UserID, perr)
	}

	institution, err := p.resolveInstitution(req.InstitutionCode())
	if err != nil {
		return nil, err
	}

	student := &studentModel.StudentModel{
		ParentID:       account.UserID,
		InstitutionID:  &institution.ID,
		FullName:       req.Student.Name,
		BirthPlace:     req.Student.BirthPlace,
		BirthDate:      birthDate,
		Gender:         req.Student.Gender,
		PreviousSchool: req.Student.PreviousSchool,
	}
	if err := studentRepo.CreateStudent(p.DB, student); err != nil {
		return nil, fmt.Errorf("gagal menyimpan data santri: %w", err)
	}

	docsJSON, err := docs.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("gagal menyimpan dokumen: %w", err)
	}
	registration := &regModel.RegistrationModel{
		StudentID:     student.ID,
		InstitutionID: &institution.ID,
		Status:        constants.StatusPending,
		Documents:     docsJSON,
	}
	if err := regRepo.CreateRegistration(p.DB, registration); err != nil {
		return nil, fmt.Errorf("gagal menyimpan pendaftaran: %w", err)
	}

	resp := &dto.RegisterStudentResponse{
		Success:        true,
		IsNewUser:      account.IsNewUser,
		RegistrationID: registration.ID,
		StudentID:      student.ID,
	}
	if account.IsNewUser {
		resp.Message = msgSuccessNewUser
		resp.Credentials = &dto.Credentials{
			Email:    req.Parent.Email,
			Password: account.Password,
		}
	} else {
		resp.Message = msgSuccessExistingUser
	}
	log.Printf("[PROVISION] registrasi %s (santri %s) dibuat", registration.ID, student.ID)
	return resp, nil
}

// resolveInstitution: kode tak dikenal adalah error, bukan NULL diam-diam.
func (p *Provisioner) resolveInstitution(code string) (*instModel.InstitutionModel, error) {
	if !constants.IsInstitutionCode(code) {
		return nil, fmt.Errorf("lembaga tidak dikenal: %s", code)
	}
	var inst instModel.InstitutionModel
	if err := p.DB.First(&inst, "type = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lembaga tidak dikenal: %s", code)
		}
		return nil, fmt.Errorf("gagal membaca data lembaga: %w", err)
	}
	return &inst, nil
}

func firstValidationMessage(errs map[string][]string) string {
	for _, field := range []string{"Name", "Email", "Phone", "Address", "BirthPlace", "BirthDate", "Gender", "Institution"} {
		if msgs, ok := errs[field]; ok && len(msgs) > 0 {
			return msgs[0]
		}
	}
	for _, msgs := range errs {
		if len(msgs) > 0 {
			return msgs[0]
		}
	}
	return "periksa kembali isian Anda"
}
