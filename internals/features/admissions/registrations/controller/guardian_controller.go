package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "baetelanshar_backend/internals/helpers"

	hafalanDto "baetelanshar_backend/internals/features/academics/hafalan/dto"
	hafalanModel "baetelanshar_backend/internals/features/academics/hafalan/model"
	recordDto "baetelanshar_backend/internals/features/academics/records/dto"
	recordModel "baetelanshar_backend/internals/features/academics/records/model"
	userRepo "baetelanshar_backend/internals/features/users/user/repository"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
	regRepo "baetelanshar_backend/internals/features/admissions/registrations/repository"
	studentDto "baetelanshar_backend/internals/features/admissions/students/dto"
	studentRepo "baetelanshar_backend/internals/features/admissions/students/repository"
)

// GuardianController: dashboard wali. Semua data difilter lewat
// parent_id dari token, wali tidak pernah bisa melihat anak orang lain.
type GuardianController struct {
	DB *gorm.DB
}

func NewGuardianController(db *gorm.DB) *GuardianController {
	return &GuardianController{DB: db}
}

type guardianStudentView struct {
	Student       studentDto.StudentResponse         `json:"student"`
	Registrations []dto.RegistrationResponse         `json:"registrations"`
	Hafalan       []hafalanDto.HafalanResponse       `json:"hafalan"`
	Academic      []recordDto.AcademicRecordResponse `json:"academic_records"`
}

type dashboardResponse struct {
	Profile  fiber.Map             `json:"profile"`
	Students []guardianStudentView `json:"students"`
}

// Dashboard: GET /u/dashboard
func (ctrl *GuardianController) Dashboard(c *fiber.Ctx) error {
	parentID, err := guardianIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi tidak valid")
	}

	user, err := userRepo.FindUserByID(ctrl.DB, parentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akun tidak ditemukan")
	}

	profile := fiber.Map{"email": user.Email}
	if p, perr := userRepo.FindProfileByID(ctrl.DB, parentID); perr == nil {
		profile["full_name"] = p.FullName
		profile["phone"] = p.Phone
		profile["address"] = p.Address
	} else if !errors.Is(perr, gorm.ErrRecordNotFound) {
		log.Printf("[DASHBOARD] profil %s gagal dibaca: %v", parentID, perr)
	}

	students, err := studentRepo.FindStudentsByParent(ctrl.DB, parentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	studentIDs := make([]uuid.UUID, 0, len(students))
	for _, s := range students {
		studentIDs = append(studentIDs, s.ID)
	}

	registrations, err := regRepo.FindRegistrationsByStudentIDs(ctrl.DB, studentIDs)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data pendaftaran")
	}
	regsByStudent := map[uuid.UUID][]dto.RegistrationResponse{}
	for i := range registrations {
		r := &registrations[i]
		regsByStudent[r.StudentID] = append(regsByStudent[r.StudentID], dto.ToRegistrationResponse(r))
	}

	hafalanByStudent, recordsByStudent := ctrl.academicData(studentIDs)

	views := make([]guardianStudentView, 0, len(students))
	for i := range students {
		s := &students[i]
		views = append(views, guardianStudentView{
			Student:       studentDto.ToStudentResponse(s),
			Registrations: orEmptyRegs(regsByStudent[s.ID]),
			Hafalan:       orEmptyHafalan(hafalanByStudent[s.ID]),
			Academic:      orEmptyRecords(recordsByStudent[s.ID]),
		})
	}

	return helper.JsonOK(c, "", dashboardResponse{Profile: profile, Students: views})
}

func (ctrl *GuardianController) academicData(studentIDs []uuid.UUID) (map[uuid.UUID][]hafalanDto.HafalanResponse, map[uuid.UUID][]recordDto.AcademicRecordResponse) {
	hafalanOut := map[uuid.UUID][]hafalanDto.HafalanResponse{}
	recordsOut := map[uuid.UUID][]recordDto.AcademicRecordResponse{}
	if len(studentIDs) == 0 {
		return hafalanOut, recordsOut
	}

	var hafalan []hafalanModel.HafalanProgressModel
	if err := ctrl.DB.Where("student_id IN ?", studentIDs).
		Order("created_at DESC").Find(&hafalan).Error; err != nil {
		log.Printf("[DASHBOARD] hafalan gagal dibaca: %v", err)
	}
	for i := range hafalan {
		h := &hafalan[i]
		hafalanOut[h.StudentID] = append(hafalanOut[h.StudentID], hafalanDto.ToHafalanResponse(h))
	}

	var records []recordModel.AcademicRecordModel
	if err := ctrl.DB.Where("student_id IN ?", studentIDs).
		Order("academic_year DESC, semester DESC").Find(&records).Error; err != nil {
		log.Printf("[DASHBOARD] nilai akademik gagal dibaca: %v", err)
	}
	for i := range records {
		r := &records[i]
		recordsOut[r.StudentID] = append(recordsOut[r.StudentID], recordDto.ToAcademicRecordResponse(r))
	}
	return hafalanOut, recordsOut
}

func guardianIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, errors.New("user_id tidak ada di context")
	}
	return uuid.Parse(raw)
}

func orEmptyRegs(v []dto.RegistrationResponse) []dto.RegistrationResponse {
	if v == nil {
		return []dto.RegistrationResponse{}
	}
	return v
}

func orEmptyHafalan(v []hafalanDto.HafalanResponse) []hafalanDto.HafalanResponse {
	if v == nil {
		return []hafalanDto.HafalanResponse{}
	}
	return v
}

func orEmptyRecords(v []recordDto.AcademicRecordResponse) []recordDto.AcademicRecordResponse {
	if v == nil {
		return []recordDto.AcademicRecordResponse{}
	}
	return v
}
