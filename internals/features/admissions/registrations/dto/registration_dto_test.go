package dto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validForm() RegistrationForm {
	return RegistrationForm{
		ParentName:    "Budi Santoso",
		ParentEmail:   "budi@mail.com",
		ParentPhone:   "081234567890",
		ParentAddress: "Jl. Merdeka No. 1, Bandung",
		StudentName:   "Aisyah Putri",
		BirthPlace:    "Bandung",
		BirthDate:     "2012-04-15",
		Gender:        "perempuan",
		Institution:   "smp",
	}
}

func TestValidateStep_OnlyTouchesOwnFields(t *testing.T) {
	// langkah 1 valid walau data santri masih kosong
	form := RegistrationForm{
		ParentName:    "Budi Santoso",
		ParentEmail:   "budi@mail.com",
		ParentPhone:   "081234567890",
		ParentAddress: "Jl. Merdeka No. 1, Bandung",
	}
	require.Nil(t, form.ValidateStep(1))
	require.NotNil(t, form.ValidateStep(2))
}

func TestValidateStep_ReportsFieldErrors(t *testing.T) {
	form := validForm()
	form.ParentEmail = "bukan-email"
	form.ParentPhone = "0812"

	errs := form.ValidateStep(1)
	require.NotNil(t, errs)
	require.Contains(t, errs, "ParentEmail")
	require.Contains(t, errs, "ParentPhone")
	require.NotContains(t, errs, "ParentName")
}

func TestValidateStep_BirthDateFormat(t *testing.T) {
	form := validForm()
	form.BirthDate = "15-04-2012"
	require.Contains(t, form.ValidateStep(2), "BirthDate")
}

func TestValidateStep_UnknownStepIsNoop(t *testing.T) {
	var form RegistrationForm
	require.Nil(t, form.ValidateStep(4))
	require.Nil(t, form.ValidateStep(99))
}

func TestApplyStep_OnlyCopiesOwnFields(t *testing.T) {
	full := validForm()

	var dst RegistrationForm
	dst.ApplyStep(full, 2)
	require.Equal(t, full.StudentName, dst.StudentName)
	require.Equal(t, full.BirthDate, dst.BirthDate)
	require.Empty(t, dst.ParentName) // langkah 1 tidak tersentuh
	require.Empty(t, dst.Institution)

	// simpan langkah 1 belakangan tidak menghapus isian langkah 2
	dst.ApplyStep(full, 1)
	require.Equal(t, full.ParentEmail, dst.ParentEmail)
	require.Equal(t, full.StudentName, dst.StudentName)
}

func TestValidateAll(t *testing.T) {
	form := validForm()
	require.Nil(t, form.ValidateAll())

	form.Institution = "universitas"
	errs := form.ValidateAll()
	require.Contains(t, errs, "Institution")
}

func TestInstitutionCode_AliasFallback(t *testing.T) {
	req := RegisterStudentRequest{Institution: "dta"}
	require.Equal(t, "dta", req.InstitutionCode())

	// institution_id menang atas alias lama
	req.InstitutionID = "pesantren"
	require.Equal(t, "pesantren", req.InstitutionCode())
}

func TestToRegisterRequest_NormalizesInput(t *testing.T) {
	form := validForm()
	form.ParentEmail = "  Budi@Mail.com "
	form.PreviousSchool = "  SDN 1 Bandung "

	req, err := form.ToRegisterRequest(DocumentMap{
		"kk": {Path: "budi_mail_com/kk.pdf", Type: "application/pdf"},
	})
	require.NoError(t, err)
	require.Equal(t, "budi@mail.com", req.Parent.Email)
	require.NotNil(t, req.Student.PreviousSchool)
	require.Equal(t, "SDN 1 Bandung", *req.Student.PreviousSchool)
	require.Equal(t, "smp", req.InstitutionCode())

	docs, err := ToDocumentMap(req.Documents)
	require.NoError(t, err)
	require.Equal(t, "budi_mail_com/kk.pdf", docs["kk"].Path)
}

func TestToRegisterRequest_EmptyPreviousSchoolStaysNil(t *testing.T) {
	form := validForm()
	form.PreviousSchool = "   "

	req, err := form.ToRegisterRequest(nil)
	require.NoError(t, err)
	require.Nil(t, req.Student.PreviousSchool)
}

func TestRegisterRequestValidate_MissingInstitution(t *testing.T) {
	form := validForm()
	req, err := form.ToRegisterRequest(nil)
	require.NoError(t, err)
	require.Nil(t, req.Validate())

	req.InstitutionID = ""
	req.Institution = ""
	errs := req.Validate()
	require.Contains(t, errs, "Institution")
}

func TestParseBirthDate(t *testing.T) {
	form := validForm()
	req, err := form.ToRegisterRequest(nil)
	require.NoError(t, err)

	bd, err := req.ParseBirthDate()
	require.NoError(t, err)
	require.Equal(t, 2012, bd.Year())
	require.Equal(t, 15, bd.Day())
}
