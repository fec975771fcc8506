package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"baetelanshar_backend/internals/constants"

	"baetelanshar_backend/internals/features/admissions/registrations/dto"
)

func completeForm() dto.RegistrationForm {
	return dto.RegistrationForm{
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

// Gerbang submit harus menolak sebelum ada efek samping apa pun:
// orchestrator tanpa DB dan tanpa OSS tidak boleh sampai menyentuh keduanya.

func TestSubmit_MissingDocumentsBlocksBeforeSideEffects(t *testing.T) {
	staging := NewStagingStore(time.Hour)
	orch := NewOrchestrator(staging, nil, NewProvisioner(nil, nil))

	draft := staging.CreateDraft()
	_, err := staging.SaveForm(draft.ID, completeForm(), 4)
	require.NoError(t, err)

	resp, fieldErrs, err := orch.Submit(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.Contains(t, fieldErrs, "documents")
	require.Len(t, fieldErrs["documents"], len(constants.DocumentCategories))

	// draft tetap hidup untuk dicoba lagi
	_, err = staging.Get(draft.ID)
	require.NoError(t, err)
}

func TestSubmit_InvalidFormBlocksBeforeSideEffects(t *testing.T) {
	staging := NewStagingStore(time.Hour)
	orch := NewOrchestrator(staging, nil, NewProvisioner(nil, nil))

	form := completeForm()
	form.ParentEmail = "bukan-email"
	draft := staging.CreateDraft()
	_, err := staging.SaveForm(draft.ID, form, 4)
	require.NoError(t, err)
	for _, cat := range constants.DocumentCategories {
		_, err := staging.Stage(draft.ID, cat, cat+".pdf", "application/pdf", []byte("isi"))
		require.NoError(t, err)
	}

	resp, fieldErrs, err := orch.Submit(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.Contains(t, fieldErrs, "ParentEmail")
}

func TestSubmit_UnknownDraft(t *testing.T) {
	staging := NewStagingStore(time.Hour)
	orch := NewOrchestrator(staging, nil, NewProvisioner(nil, nil))

	draft := staging.CreateDraft()
	staging.Drop(draft.ID)

	_, _, err := orch.Submit(context.Background(), draft.ID)
	require.ErrorIs(t, err, ErrDraftNotFound)
}
