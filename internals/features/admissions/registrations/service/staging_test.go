package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"baetelanshar_backend/internals/constants"
)

func newTestStore() *StagingStore {
	return NewStagingStore(time.Hour)
}

func pdfBytes(n int) []byte {
	return bytes.Repeat([]byte("x"), n)
}

func TestStagingStore_DraftLifecycle(t *testing.T) {
	store := newTestStore()

	draft := store.CreateDraft()
	require.NotEqual(t, uuid.Nil, draft.ID)
	require.Equal(t, 1, draft.Step)
	require.Len(t, draft.MissingCategories(), len(constants.DocumentCategories))

	got, err := store.Get(draft.ID)
	require.NoError(t, err)
	require.Equal(t, draft.ID, got.ID)

	store.Drop(draft.ID)
	_, err = store.Get(draft.ID)
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestStagingStore_GetUnknownDraft(t *testing.T) {
	store := newTestStore()
	_, err := store.Get(uuid.New())
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestStage_AcceptsPDFAndImage(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	updated, err := store.Stage(draft.ID, constants.DocKK, "kk.pdf", "application/pdf", pdfBytes(100))
	require.NoError(t, err)
	require.Contains(t, updated.Documents, constants.DocKK)
	require.Nil(t, updated.Documents[constants.DocKK].Preview) // PDF tanpa preview

	updated, err = store.Stage(draft.ID, constants.DocPhoto, "foto.jpg", "image/jpeg", pdfBytes(100))
	require.NoError(t, err)
	require.Contains(t, updated.Documents, constants.DocPhoto)
	require.Len(t, updated.MissingCategories(), 3)
}

func TestStage_RejectsUnknownCategory(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	_, err := store.Stage(draft.ID, "surat_sehat", "s.pdf", "application/pdf", pdfBytes(10))
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestStage_RejectsWrongType(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	_, err := store.Stage(draft.ID, constants.DocKK, "kk.exe", "application/x-msdownload", pdfBytes(10))
	require.ErrorIs(t, err, ErrInvalidFileType)
}

func TestStage_RejectsOversizeWithoutTouchingPrior(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	_, err := store.Stage(draft.ID, constants.DocKK, "kk.pdf", "application/pdf", pdfBytes(100))
	require.NoError(t, err)

	_, err = store.Stage(draft.ID, constants.DocKK, "besar.pdf", "application/pdf", pdfBytes(MaxDocumentSize+1))
	require.ErrorIs(t, err, ErrFileTooLarge)

	// dokumen lama harus masih utuh
	got, err := store.Get(draft.ID)
	require.NoError(t, err)
	require.Equal(t, "kk.pdf", got.Documents[constants.DocKK].Filename)
}

func TestStage_ReplaceSameCategory(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	_, err := store.Stage(draft.ID, constants.DocIjazah, "lama.pdf", "application/pdf", pdfBytes(10))
	require.NoError(t, err)
	updated, err := store.Stage(draft.ID, constants.DocIjazah, "baru.pdf", "application/pdf", pdfBytes(20))
	require.NoError(t, err)

	require.Equal(t, "baru.pdf", updated.Documents[constants.DocIjazah].Filename)
	require.EqualValues(t, 20, updated.Documents[constants.DocIjazah].Size)
}

func TestRemove_FreesSlot(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	_, err := store.Stage(draft.ID, constants.DocKTP, "ktp.pdf", "application/pdf", pdfBytes(10))
	require.NoError(t, err)

	updated, err := store.Remove(draft.ID, constants.DocKTP)
	require.NoError(t, err)
	require.NotContains(t, updated.Documents, constants.DocKTP)
	require.Contains(t, updated.MissingCategories(), constants.DocKTP)
}

func TestEviction_DropsExpiredDrafts(t *testing.T) {
	store := NewStagingStore(time.Minute)
	stale := store.CreateDraft()
	fresh := store.CreateDraft()

	store.mu.Lock()
	store.drafts[stale.ID].UpdatedAt = time.Now().Add(-time.Hour)
	store.mu.Unlock()

	require.Equal(t, 1, store.evictExpired())

	_, err := store.Get(stale.ID)
	require.ErrorIs(t, err, ErrDraftNotFound)
	_, err = store.Get(fresh.ID)
	require.NoError(t, err)
}

func TestSaveForm_KeepsFurthestStep(t *testing.T) {
	store := newTestStore()
	draft := store.CreateDraft()

	updated, err := store.SaveForm(draft.ID, draft.Form, 3)
	require.NoError(t, err)
	require.Equal(t, 3, updated.Step)

	// kembali ke langkah awal tidak menurunkan progress
	updated, err = store.SaveForm(draft.ID, draft.Form, 1)
	require.NoError(t, err)
	require.Equal(t, 3, updated.Step)
}
