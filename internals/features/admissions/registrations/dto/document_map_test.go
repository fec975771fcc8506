package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"baetelanshar_backend/internals/constants"
)

func TestNormalizeDocuments_ArrayShape(t *testing.T) {
	raw := []byte(`[
		{"name": "photo", "path": "budi_mail_com/photo.jpg"},
		{"category": "kk", "path": "budi_mail_com/kk.pdf", "type": "application/pdf"}
	]`)

	items, err := NormalizeDocuments(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// urutan mengikuti urutan kategori form, bukan urutan array
	require.Equal(t, constants.DocKK, items[0].Category)
	require.Equal(t, "Kartu Keluarga", items[0].Label)
	require.Equal(t, "application/pdf", items[0].Type)
	require.Equal(t, constants.DocPhoto, items[1].Category)
	require.Equal(t, "image/jpeg", items[1].Type) // dari ekstensi
}

func TestNormalizeDocuments_StringMapShape(t *testing.T) {
	raw := []byte(`{"ktp": "budi_mail_com/ktp.png", "ijazah": "budi_mail_com/ijazah.pdf"}`)

	items, err := NormalizeDocuments(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, constants.DocKTP, items[0].Category)
	require.Equal(t, "image/png", items[0].Type)
	require.Equal(t, constants.DocIjazah, items[1].Category)
}

func TestNormalizeDocuments_CanonicalShape(t *testing.T) {
	raw := []byte(`{
		"bukti_transfer": {"path": "budi_mail_com/bukti_transfer.jpg", "type": "image/jpeg"},
		"kk": {"path": "budi_mail_com/kk.pdf", "type": "application/pdf"}
	}`)

	items, err := NormalizeDocuments(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, constants.DocKK, items[0].Category)
	require.Equal(t, constants.DocBuktiTransfer, items[1].Category)
}

func TestNormalizeDocuments_UnknownCategoryKept(t *testing.T) {
	raw := []byte(`{"kk": "a/kk.pdf", "surat_sehat": "a/surat.pdf"}`)

	items, err := NormalizeDocuments(raw)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// kategori tak dikenal tidak dibuang diam-diam, ikut di belakang
	require.Equal(t, "surat_sehat", items[1].Category)
	require.Equal(t, "surat_sehat", items[1].Label)
}

func TestNormalizeDocuments_EmptyAndNull(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null")} {
		items, err := NormalizeDocuments(raw)
		require.NoError(t, err)
		require.Empty(t, items)
	}
}

func TestNormalizeDocuments_Invalid(t *testing.T) {
	_, err := NormalizeDocuments([]byte(`[{"broken"`))
	require.Error(t, err)
}

func TestToDocumentMap_CanonicalizesLegacyShape(t *testing.T) {
	raw := []byte(`{"kk": "budi_mail_com/kk.pdf"}`)

	m, err := ToDocumentMap(raw)
	require.NoError(t, err)
	require.Len(t, m, 1)
	require.Equal(t, "budi_mail_com/kk.pdf", m[constants.DocKK].Path)
	require.Equal(t, "application/pdf", m[constants.DocKK].Type)

	// hasil kanonik harus bisa dibaca ulang tanpa kehilangan informasi
	js, err := m.ToJSON()
	require.NoError(t, err)
	again, err := ToDocumentMap(js)
	require.NoError(t, err)
	require.Equal(t, m, again)
}
