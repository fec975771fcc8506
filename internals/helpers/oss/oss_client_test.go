package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeEmailFolder(t *testing.T) {
	cases := map[string]string{
		"budi@mail.com":        "budi_mail_com",
		"ani.wati+1@gmail.com": "ani_wati_1_gmail_com",
		"UPPER@Case.ID":        "UPPER_Case_ID",
		"a--b__c":              "a_b_c",
	}
	for in, want := range cases {
		require.Equal(t, want, SanitizeEmailFolder(in), "input %q", in)
	}
}

func TestDocumentObjectKey(t *testing.T) {
	key := DocumentObjectKey("budi@mail.com", "kk", "Kartu Keluarga.PDF")
	require.Equal(t, "budi_mail_com/kk.pdf", key)

	// tanpa ekstensi: key tetap deterministik per (email, kategori)
	key = DocumentObjectKey("budi@mail.com", "photo", "foto")
	require.Equal(t, "budi_mail_com/photo", key)
}

func TestDocumentObjectKey_SameEmailSameCategoryOverwrites(t *testing.T) {
	a := DocumentObjectKey("budi@mail.com", "ijazah", "lama.pdf")
	b := DocumentObjectKey("budi@mail.com", "ijazah", "baru.pdf")
	require.Equal(t, a, b)
}

func TestNilServiceIsSafe(t *testing.T) {
	var s *Service
	require.Error(t, s.UploadStream(nil, "k", nil, ""))
	_, err := s.SignedURL("k", 60)
	require.Error(t, err)
	require.NoError(t, s.DeleteObjects(nil, []string{"k"}))
}
