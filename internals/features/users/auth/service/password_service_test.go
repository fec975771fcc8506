package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePassword_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		require.Len(t, pw, GeneratedPasswordLength)
		for _, r := range pw {
			require.True(t, strings.ContainsRune(passwordChars, r),
				"karakter %q di luar alfabet", r)
		}
	}
}

func TestGeneratePassword_SkipsAmbiguousChars(t *testing.T) {
	// I, O, l, 0, 1 sengaja tidak ada supaya kredensial mudah disalin
	for _, banned := range []string{"I", "O", "l", "0", "1", "i", "o"} {
		require.NotContains(t, passwordChars, banned)
	}
}

func TestGeneratePassword_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword()
		require.NoError(t, err)
		seen[pw] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestHashAndCheckPassword(t *testing.T) {
	pw, err := GeneratePassword()
	require.NoError(t, err)

	hashed, err := HashPassword(pw)
	require.NoError(t, err)
	require.NotEqual(t, pw, hashed)

	require.NoError(t, CheckPasswordHash(hashed, pw))
	require.Error(t, CheckPasswordHash(hashed, "salah-password"))
}
