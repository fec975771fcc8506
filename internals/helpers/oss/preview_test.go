package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMakeImagePreview_ProducesWebP(t *testing.T) {
	preview, err := MakeImagePreview(pngFixture(t, 64, 64), "foto.png")
	require.NoError(t, err)
	require.NotEmpty(t, preview)

	// kontainer WebP: RIFF....WEBP
	require.True(t, bytes.HasPrefix(preview, []byte("RIFF")))
	require.Equal(t, []byte("WEBP"), preview[8:12])
}

func TestMakeImagePreview_DownscalesLargeImage(t *testing.T) {
	big := pngFixture(t, 1200, 800)
	preview, err := MakeImagePreview(big, "foto.png")
	require.NoError(t, err)
	require.Less(t, len(preview), len(big))
}

func TestMakeImagePreview_RejectsGarbage(t *testing.T) {
	_, err := MakeImagePreview([]byte("bukan gambar"), "dokumen.pdf")
	require.Error(t, err)
}
