package extract

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-importer/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func TestIsAllowedFile(t *testing.T) {
	assert.True(t, IsAllowedFile("recipe.txt"))
	assert.True(t, IsAllowedFile("recipe.PDF"))
	assert.True(t, IsAllowedFile("photo.jpg"))
	assert.True(t, IsAllowedFile("photo.JPEG"))
	assert.True(t, IsAllowedFile("photo.png"))

	assert.False(t, IsAllowedFile("recipe.docx"))
	assert.False(t, IsAllowedFile("archive.zip"))
	assert.False(t, IsAllowedFile("noext"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.jpg"))
	assert.True(t, IsImageFile("photo.jpeg"))
	assert.True(t, IsImageFile("photo.PNG"))
	assert.False(t, IsImageFile("recipe.txt"))
	assert.False(t, IsImageFile("recipe.pdf"))
}

func TestTextFromTxtFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipe.txt")
	require.NoError(t, os.WriteFile(path, []byte("2 cups flour\nMix well."), 0o644))

	text, err := TextFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2 cups flour\nMix well.", text)
}

func TestTextFromFileUnsupported(t *testing.T) {
	_, err := TextFromFile("recipe.docx")
	assert.Error(t, err)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeImageToJPEGDataURL(t *testing.T) {
	svc := NewImageService(10 << 20)

	encoded, err := svc.EncodeImage(pngBytes(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "data:image/jpeg;base64,"))
}

func TestEncodeImageRejectsOversize(t *testing.T) {
	svc := NewImageService(8)
	_, err := svc.EncodeImage(pngBytes(t))
	assert.Error(t, err)
}

func TestEncodeImageRejectsGarbage(t *testing.T) {
	svc := NewImageService(10 << 20)
	_, err := svc.EncodeImage([]byte("definitely not an image"))
	assert.Error(t, err)
}
