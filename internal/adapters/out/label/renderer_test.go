package label_test

import (
	"bytes"
	"image/png"
	"testing"

	"parceltrack/internal/adapters/out/label"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRenderer_RenderBarcode(t *testing.T) {
	renderer := label.NewPNGRenderer()

	data, err := renderer.RenderBarcode(kernel.NewUUID().String())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestPNGRenderer_RenderQR(t *testing.T) {
	renderer := label.NewPNGRenderer()

	data, err := renderer.RenderQR("https://tracking.example.com/api/package/tracking/TRK-123456")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestPNGRenderer_EmptyInput(t *testing.T) {
	renderer := label.NewPNGRenderer()

	_, err := renderer.RenderBarcode("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = renderer.RenderQR("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
