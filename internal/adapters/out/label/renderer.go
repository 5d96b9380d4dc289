// Package label renders scannable label images for parcels: a Code128
// barcode of the parcel id for handheld scanners and a QR code of the
// public tracking URL for customers.
package label

import (
	"bytes"
	"image/png"

	"parceltrack/internal/pkg/errs"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
)

const (
	barcodeWidth  = 400
	barcodeHeight = 120
	qrSize        = 256
)

// PNGRenderer renders labels as PNG images.
type PNGRenderer struct{}

// NewPNGRenderer creates a label renderer.
func NewPNGRenderer() PNGRenderer {
	return PNGRenderer{}
}

// RenderBarcode renders text as a Code128 barcode PNG.
func (PNGRenderer) RenderBarcode(text string) ([]byte, error) {
	if text == "" {
		return nil, errs.NewValueIsRequiredError("text")
	}

	code, err := code128.Encode(text)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("text", err)
	}

	scaled, err := barcode.Scale(code, barcodeWidth, barcodeHeight)
	if err != nil {
		return nil, err
	}

	return encodePNG(scaled)
}

// RenderQR renders a URL as a QR code PNG.
func (PNGRenderer) RenderQR(url string) ([]byte, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}

	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("url", err)
	}

	scaled, err := barcode.Scale(code, qrSize, qrSize)
	if err != nil {
		return nil, err
	}

	return encodePNG(scaled)
}

func encodePNG(img barcode.Barcode) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
