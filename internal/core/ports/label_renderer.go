package ports

// LabelRenderer renders printable label images for parcels. Pure functions
// from identifier text to image bytes; the core never interprets the bytes.
type LabelRenderer interface {
	// RenderBarcode encodes text as a Code 128 barcode PNG.
	RenderBarcode(text string) ([]byte, error)

	// RenderQR encodes a URL as a QR code PNG.
	RenderQR(url string) ([]byte, error)
}
