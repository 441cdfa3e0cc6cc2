package adapter

// QRImageAdapter generates QR images for the canonical scan URL of a record.
// Implementations are pure functions of the record id and a configured public
// base URL; construction fails when that URL is absent.
type QRImageAdapter interface {
	// ScanURL returns the canonical public URL a generated QR code encodes.
	ScanURL(id int64) string
	// PNG returns the raw image bytes for a binary image response.
	PNG(id int64) ([]byte, error)
	// DataURL returns the image as a base64 data URL suitable for direct
	// embedding in an <img src=...> attribute.
	DataURL(id int64) (string, error)
}
