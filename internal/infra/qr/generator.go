package qr

import (
	"encoding/base64"
	"fmt"
	"strings"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/infra/metrics"

	qrcode "github.com/skip2/go-qrcode"
)

// pngSize is the edge length in pixels of generated images. Large enough to
// survive print-and-rescan on a physical label.
const pngSize = 512

var _ adapter.QRImageAdapter = (*Generator)(nil)

// Generator encodes canonical scan URLs as QR PNGs. It is a pure function of
// the record id and the configured public app URL.
type Generator struct {
	baseURL string
}

// NewGenerator fails when the public app URL is not configured: an image
// generated without it would encode a dead link, so this is fatal rather
// than recoverable per-request.
func NewGenerator(appURL string) (*Generator, error) {
	appURL = strings.TrimRight(strings.TrimSpace(appURL), "/")
	if appURL == "" {
		return nil, domain.ErrAppURLNotSet
	}
	return &Generator{baseURL: appURL}, nil
}

func (g *Generator) ScanURL(id int64) string {
	return fmt.Sprintf("%s/qrcodes/%d/scan", g.baseURL, id)
}

func (g *Generator) PNG(id int64) ([]byte, error) {
	b, err := qrcode.Encode(g.ScanURL(id), qrcode.Medium, pngSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr for id %d: %w", id, err)
	}
	metrics.IncQRImage("png")
	return b, nil
}

func (g *Generator) DataURL(id int64) (string, error) {
	b, err := g.PNG(id)
	if err != nil {
		return "", err
	}
	metrics.IncQRImage("data_url")
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}
