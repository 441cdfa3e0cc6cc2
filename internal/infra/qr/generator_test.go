package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"shopify-qr-codes/internal/domain"
)

func TestNewGenerator_RequiresAppURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"", "   "} {
		if _, err := NewGenerator(u); !errors.Is(err, domain.ErrAppURLNotSet) {
			t.Errorf("url %q: expected ErrAppURLNotSet, got %v", u, err)
		}
	}
}

func TestGenerator_ScanURL(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator("https://app.example.com/")
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}
	got := g.ScanURL(7)
	want := "https://app.example.com/qrcodes/7/scan"
	if got != want {
		t.Fatalf("expected %q got %q", want, got)
	}
}

func TestGenerator_PNGAndDataURL(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator("https://app.example.com")
	if err != nil {
		t.Fatalf("NewGenerator returned error: %v", err)
	}

	png, err := g.PNG(42)
	if err != nil {
		t.Fatalf("PNG returned error: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected png bytes")
	}
	// PNG magic bytes
	if !bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("expected a PNG header")
	}

	dataURL, err := g.DataURL(42)
	if err != nil {
		t.Fatalf("DataURL returned error: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		t.Fatalf("expected data url prefix, got %q", dataURL[:32])
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil {
		t.Fatalf("data url payload is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, png) {
		t.Fatal("data url payload must decode to the same PNG bytes")
	}
}
