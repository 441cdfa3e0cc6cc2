package http

import (
	"context"
	"fmt"
	"sync"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/domain/ports/repository"
)

// --- Mocks for the public server tests ---

type memQRCodeRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.QRCode
	// finds counts FindByID calls so tests can assert the store was not
	// touched for malformed requests.
	finds int
}

var _ repository.QRCodeRepository = (*memQRCodeRepo)(nil)

func newMemQRCodeRepo() *memQRCodeRepo {
	return &memQRCodeRepo{nextID: 1, rows: map[int64]*model.QRCode{}}
}

func (m *memQRCodeRepo) add(qr *model.QRCode) *model.QRCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	if qr.ID == 0 {
		qr.ID = m.nextID
	}
	if qr.ID >= m.nextID {
		m.nextID = qr.ID + 1
	}
	m.rows[qr.ID] = qr
	return qr
}

func (m *memQRCodeRepo) Create(ctx context.Context, qr *model.QRCode) error {
	m.add(qr)
	return nil
}

func (m *memQRCodeRepo) FindByID(ctx context.Context, id int64) (*model.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	qr, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *qr
	return &cp, nil
}

func (m *memQRCodeRepo) ListByShop(ctx context.Context, shop string) ([]*model.QRCode, error) {
	return nil, nil
}

func (m *memQRCodeRepo) FindFirstByHandle(ctx context.Context, shop, handle string) (*model.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := m.nextID - 1; id >= 1; id-- {
		if qr, ok := m.rows[id]; ok && qr.Shop == shop && qr.Handle == handle {
			cp := *qr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memQRCodeRepo) FindFirstByProductID(ctx context.Context, shop, productID string) (*model.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := m.nextID - 1; id >= 1; id-- {
		if qr, ok := m.rows[id]; ok && qr.Shop == shop && qr.ProductID == productID {
			cp := *qr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memQRCodeRepo) IncrementScans(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	qr, ok := m.rows[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	qr.Scans++
	return qr.Scans, nil
}

func (m *memQRCodeRepo) findCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds
}

func (m *memQRCodeRepo) scans(id int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if qr, ok := m.rows[id]; ok {
		return qr.Scans
	}
	return -1
}

type noProducts struct{}

var _ adapter.ProductDataAdapter = noProducts{}

func (noProducts) FetchProduct(ctx context.Context, shop, productID, variantID string) (*adapter.ProductData, error) {
	return nil, nil
}

type stubImager struct{}

var _ adapter.QRImageAdapter = stubImager{}

func (stubImager) ScanURL(id int64) string {
	return fmt.Sprintf("https://app.example.com/qrcodes/%d/scan", id)
}
func (stubImager) PNG(id int64) ([]byte, error) { return []byte{0x89, 'P', 'N', 'G'}, nil }
func (stubImager) DataURL(id int64) (string, error) {
	return "data:image/png;base64,iVBORw==", nil
}
