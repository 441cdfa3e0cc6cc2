package web

import (
	"context"
	"fmt"
	"sync"

	"shopify-qr-codes/internal/domain"
	"shopify-qr-codes/internal/domain/model"
	"shopify-qr-codes/internal/domain/ports/adapter"
	"shopify-qr-codes/internal/domain/ports/repository"
)

// --- Mocks for the admin API tests ---

type memQRCodeRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.QRCode
}

var _ repository.QRCodeRepository = (*memQRCodeRepo)(nil)

func newMemQRCodeRepo() *memQRCodeRepo {
	return &memQRCodeRepo{nextID: 1, rows: map[int64]*model.QRCode{}}
}

func (m *memQRCodeRepo) Create(ctx context.Context, qr *model.QRCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	qr.ID = m.nextID
	m.nextID++
	cp := *qr
	m.rows[qr.ID] = &cp
	return nil
}

func (m *memQRCodeRepo) FindByID(ctx context.Context, id int64) (*model.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	qr, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *qr
	return &cp, nil
}

func (m *memQRCodeRepo) ListByShop(ctx context.Context, shop string) ([]*model.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.QRCode{}
	for id := m.nextID - 1; id >= 1; id-- {
		if qr, ok := m.rows[id]; ok && qr.Shop == shop {
			cp := *qr
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memQRCodeRepo) FindFirstByHandle(ctx context.Context, shop, handle string) (*model.QRCode, error) {
	return nil, domain.ErrNotFound
}

func (m *memQRCodeRepo) FindFirstByProductID(ctx context.Context, shop, productID string) (*model.QRCode, error) {
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

type memDiscountRepo struct {
	mu   sync.Mutex
	rows []*model.ProductDiscount
}

var _ repository.DiscountRepository = (*memDiscountRepo)(nil)

func newMemDiscountRepo() *memDiscountRepo { return &memDiscountRepo{} }

func (m *memDiscountRepo) Save(ctx context.Context, d *model.ProductDiscount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memDiscountRepo) FindByID(ctx context.Context, id string) (*model.ProductDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memDiscountRepo) ListByShop(ctx context.Context, shop string) ([]*model.ProductDiscount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.ProductDiscount{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Shop == shop {
			cp := *m.rows[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubProducts struct{}

var _ adapter.ProductDataAdapter = stubProducts{}

func (stubProducts) FetchProduct(ctx context.Context, shop, productID, variantID string) (*adapter.ProductData, error) {
	title := "Stub product"
	return &adapter.ProductData{Title: &title}, nil
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
