package billing_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexahost/portal-api/internal/application/billing"
	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
)

type fakeGenerator struct {
	err  error
	last billing.InvoiceData
}

func (f *fakeGenerator) GenerateInvoicePDF(_ context.Context, data billing.InvoiceData) ([]byte, error) {
	f.last = data
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeStore struct {
	files   map[string][]byte
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string][]byte)}
}

func (f *fakeStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.files[name] = data
	return name, nil
}

func (f *fakeStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := f.files[path]
	return ok, nil
}

func samplePurchase() (*entity.Purchase, *entity.ServiceRequest, *entity.User) {
	now := time.Now()
	purchase := &entity.Purchase{
		ID:            31,
		UserID:        5,
		PlanID:        "VPS-Basic",
		ServiceType:   entity.ServiceTypeServer,
		Amount:        decimal.RequireFromString("999.00"),
		Currency:      "INR",
		PaymentMethod: entity.PaymentMethodPartnerRequest,
		PaymentStatus: entity.PaymentStatusCompleted,
		TransactionID: "REQ12-1756300000000",
		ExpiresAt:     now.AddDate(0, 0, 31),
		PlanType:      entity.PlanTypeMonthly,
		CreatedAt:     now,
	}
	request := &entity.ServiceRequest{
		ID:             12,
		FullName:       "Ravi Kumar",
		Email:          "ravi@kumarweb.in",
		CompanyName:    "Kumar Web Solutions",
		TaxID:          "29ABCDE1234F1Z5",
		Address:        "12 MG Road, Bengaluru",
		PlanID:         "VPS-Basic",
		ServerLocation: "India",
		BillingCycle:   entity.CycleMonthly,
	}
	account := &entity.User{ID: 5, Email: "ravi@kumarweb.in", Name: "Ravi Kumar", Role: entity.RoleUser}
	return purchase, request, account
}

func TestIssueInvoice_ComputesTotalsAndStores(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	svc := billing.NewInvoiceService(gen, store)
	purchase, request, account := samplePurchase()

	path, err := svc.IssueInvoice(context.Background(), purchase, request, account)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^invoice-31-\d+\.pdf$`), path)
	assert.Contains(t, store.files, path)

	assert.Equal(t, "INV-31", gen.last.Number)
	assert.Equal(t, purchase.TransactionID, gen.last.TransactionID)
	assert.True(t, gen.last.Subtotal.Equal(decimal.RequireFromString("999.00")), "subtotal equals the raw amount")
	assert.Equal(t, "179.82", gen.last.Tax.String())
	assert.Equal(t, "1178.82", gen.last.Total.String())
	assert.Equal(t, entity.PaymentStatusCompleted, gen.last.PaymentStatus)
	assert.Equal(t, "Kumar Web Solutions", gen.last.CompanyName)
}

func TestIssueInvoice_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("render blew up")}
	store := newFakeStore()
	svc := billing.NewInvoiceService(gen, store)
	purchase, request, account := samplePurchase()

	_, err := svc.IssueInvoice(context.Background(), purchase, request, account)
	require.Error(t, err)
	assert.Empty(t, store.files, "nothing may be stored when rendering fails")
}

func TestIssueInvoice_StoreFailure(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	store.saveErr = errors.New("disk full")
	svc := billing.NewInvoiceService(gen, store)
	purchase, request, account := samplePurchase()

	_, err := svc.IssueInvoice(context.Background(), purchase, request, account)
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Download
// ──────────────────────────────────────────────────────────────────────────────

type memPurchases struct {
	rows map[int64]*entity.Purchase
}

func (m *memPurchases) Create(p *entity.Purchase) error { m.rows[p.ID] = p; return nil }
func (m *memPurchases) GetByID(id int64) (*entity.Purchase, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (m *memPurchases) UpdateInvoicePath(id int64, path string) error {
	m.rows[id].InvoicePath = path
	return nil
}
func (m *memPurchases) ListByUser(userID int64, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memPurchases) List(limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, nil
}

func TestDownloadInvoice_OwnerGetsFile(t *testing.T) {
	store := newFakeStore()
	store.files["invoice-31-1.pdf"] = []byte("%PDF-fake")
	purchase, _, _ := samplePurchase()
	purchase.InvoicePath = "invoice-31-1.pdf"
	repo := &memPurchases{rows: map[int64]*entity.Purchase{31: purchase}}
	uc := billing.NewDownloadUseCase(repo, store)

	rc, filename, err := uc.DownloadInvoice(context.Background(), purchase.UserID, entity.RoleUser, 31)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "invoice-31.pdf", filename)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "%PDF-fake", string(data))
}

func TestDownloadInvoice_ForeignUserForbidden(t *testing.T) {
	store := newFakeStore()
	purchase, _, _ := samplePurchase()
	purchase.InvoicePath = "invoice-31-1.pdf"
	repo := &memPurchases{rows: map[int64]*entity.Purchase{31: purchase}}
	uc := billing.NewDownloadUseCase(repo, store)

	_, _, err := uc.DownloadInvoice(context.Background(), 999, entity.RoleUser, 31)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admins may download any invoice.
	store.files["invoice-31-1.pdf"] = []byte("x")
	_, _, err = uc.DownloadInvoice(context.Background(), 999, entity.RoleAdmin, 31)
	assert.NoError(t, err)
}

func TestDownloadInvoice_NotYetAvailable(t *testing.T) {
	store := newFakeStore()
	purchase, _, _ := samplePurchase()
	purchase.InvoicePath = "" // approval committed but rendering failed
	repo := &memPurchases{rows: map[int64]*entity.Purchase{31: purchase}}
	uc := billing.NewDownloadUseCase(repo, store)

	_, _, err := uc.DownloadInvoice(context.Background(), purchase.UserID, entity.RoleUser, 31)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// A dangling path (file removed from disk) is the same caller-visible state.
	purchase.InvoicePath = "invoice-31-9.pdf"
	repo.rows[31] = purchase
	_, _, err = uc.DownloadInvoice(context.Background(), purchase.UserID, entity.RoleUser, 31)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadInvoice_UnknownPurchase(t *testing.T) {
	uc := billing.NewDownloadUseCase(&memPurchases{rows: map[int64]*entity.Purchase{}}, newFakeStore())
	_, _, err := uc.DownloadInvoice(context.Background(), 1, entity.RoleAdmin, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
