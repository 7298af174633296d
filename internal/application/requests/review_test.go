package requests_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/application/requests"
	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
	"github.com/nexahost/portal-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type memRequestRepo struct {
	seq  int64
	rows map[int64]*entity.ServiceRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{rows: make(map[int64]*entity.ServiceRequest)}
}

func (m *memRequestRepo) Create(r *entity.ServiceRequest) error {
	m.seq++
	r.ID = m.seq
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRequestRepo) GetByID(id int64) (*entity.ServiceRequest, error) {
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memRequestRepo) GetByIDForUpdate(id int64) (*entity.ServiceRequest, error) {
	return m.GetByID(id)
}

func (m *memRequestRepo) Update(r *entity.ServiceRequest) error {
	if _, ok := m.rows[r.ID]; !ok {
		return fmt.Errorf("request %d not persisted", r.ID)
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRequestRepo) List(status string, limit, offset int) ([]*entity.ServiceRequest, error) {
	var out []*entity.ServiceRequest
	for _, r := range m.rows {
		if status == "" || r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memUserRepo struct {
	seq     int64
	rows    map[int64]*entity.User
	byEmail map[string]int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: make(map[int64]*entity.User), byEmail: make(map[string]int64)}
}

func (m *memUserRepo) Create(u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	m.seq++
	u.ID = m.seq
	cp := *u
	m.rows[u.ID] = &cp
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *memUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return m.GetByID(id)
}

func (m *memUserRepo) UpsertByEmail(u *entity.User) (*entity.User, error) {
	if existing, _ := m.GetByEmail(u.Email); existing != nil {
		return existing, nil
	}
	if err := m.Create(u); err != nil {
		return nil, err
	}
	return m.GetByID(u.ID)
}

func (m *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.rows {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memPurchaseRepo struct {
	seq   int64
	rows  map[int64]*entity.Purchase
	txIDs map[string]bool
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{rows: make(map[int64]*entity.Purchase), txIDs: make(map[string]bool)}
}

func (m *memPurchaseRepo) Create(p *entity.Purchase) error {
	if m.txIDs[p.TransactionID] {
		return domain.ErrDuplicate
	}
	m.seq++
	p.ID = m.seq
	cp := *p
	m.rows[p.ID] = &cp
	m.txIDs[p.TransactionID] = true
	return nil
}

func (m *memPurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPurchaseRepo) UpdateInvoicePath(id int64, path string) error {
	p, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("purchase %d not persisted", id)
	}
	p.InvoicePath = path
	return nil
}

func (m *memPurchaseRepo) ListByUser(userID int64, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range m.rows {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range m.rows {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// memTxRunner runs the callback against the shared in-memory repos. It does
// not emulate rollback; the tests only assert on paths where the real runner
// would have committed.
type memTxRunner struct {
	requests  *memRequestRepo
	users     *memUserRepo
	purchases *memPurchaseRepo
}

func (m *memTxRunner) RunApproval(ctx context.Context, fn func(
	repository.ServiceRequestRepository,
	repository.UserRepository,
	repository.PurchaseRepository,
) error) error {
	return fn(m.requests, m.users, m.purchases)
}

type fakeIssuer struct {
	err   error
	calls int
}

func (f *fakeIssuer) IssueInvoice(_ context.Context, p *entity.Purchase, _ *entity.ServiceRequest, _ *entity.User) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("invoice-%d-%d.pdf", p.ID, time.Now().UnixMilli()), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

type reviewFixture struct {
	intake    *requests.IntakeUseCase
	review    *requests.ReviewUseCase
	requests  *memRequestRepo
	users     *memUserRepo
	purchases *memPurchaseRepo
	issuer    *fakeIssuer
}

func newFixture(t *testing.T) *reviewFixture {
	t.Helper()
	reqRepo := newMemRequestRepo()
	userRepo := newMemUserRepo()
	purchRepo := newMemPurchaseRepo()
	issuer := &fakeIssuer{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	tx := &memTxRunner{requests: reqRepo, users: userRepo, purchases: purchRepo}
	return &reviewFixture{
		intake:    requests.NewIntakeUseCase(reqRepo),
		review:    requests.NewReviewUseCase(tx, reqRepo, purchRepo, issuer, log),
		requests:  reqRepo,
		users:     userRepo,
		purchases: purchRepo,
		issuer:    issuer,
	}
}

func (f *reviewFixture) submit(t *testing.T, cycle, plan, email string) int64 {
	t.Helper()
	resp, err := f.intake.Submit(context.Background(), dto.CreateRequestInput{
		FullName:     "Ravi Kumar",
		Email:        email,
		Phone:        "+91 98765 43210",
		CompanyName:  "Kumar Web Solutions",
		TaxID:        "29ABCDE1234F1Z5",
		Address:      "12 MG Road, Bengaluru",
		PlanID:       plan,
		BillingCycle: cycle,
	})
	require.NoError(t, err)
	return resp.ID
}

func amt(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

const reviewerID = int64(7)

// ──────────────────────────────────────────────────────────────────────────────
// Approval
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_MonthlyRequest(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	before := time.Now()
	resp, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{
		Amount:     amt("999.00"),
		AdminNotes: "verified partner",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusApproved, resp.Request.Status)
	assert.Equal(t, "verified partner", resp.Request.AdminNotes)
	require.NotNil(t, resp.Request.ReviewedBy)
	assert.Equal(t, reviewerID, *resp.Request.ReviewedBy)
	require.NotNil(t, resp.Request.PurchaseID)
	assert.Equal(t, resp.Purchase.ID, *resp.Request.PurchaseID)

	p := resp.Purchase
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("999.00")))
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, entity.ServiceTypeServer, p.ServiceType)
	assert.Equal(t, entity.PaymentMethodPartnerRequest, p.PaymentMethod)
	assert.Equal(t, entity.PaymentStatusCompleted, p.PaymentStatus)
	assert.Equal(t, entity.PlanTypeMonthly, p.PlanType)
	assert.Equal(t, "VPS-Basic", p.PlanID)
	assert.Regexp(t, fmt.Sprintf(`^REQ%d-\d+$`, id), p.TransactionID)
	assert.NotEmpty(t, p.InvoicePath)
	assert.Equal(t, 1, f.issuer.calls)

	// Expiry counts 31 days from the approval timestamp, not request creation.
	assert.WithinDuration(t, before.AddDate(0, 0, 31), p.ExpiresAt, 5*time.Second)
}

func TestApprove_YearlyRequest(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleYearly, "DEDI-XL", "ops@bigco.in")

	before := time.Now()
	resp, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("5000")})
	require.NoError(t, err)

	assert.Equal(t, entity.PlanTypeYearly, resp.Purchase.PlanType)
	assert.WithinDuration(t, before.AddDate(0, 0, 365), resp.Purchase.ExpiresAt, 5*time.Second)
}

func TestApprove_QuarterlyRequest(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleQuarterly, "VPS-Pro", "q@host.in")

	before := time.Now()
	resp, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("2500")})
	require.NoError(t, err)

	// Quarterly bills as MONTHLY plan type but expires after 90 days.
	assert.Equal(t, entity.PlanTypeMonthly, resp.Purchase.PlanType)
	assert.WithinDuration(t, before.AddDate(0, 0, 90), resp.Purchase.ExpiresAt, 5*time.Second)
}

func TestApprove_MissingAmount_NoSideEffects(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	for name, in := range map[string]dto.ApproveRequestInput{
		"absent": {},
		"zero":   {Amount: amt("0")},
		"negative": {Amount: amt("-10")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.review.Approve(context.Background(), id, reviewerID, in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	stored, err := f.requests.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, stored.Status, "request must stay PENDING")
	assert.Empty(t, f.purchases.rows, "no billing record may be created")
	assert.Empty(t, f.users.rows, "no account may be created")
	assert.Zero(t, f.issuer.calls)
}

func TestApprove_UnknownRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.review.Approve(context.Background(), 404, reviewerID, dto.ApproveRequestInput{Amount: amt("100")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_Twice_SecondConflicts(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	_, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("999")})
	require.NoError(t, err)

	_, err = f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("999")})
	require.ErrorIs(t, err, domain.ErrConflict)

	assert.Len(t, f.purchases.rows, 1, "exactly one billing record after a double approval")
	assert.Equal(t, 1, f.issuer.calls)
}

func TestApprove_ReusesAccountByEmail(t *testing.T) {
	f := newFixture(t)
	first := f.submit(t, entity.CycleMonthly, "VPS-Basic", "shared@corp.in")
	second := f.submit(t, entity.CycleYearly, "VPS-Pro", "shared@corp.in")

	r1, err := f.review.Approve(context.Background(), first, reviewerID, dto.ApproveRequestInput{Amount: amt("999")})
	require.NoError(t, err)
	r2, err := f.review.Approve(context.Background(), second, reviewerID, dto.ApproveRequestInput{Amount: amt("5000")})
	require.NoError(t, err)

	assert.Equal(t, r1.Purchase.UserID, r2.Purchase.UserID, "both purchases must bill the same account")
	assert.Len(t, f.users.rows, 1, "never a second account for the same email")
}

func TestApprove_TransactionIDsAreUnique(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		id := f.submit(t, entity.CycleMonthly, "VPS-Basic", fmt.Sprintf("p%d@host.in", i))
		resp, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("100")})
		require.NoError(t, err)
		assert.False(t, seen[resp.Purchase.TransactionID], "transaction id repeated")
		seen[resp.Purchase.TransactionID] = true
	}
}

func TestApprove_RenderFailureKeepsCommittedState(t *testing.T) {
	f := newFixture(t)
	f.issuer.err = errors.New("disk full")
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	_, err := f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("999")})
	require.Error(t, err)

	// The DB writes were committed before rendering: the approval stands and
	// the purchase simply has no invoice path yet.
	stored, _ := f.requests.GetByID(id)
	assert.Equal(t, entity.RequestStatusApproved, stored.Status)
	require.Len(t, f.purchases.rows, 1)
	for _, p := range f.purchases.rows {
		assert.Empty(t, p.InvoicePath)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rejection
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_StoresNotesWithoutBilling(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	resp, err := f.review.Reject(context.Background(), id, reviewerID, dto.RejectRequestInput{AdminNotes: "insufficient info"})
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusRejected, resp.Status)
	assert.Equal(t, "insufficient info", resp.AdminNotes)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, reviewerID, *resp.ReviewedBy)
	assert.Nil(t, resp.PurchaseID)
	assert.Empty(t, f.purchases.rows)
	assert.Empty(t, f.users.rows)
}

func TestReject_AlreadyProcessed(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	_, err := f.review.Reject(context.Background(), id, reviewerID, dto.RejectRequestInput{})
	require.NoError(t, err)

	_, err = f.review.Reject(context.Background(), id, reviewerID, dto.RejectRequestInput{AdminNotes: "again"})
	require.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := f.requests.GetByID(id)
	assert.Equal(t, entity.RequestStatusRejected, stored.Status)
	assert.Empty(t, stored.AdminNotes, "a conflicting call must not overwrite notes")
}

func TestReject_ThenApprove_Conflicts(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t, entity.CycleMonthly, "VPS-Basic", "ravi@kumarweb.in")

	_, err := f.review.Reject(context.Background(), id, reviewerID, dto.RejectRequestInput{})
	require.NoError(t, err)

	_, err = f.review.Approve(context.Background(), id, reviewerID, dto.ApproveRequestInput{Amount: amt("999")})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.purchases.rows)
}
