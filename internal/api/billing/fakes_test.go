package billing

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/app/http/validation"
	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/subscription"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
	"nutrition-app/internal/infra/jwtauth"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		panic(err)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUsers struct {
	mu      sync.Mutex
	users   map[string]*users.User
	writes  int
	failErr error
	findErr error
}

func newFakeUsers(tiers map[string]string) *fakeUsers {
	f := &fakeUsers{users: map[string]*users.User{}}
	for id, tier := range tiers {
		f.users[id] = &users.User{ID: id, Name: "User " + id, Email: id + "@example.com", SubscriptionStatus: tier}
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*users.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdateSubscriptionStatus(_ context.Context, id, tier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	u, ok := f.users[id]
	if !ok {
		return users.ErrNotFound
	}
	f.writes++
	u.SubscriptionStatus = tier
	return nil
}

func (f *fakeUsers) tier(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].SubscriptionStatus
}

type fakeGateway struct {
	configured bool
	charge     *abacatepay.Charge
	err        error
	checks     int
	created    []abacatepay.CreateChargeParams
}

func (g *fakeGateway) Configured() bool { return g.configured }

func (g *fakeGateway) CheckPixCharge(_ context.Context, id string) (*abacatepay.Charge, error) {
	g.checks++
	if g.err != nil {
		return nil, g.err
	}
	cp := *g.charge
	cp.ID = id
	return &cp, nil
}

func (g *fakeGateway) CreatePixCharge(_ context.Context, params abacatepay.CreateChargeParams) (*abacatepay.Charge, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, params)
	return &abacatepay.Charge{
		ID:           "pix_char_new",
		Amount:       params.Amount,
		Status:       abacatepay.StatusPending,
		BrCode:       "000201...",
		BrCodeBase64: "data:image/png;base64,AAAA",
		ExpiresAt:    "2025-01-01T01:00:00Z",
		Metadata:     &params.Metadata,
	}, nil
}

type fakeCache struct {
	entries map[string]string
	sets    int
}

func (c *fakeCache) Get(_ context.Context, id string) (string, bool, error) {
	v, ok := c.entries[id]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, id, status string) error {
	if c.entries == nil {
		c.entries = map[string]string{}
	}
	c.sets++
	c.entries[id] = status
	return nil
}

type fakePayments struct {
	byCharge  map[string]*billing.Payment
	createErr error
}

func newFakePayments(ps ...billing.Payment) *fakePayments {
	f := &fakePayments{byCharge: map[string]*billing.Payment{}}
	for i := range ps {
		p := ps[i]
		f.byCharge[p.ChargeID] = &p
	}
	return f
}

func (f *fakePayments) CreatePayment(_ context.Context, p *billing.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *p
	f.byCharge[p.ChargeID] = &cp
	return nil
}

func (f *fakePayments) FindPaymentByChargeID(_ context.Context, id string) (*billing.Payment, error) {
	p, ok := f.byCharge[id]
	if !ok {
		return nil, billing.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayments) MarkPaymentPaid(_ context.Context, id string, at time.Time) error {
	p, ok := f.byCharge[id]
	if !ok {
		return billing.ErrPaymentNotFound
	}
	p.Status = billing.PaymentPaid
	p.PaidAt = &at
	return nil
}

func (f *fakePayments) ListPaymentsByUser(_ context.Context, userID string) ([]billing.Payment, error) {
	var out []billing.Payment
	for _, p := range f.byCharge {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fixture struct {
	users    *fakeUsers
	gateway  *fakeGateway
	cache    *fakeCache
	payments *fakePayments
	engine   *gin.Engine
}

func newFixture(tiers map[string]string) *fixture {
	f := &fixture{
		users:    newFakeUsers(tiers),
		gateway:  &fakeGateway{configured: true, charge: &abacatepay.Charge{Status: abacatepay.StatusPending}},
		payments: newFakePayments(),
	}
	return f
}

// build wires the handler the way routes do. Call after adjusting fakes.
func (f *fixture) build() *gin.Engine {
	opts := Options{
		Gateway:       f.gateway,
		Subscriptions: subscription.NewUpdater(f.users, testLogger()),
		Payments:      f.payments,
		Users:         f.users,
		Logger:        testLogger(),
	}
	if f.cache != nil {
		opts.Cache = f.cache
	}
	h := NewHandler(opts)

	r := gin.New()
	r.GET("/billing/status/:id", h.CheckStatus)
	r.GET("/billing/plans", ListPlans)
	authed := r.Group("/billing", middleware.AuthMiddleware(testSecret, testLogger()))
	authed.POST("/cancel", h.CancelSubscription)
	authed.POST("/checkout", h.CreateCheckout)
	authed.GET("/payments", h.GetPaymentHistory)
	f.engine = r
	return r
}

func (f *fixture) do(t *testing.T, method, path, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		tok, err := jwtauth.Issue(testSecret, userID, userID+"@example.com", users.RoleUser, time.Hour, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
