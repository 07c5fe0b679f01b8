package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tailoringStorefront/internal/apperr"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/internal/testutil"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

type fakeGateway struct {
	sessions map[string]*Session
	err      error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*Session, error) {
	return &Session{ID: "cs_" + req.OrderID, URL: "https://pay.example/" + req.OrderID, OrderID: req.OrderID}, nil
}

func (g *fakeGateway) GetSession(_ context.Context, id string) (*Session, error) {
	if g.err != nil {
		return nil, g.err
	}
	s, ok := g.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}

type countingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *countingNotifier) OrderConfirmed(o *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, o.ID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e realtime.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func newPendingOnlineOrder(t *testing.T, repo *repository.OrderRepository) *models.Order {
	t.Helper()
	o, err := repo.Create(context.Background(), &models.Order{
		CustomerName:  "Anu",
		Email:         "anu@example.com",
		DesignTitle:   "Silk Saree Blouse",
		Amount:        decimal.NewFromInt(2000),
		PaymentStatus: models.PaymentStatusPendingPayment,
		PaymentMethod: models.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func TestVerify_IdempotentAcrossRepeats(t *testing.T) {
	repo := repository.NewOrderRepository(testutil.OpenTestDB(t))
	o := newPendingOnlineOrder(t, repo)
	gw := &fakeGateway{sessions: map[string]*Session{"cs_1": {ID: "cs_1", Paid: true, OrderID: o.ID}}}
	n := &countingNotifier{}
	pub := &recordingPublisher{}
	v := NewVerifier(gw, repo, n, pub, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, err := v.Verify(context.Background(), "cs_1")
		if err != nil {
			t.Fatalf("verify #%d: %v", i, err)
		}
		if got.PaymentStatus != models.PaymentStatusPaid || got.Status != models.OrderStatusConfirmed {
			t.Fatalf("verify #%d: order = %s/%s", i, got.PaymentStatus, got.Status)
		}
	}
	if len(n.ids) != 1 {
		t.Fatalf("notifications = %d, want 1", len(n.ids))
	}
	if len(pub.events) != 1 || pub.events[0].OrderID != o.ID {
		t.Fatalf("events = %+v", pub.events)
	}
	stored, _ := repo.GetByID(context.Background(), o.ID)
	if stored.PaymentSessionID != "cs_1" {
		t.Fatalf("session id = %q", stored.PaymentSessionID)
	}
}

func TestVerify_ConcurrentCallsNotifyOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	// shared-cache memory databases report table locks instead of waiting
	db.SetMaxOpenConns(1)
	repo := repository.NewOrderRepository(db)
	o := newPendingOnlineOrder(t, repo)
	gw := &fakeGateway{sessions: map[string]*Session{"cs_2": {ID: "cs_2", Paid: true, OrderID: o.ID}}}
	n := &countingNotifier{}
	v := NewVerifier(gw, repo, n, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := v.Verify(context.Background(), "cs_2"); err != nil {
				t.Errorf("verify: %v", err)
			}
		}()
	}
	wg.Wait()
	if len(n.ids) != 1 {
		t.Fatalf("notifications = %d, want 1", len(n.ids))
	}
}

func TestVerify_Errors(t *testing.T) {
	repo := repository.NewOrderRepository(testutil.OpenTestDB(t))
	o := newPendingOnlineOrder(t, repo)
	gw := &fakeGateway{sessions: map[string]*Session{
		"unpaid": {ID: "unpaid", Paid: false, OrderID: o.ID},
		"no-ref": {ID: "no-ref", Paid: true},
		"ghost":  {ID: "ghost", Paid: true, OrderID: "00000000-0000-0000-0000-000000000000"},
	}}
	v := NewVerifier(gw, repo, &countingNotifier{}, nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		session string
		kind    apperr.Kind
	}{
		{"", apperr.KindValidation},
		{"unpaid", apperr.KindPaymentIncomplete},
		{"no-ref", apperr.KindMissingOrderReference},
		{"ghost", apperr.KindNotFound},
	}
	for _, tc := range cases {
		_, err := v.Verify(ctx, tc.session)
		if apperr.KindOf(err) != tc.kind {
			t.Fatalf("session %q: err = %v, want kind %d", tc.session, err, tc.kind)
		}
	}

	gw.err = errors.New("connection reset")
	_, err := v.Verify(ctx, "unpaid")
	if apperr.KindOf(err) != apperr.KindRemoteService {
		t.Fatalf("gateway failure: err = %v", err)
	}
	if apperr.Message(err) != "service temporarily unavailable" {
		t.Fatalf("gateway failure leaks detail: %q", apperr.Message(err))
	}

	stored, _ := repo.GetByID(ctx, o.ID)
	if stored.PaymentStatus != models.PaymentStatusPendingPayment {
		t.Fatalf("failed verifications changed payment status to %s", stored.PaymentStatus)
	}
}

func TestMinorUnits(t *testing.T) {
	if got := MinorUnits(decimal.RequireFromString("2000")); got != 200000 {
		t.Fatalf("MinorUnits(2000) = %d", got)
	}
	if got := MinorUnits(decimal.RequireFromString("12.345")); got != 1235 {
		t.Fatalf("MinorUnits(12.345) = %d", got)
	}
}
