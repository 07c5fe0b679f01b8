package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tailoringStorefront/internal/auth"
	"tailoringStorefront/internal/catalog"
	"tailoringStorefront/internal/checkout"
	"tailoringStorefront/internal/payment"
	"tailoringStorefront/internal/realtime"
	"tailoringStorefront/internal/session"
	"tailoringStorefront/internal/testutil"
	"tailoringStorefront/models"
	"tailoringStorefront/repository"
)

const testSecret = "test-secret"

type stubGateway struct {
	mu       sync.Mutex
	requests []payment.CheckoutRequest
	paid     map[string]string // session id -> order id
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return &payment.Session{ID: "cs_test_1", URL: "https://pay.example/cs_test_1", OrderID: req.OrderID}, nil
}

func (g *stubGateway) GetSession(_ context.Context, id string) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	orderID, ok := g.paid[id]
	return &payment.Session{ID: id, Paid: ok, OrderID: orderID}, nil
}

type countingNotifier struct {
	mu     sync.Mutex
	orders []string
}

func (n *countingNotifier) OrderConfirmed(o *models.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, o.ID)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.orders)
}

type testAPI struct {
	router   *gin.Engine
	gateway  *stubGateway
	notifier *countingNotifier
	orders   *repository.OrderRepository
	users    *repository.UserRepository
	drivers  *repository.DriverRepository
	cookies  []*http.Cookie
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	d := testutil.OpenTestDB(t)
	log := zap.NewNop()
	a := &testAPI{
		gateway:  &stubGateway{paid: map[string]string{}},
		notifier: &countingNotifier{},
		orders:   repository.NewOrderRepository(d),
		users:    repository.NewUserRepository(d),
		drivers:  repository.NewDriverRepository(d),
	}
	hub := realtime.NewHub()
	t.Cleanup(func() { _ = hub.Close() })
	a.router = NewRouter(&Handler{
		Catalog:   catalog.NewService(repository.NewDesignRepository(d), log),
		Checkout:  checkout.NewService(a.orders, a.gateway, a.notifier, hub, decimal.NewFromInt(500), log),
		Verifier:  payment.NewVerifier(a.gateway, a.orders, a.notifier, hub, log),
		Orders:    a.orders,
		Reviews:   repository.NewReviewRepository(d),
		Auth:      &auth.Authenticator{Users: a.users, Drivers: a.drivers, Secret: testSecret, TokenTTL: time.Hour},
		Sessions:  session.NewMemoryStore(time.Hour),
		PublicURL: "http://localhost:3000",
		Log:       log,
	})
	return a
}

// do sends a JSON request as the same visitor across calls and decodes the response into out.
func (a *testAPI) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://shop.test")
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			a.cookies = []*http.Cookie{c}
		}
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

type cartBody struct {
	Items []models.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"`
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)
	var body map[string]string
	if code := a.do(t, http.MethodGet, "/health", nil, &body); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health = %d %v", code, body)
	}
}

func TestCatalogRoutes(t *testing.T) {
	a := newTestAPI(t)

	var list struct {
		Designs []models.Design `json:"designs"`
	}
	if code := a.do(t, http.MethodGet, "/api/designs", nil, &list); code != http.StatusOK || len(list.Designs) != 4 {
		t.Fatalf("designs = %d, %d items", code, len(list.Designs))
	}

	var d models.Design
	if code := a.do(t, http.MethodGet, "/api/designs/1", nil, &d); code != http.StatusOK || d.Title != "Saree Blouse" {
		t.Fatalf("design 1 = %d %+v", code, d)
	}
	var e ErrorBody
	if code := a.do(t, http.MethodGet, "/api/designs/99", nil, &e); code != http.StatusNotFound || e.Error != "design not found" {
		t.Fatalf("unknown design = %d %+v", code, e)
	}

	var cz catalog.Customization
	if code := a.do(t, http.MethodGet, "/api/customizations/saree-blouse", nil, &cz); code != http.StatusOK || len(cz.Sections) == 0 {
		t.Fatalf("customizations = %d %+v", code, cz)
	}
	if code := a.do(t, http.MethodGet, "/api/customizations/kurta", nil, nil); code != http.StatusNotFound {
		t.Fatalf("unknown category = %d", code)
	}

	var q struct {
		Extra        string   `json:"extra"`
		Descriptions []string `json:"descriptions"`
	}
	code := a.do(t, http.MethodPost, "/api/customizations/saree-blouse/quote", map[string]any{"selections": map[string]string{"neck": "n3", "knot": "k2"}}, &q)
	if code != http.StatusOK || q.Extra != "200" || len(q.Descriptions) != 2 {
		t.Fatalf("quote = %d %+v", code, q)
	}
	if code := a.do(t, http.MethodPost, "/api/customizations/saree-blouse/quote", map[string]any{"selections": map[string]string{"neck": "zz"}}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad option = %d", code)
	}
}

func TestCart_PerVisitorSession(t *testing.T) {
	a := newTestAPI(t)
	var c cartBody

	a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "1"}, &c)
	a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "1"}, &c)
	if c.Count != 1 {
		t.Fatalf("count after duplicate add = %d", c.Count)
	}
	a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "2"}, &c)
	if c.Count != 2 || c.Total != "4000" {
		t.Fatalf("cart = %+v", c)
	}
	if code := a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "99"}, nil); code != http.StatusNotFound {
		t.Fatalf("unknown design = %d", code)
	}
	if code := a.do(t, http.MethodPost, "/api/cart/items", map[string]string{}, nil); code != http.StatusBadRequest {
		t.Fatalf("missing designId = %d", code)
	}

	a.do(t, http.MethodDelete, "/api/cart/items/1", nil, &c)
	a.do(t, http.MethodDelete, "/api/cart/items/1", nil, &c)
	if c.Count != 1 || c.Items[0].ID != "2" {
		t.Fatalf("cart after remove = %+v", c)
	}

	a.do(t, http.MethodGet, "/api/cart", nil, &c)
	if c.Count != 1 {
		t.Fatalf("reloaded cart = %+v", c)
	}

	stranger := &testAPI{router: a.router}
	stranger.do(t, http.MethodGet, "/api/cart", nil, &c)
	if c.Count != 0 || c.Items == nil {
		t.Fatalf("new visitor cart = %+v", c)
	}

	a.do(t, http.MethodDelete, "/api/cart", nil, &c)
	if c.Count != 0 {
		t.Fatalf("cleared cart = %+v", c)
	}
}

type wizardBody struct {
	Step   int `json:"step"`
	Design *struct {
		DesignTitle string `json:"designTitle"`
		BasePrice   string `json:"basePrice"`
	} `json:"design"`
}

func TestWizard_CODOrderWithMeasurements(t *testing.T) {
	a := newTestAPI(t)
	var w wizardBody

	a.do(t, http.MethodGet, "/api/wizard", nil, &w)
	if w.Step != 1 {
		t.Fatalf("initial step = %d", w.Step)
	}
	if code := a.do(t, http.MethodPut, "/api/wizard/measurements", map[string]any{"measurements": map[string]string{"chest": "36"}}, nil); code != http.StatusConflict {
		t.Fatalf("measurements on step 1 = %d", code)
	}

	code := a.do(t, http.MethodPut, "/api/wizard/design", map[string]any{
		"designId":            "1",
		"customizations":      map[string]string{"neck": "n3"},
		"includeMeasurements": true,
	}, &w)
	if code != http.StatusOK || w.Step != 2 || w.Design == nil || w.Design.BasePrice != "1650" {
		t.Fatalf("choose design = %d %+v", code, w)
	}
	if code := a.do(t, http.MethodPut, "/api/wizard/measurements", map[string]any{"measurements": map[string]string{"neck": "14"}}, nil); code != http.StatusBadRequest {
		t.Fatalf("unknown measurement = %d", code)
	}
	a.do(t, http.MethodPut, "/api/wizard/measurements", map[string]any{"measurements": map[string]string{"chest": "36", "waist": "30"}}, &w)
	if w.Step != 3 {
		t.Fatalf("step after measurements = %d", w.Step)
	}
	a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "1"}, nil)

	var res checkout.Result
	code = a.do(t, http.MethodPost, "/api/wizard/submit", map[string]string{
		"customerName":  "Kavya",
		"email":         "kavya@example.com",
		"phone":         "9840012345",
		"address":       "4 Gandhi Road, Salem",
		"paymentMethod": "cod",
	}, &res)
	if code != http.StatusOK || !res.Success || res.OrderID == "" {
		t.Fatalf("submit = %d %+v", code, res)
	}
	if res.URL != "http://shop.test/track?order_id="+res.OrderID {
		t.Fatalf("tracking url = %s", res.URL)
	}
	if a.notifier.count() != 1 {
		t.Fatalf("confirmations = %d, want 1", a.notifier.count())
	}

	var o models.Order
	if code := a.do(t, http.MethodGet, "/api/orders/"+res.OrderID, nil, &o); code != http.StatusOK {
		t.Fatalf("track = %d", code)
	}
	if !o.Amount.Equal(decimal.NewFromInt(2150)) || o.PaymentStatus != models.PaymentStatusPendingCOD || o.Measurements["chest"] != "36" {
		t.Fatalf("order = %+v", o)
	}

	a.do(t, http.MethodGet, "/api/wizard", nil, &w)
	if w.Step != 1 || w.Design != nil {
		t.Fatalf("wizard after submit = %+v", w)
	}
	var c cartBody
	a.do(t, http.MethodGet, "/api/cart", nil, &c)
	if c.Count != 0 {
		t.Fatalf("cart after submit = %+v", c)
	}
}

func TestWizard_SubmitValidation(t *testing.T) {
	a := newTestAPI(t)
	a.do(t, http.MethodPut, "/api/wizard/design", map[string]any{"designId": "2"}, nil)

	var e ErrorBody
	code := a.do(t, http.MethodPost, "/api/wizard/submit", map[string]string{"customerName": "Kavya", "email": "not-an-email", "paymentMethod": "card"}, &e)
	if code != http.StatusBadRequest || len(e.Details) != 2 {
		t.Fatalf("submit = %d %+v", code, e)
	}

	var w wizardBody
	a.do(t, http.MethodPost, "/api/wizard/back", nil, &w)
	if w.Step != 1 {
		t.Fatalf("back from review without measurements = %d", w.Step)
	}
	code = a.do(t, http.MethodPost, "/api/wizard/submit", map[string]string{"customerName": "Kavya", "email": "kavya@example.com", "paymentMethod": "cod"}, &e)
	if code != http.StatusConflict {
		t.Fatalf("incomplete form submit = %d %+v", code, e)
	}
}

func TestCheckoutAndVerifyPayment(t *testing.T) {
	a := newTestAPI(t)
	a.do(t, http.MethodPost, "/api/cart/items", map[string]string{"designId": "3"}, nil)

	var res checkout.Result
	code := a.do(t, http.MethodPost, "/api/checkout", map[string]any{
		"customerName":        "Meena",
		"email":               "meena@example.com",
		"designTitle":         "Saree Blouse",
		"basePrice":           1500,
		"includeMeasurements": true,
		"paymentMethod":       "online",
	}, &res)
	if code != http.StatusOK || res.URL != "https://pay.example/cs_test_1" {
		t.Fatalf("checkout = %d %+v", code, res)
	}
	req := a.gateway.requests[0]
	if !req.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("charged %s, want 2000", req.Amount)
	}
	if want := "http://shop.test/track?session_id={CHECKOUT_SESSION_ID}&order_id=" + res.OrderID; req.SuccessURL != want {
		t.Fatalf("success url = %s", req.SuccessURL)
	}
	var c cartBody
	a.do(t, http.MethodGet, "/api/cart", nil, &c)
	if c.Count != 0 {
		t.Fatalf("cart after checkout = %+v", c)
	}

	var e ErrorBody
	if code := a.do(t, http.MethodPost, "/api/verify-payment", map[string]string{"sessionId": "cs_test_1"}, &e); code != http.StatusBadRequest || e.Error != "payment not completed" {
		t.Fatalf("unpaid verify = %d %+v", code, e)
	}

	a.gateway.mu.Lock()
	a.gateway.paid["cs_test_1"] = res.OrderID
	a.gateway.mu.Unlock()
	for i := 0; i < 2; i++ {
		var v struct {
			Success bool   `json:"success"`
			OrderID string `json:"orderId"`
		}
		if code := a.do(t, http.MethodPost, "/api/verify-payment", map[string]string{"sessionId": "cs_test_1"}, &v); code != http.StatusOK || !v.Success || v.OrderID != res.OrderID {
			t.Fatalf("verify #%d = %d %+v", i+1, code, v)
		}
	}
	if a.notifier.count() != 1 {
		t.Fatalf("confirmations = %d, want 1", a.notifier.count())
	}
	var o models.Order
	a.do(t, http.MethodGet, "/api/orders/"+res.OrderID, nil, &o)
	if o.PaymentStatus != models.PaymentStatusPaid || o.Status != models.OrderStatusConfirmed {
		t.Fatalf("order after verify = %+v", o)
	}

	if code := a.do(t, http.MethodPost, "/api/verify-payment", map[string]string{}, nil); code != http.StatusBadRequest {
		t.Fatalf("missing session id = %d", code)
	}
}

func TestPlaceCOD_DirectEndpoint(t *testing.T) {
	a := newTestAPI(t)
	body := map[string]any{
		"customerName":  "Meena",
		"email":         "meena@example.com",
		"designTitle":   "Lehenga",
		"basePrice":     "5000",
		"paymentMethod": "online",
	}
	if code := a.do(t, http.MethodPost, "/api/orders", body, nil); code != http.StatusBadRequest {
		t.Fatalf("online method on COD endpoint = %d", code)
	}
	body["paymentMethod"] = "cod"
	var res checkout.Result
	if code := a.do(t, http.MethodPost, "/api/orders", body, &res); code != http.StatusCreated || !res.Success {
		t.Fatalf("cod = %d %+v", code, res)
	}
	if !strings.HasSuffix(res.URL, "/track?order_id="+res.OrderID) {
		t.Fatalf("url = %s", res.URL)
	}
}

func TestTrackOrder_NotFound(t *testing.T) {
	a := newTestAPI(t)
	var e ErrorBody
	if code := a.do(t, http.MethodGet, "/api/orders/nope", nil, &e); code != http.StatusNotFound || e.Error != "order not found" {
		t.Fatalf("track unknown = %d %+v", code, e)
	}
}

func TestReviews(t *testing.T) {
	a := newTestAPI(t)
	var e ErrorBody
	if code := a.do(t, http.MethodPost, "/api/reviews", map[string]any{"name": "Asha", "rating": 6, "comment": "Lovely"}, &e); code != http.StatusBadRequest || len(e.Details) != 1 {
		t.Fatalf("rating 6 = %d %+v", code, e)
	}
	if code := a.do(t, http.MethodPost, "/api/reviews", map[string]any{"name": "  ", "rating": 5, "comment": "Lovely"}, nil); code != http.StatusBadRequest {
		t.Fatalf("blank name = %d", code)
	}
	for _, n := range []string{"Asha", "Divya"} {
		var rv models.Review
		if code := a.do(t, http.MethodPost, "/api/reviews", map[string]any{"name": n, "rating": 5, "comment": "Perfect fit"}, &rv); code != http.StatusCreated || rv.ID == 0 {
			t.Fatalf("create review = %d %+v", code, rv)
		}
	}
	var list struct {
		Reviews []models.Review `json:"reviews"`
	}
	a.do(t, http.MethodGet, "/api/reviews", nil, &list)
	if len(list.Reviews) != 2 || list.Reviews[0].Name != "Divya" {
		t.Fatalf("reviews = %+v", list.Reviews)
	}
	if code := a.do(t, http.MethodGet, "/api/reviews?limit=x", nil, nil); code != http.StatusBadRequest {
		t.Fatalf("bad limit = %d", code)
	}
}

func TestLogins(t *testing.T) {
	a := newTestAPI(t)
	ctx := context.Background()
	if err := auth.EnsureAdmin(ctx, a.users, "owner", "s3cret!", zap.NewNop()); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	hash, err := auth.HashPassword("driverpw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := a.drivers.Create(ctx, &models.Driver{Name: "Ravi", PersonnelNumber: "DP-1001", PasswordHash: hash}); err != nil {
		t.Fatalf("create driver: %v", err)
	}

	var e ErrorBody
	if code := a.do(t, http.MethodPost, "/api/auth/admin/login", map[string]string{"username": "owner", "password": "wrong"}, &e); code != http.StatusUnauthorized || e.Error != "invalid credentials" {
		t.Fatalf("wrong password = %d %+v", code, e)
	}
	var tok struct {
		Token  string         `json:"token"`
		Driver map[string]any `json:"driver"`
	}
	if code := a.do(t, http.MethodPost, "/api/auth/admin/login", map[string]string{"username": "owner", "password": "s3cret!"}, &tok); code != http.StatusOK {
		t.Fatalf("admin login = %d", code)
	}
	p, err := auth.ParseBearer("Bearer "+tok.Token, testSecret)
	if err != nil || p.Name != "owner" || p.Kind != auth.KindAdmin {
		t.Fatalf("admin token = %+v, %v", p, err)
	}

	if code := a.do(t, http.MethodPost, "/api/auth/delivery/login", map[string]string{"personnelNumber": "dp-1001", "password": "driverpw"}, &tok); code != http.StatusOK {
		t.Fatalf("driver login = %d", code)
	}
	p, err = auth.ParseBearer("Bearer "+tok.Token, testSecret)
	if err != nil || p.Name != "DP-1001" || p.Kind != auth.KindDriver {
		t.Fatalf("driver token = %+v, %v", p, err)
	}
	if _, leaked := tok.Driver["password_hash"]; leaked || tok.Driver["personnel_number"] != "DP-1001" {
		t.Fatalf("driver body = %v", tok.Driver)
	}
	if code := a.do(t, http.MethodPost, "/api/auth/delivery/login", map[string]string{"personnelNumber": "DP-1001"}, nil); code != http.StatusBadRequest {
		t.Fatalf("missing password = %d", code)
	}
}
