package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"alumnimart/internal/domain"
	"alumnimart/internal/paystack"
	productrepo "alumnimart/internal/repository/product"
	accountsvc "alumnimart/internal/service/account"
	catalogsvc "alumnimart/internal/service/catalog"
	feedsvc "alumnimart/internal/service/feed"
	ordersvc "alumnimart/internal/service/order"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAccountSvc struct {
	user     *domain.User
	token    string
	signErr  error
	loginErr error
	authErr  error
}

func (s *stubAccountSvc) Signup(_ context.Context, _ accountsvc.SignupInput) (*domain.User, error) {
	return s.user, s.signErr
}

func (s *stubAccountSvc) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	return s.token, s.user, s.loginErr
}

func (s *stubAccountSvc) Logout(_ context.Context, _ string) error { return nil }

func (s *stubAccountSvc) Authenticate(_ context.Context, _ string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	if s.user == nil {
		return nil, accountsvc.ErrInvalidToken
	}
	return s.user, nil
}

type stubSchoolSvc struct {
	school *domain.School
	err    error
}

func (s *stubSchoolSvc) Create(_ context.Context, _, _ string) (*domain.School, error) {
	return s.school, s.err
}

func (s *stubSchoolSvc) GetByID(_ context.Context, _ string) (*domain.School, error) {
	return s.school, s.err
}

func (s *stubSchoolSvc) List(_ context.Context) ([]domain.School, error) {
	if s.school == nil {
		return nil, s.err
	}
	return []domain.School{*s.school}, s.err
}

type stubCategorySvc struct {
	category *domain.Category
	err      error
}

func (s *stubCategorySvc) Create(_ context.Context, _ domain.User, _ catalogsvc.CategoryInput) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubCategorySvc) Rename(_ context.Context, _ domain.User, _, _ string) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubCategorySvc) Delete(_ context.Context, _ domain.User, _ string) error {
	return s.err
}

func (s *stubCategorySvc) List(_ context.Context, _ *string) ([]domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.category == nil {
		return nil, nil
	}
	return []domain.Category{*s.category}, nil
}

type stubBrandSvc struct {
	brand *domain.Brand
	err   error
}

func (s *stubBrandSvc) Create(_ context.Context, _ domain.User, _ catalogsvc.BrandInput) (*domain.Brand, error) {
	return s.brand, s.err
}

func (s *stubBrandSvc) Rename(_ context.Context, _ domain.User, _, _ string) (*domain.Brand, error) {
	return s.brand, s.err
}

func (s *stubBrandSvc) Delete(_ context.Context, _ domain.User, _ string) error { return s.err }

func (s *stubBrandSvc) List(_ context.Context, _ *string) ([]domain.Brand, error) {
	return nil, s.err
}

type stubProductSvc struct {
	product *domain.Product
	err     error
}

func (s *stubProductSvc) Create(_ context.Context, _ domain.User, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Update(_ context.Context, _ domain.User, _ string, _ catalogsvc.ProductInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) Delete(_ context.Context, _ domain.User, _ string) error { return s.err }

func (s *stubProductSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductSvc) List(_ context.Context, _ productrepo.ListFilter) ([]domain.Product, error) {
	return nil, s.err
}

type stubCartSvc struct {
	count   int
	summary *domain.CartSummary
	err     error
}

func (s *stubCartSvc) Add(_ context.Context, _, _ string, _ int) (int, error) {
	return s.count, s.err
}

func (s *stubCartSvc) UpdateQuantity(_ context.Context, _, _ string, _ int) error { return s.err }

func (s *stubCartSvc) Remove(_ context.Context, _, _ string) error { return s.err }

func (s *stubCartSvc) Clear(_ context.Context, _ string) error { return s.err }

func (s *stubCartSvc) Summary(_ context.Context, _ string) (*domain.CartSummary, error) {
	return s.summary, s.err
}

func (s *stubCartSvc) Count(_ context.Context, _ string) (int, error) {
	return s.count, s.err
}

type stubOrderSvc struct {
	checkout  *ordersvc.CheckoutResult
	verify    *ordersvc.VerifyResult
	order     *domain.Order
	err       error
	verifyErr error
	lastRef   string
}

func (s *stubOrderSvc) Checkout(_ context.Context, _ string, _ ordersvc.CheckoutInput) (*ordersvc.CheckoutResult, error) {
	return s.checkout, s.err
}

func (s *stubOrderSvc) VerifyPayment(_ context.Context, reference string) (*ordersvc.VerifyResult, error) {
	s.lastRef = reference
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verify, nil
}

func (s *stubOrderSvc) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderSvc) History(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderSvc) UpdateStatus(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.err
}

type stubFeedSvc struct {
	post *domain.FeedPost
	err  error
}

func (s *stubFeedSvc) Create(_ context.Context, _ domain.User, _ feedsvc.PostInput) (*domain.FeedPost, error) {
	return s.post, s.err
}

func (s *stubFeedSvc) List(_ context.Context, _, _ string) ([]domain.FeedPost, error) {
	return nil, s.err
}

func (s *stubFeedSvc) Delete(_ context.Context, _ domain.User, _ string) error { return s.err }

func testDeps() Deps {
	return Deps{
		AccountSvc:  &stubAccountSvc{},
		SchoolSvc:   &stubSchoolSvc{},
		CategorySvc: &stubCategorySvc{},
		BrandSvc:    &stubBrandSvc{},
		ProductSvc:  &stubProductSvc{},
		CartSvc:     &stubCartSvc{},
		OrderSvc:    &stubOrderSvc{},
		FeedSvc:     &stubFeedSvc{},
	}
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router *gin.Engine, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t, testDeps())

	for _, target := range []string{"/api/v1/cart", "/api/v1/cart/count", "/api/v1/orders"} {
		rec := doRequest(router, http.MethodGet, target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d body=%s", target, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Errorf("%s: missing failure envelope: %s", target, rec.Body.String())
		}
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{authErr: accountsvc.ErrInvalidToken}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/cart", "", "stale-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCatalogMutationForbiddenForMembers(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	deps.CategorySvc = &stubCategorySvc{err: domain.ErrForbidden}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/categories", `{"name":"Apparel"}`, "t")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCatalogReadsArePublic(t *testing.T) {
	router := newTestRouter(t, testDeps())

	for _, target := range []string{"/api/v1/categories", "/api/v1/brands", "/api/v1/products"} {
		rec := doRequest(router, http.MethodGet, target, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", target, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Errorf("%s: expected empty collection, got %s", target, rec.Body.String())
		}
	}
}

func TestListProductsDegradesOnRepositoryError(t *testing.T) {
	deps := testDeps()
	deps.ProductSvc = &stubProductSvc{err: errors.New("db down")}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty collection, got %s", rec.Body.String())
	}
}

func TestCategoryDeleteConflict(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "root", Role: domain.RoleSuperAdmin}}
	deps.CategorySvc = &stubCategorySvc{err: fmt.Errorf("category has 2 dependent brand(s): %w", domain.ErrConflict)}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodDelete, "/api/v1/categories/c1", "", "t")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "2 dependent brand") {
		t.Fatalf("conflict message must carry the dependent count: %s", rec.Body.String())
	}
}

func TestValidationErrorsKeepOKStatus(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{
		user:    &domain.User{ID: "u1", Role: domain.RoleMember},
		signErr: domain.Validationf("password must be at least 8 characters"),
	}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/signup", `{"email":"a@b.test","password":"x"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) || !strings.Contains(rec.Body.String(), "at least 8") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{loginErr: accountsvc.ErrInvalidCredentials}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.test","password":"nope"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateSchoolRequiresSuperAdmin(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleSchoolAdmin}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/schools", `{"name":"Unilag"}`, "t")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestForeignOrderIsNotFound(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/orders/other-users-order", "", "t")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutEmptyCartMessage(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrEmptyCart}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/checkout", `{"name":"Ada","email":"a@b.test"}`, "t")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cart is empty") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCheckoutGatewayFailureIsActionable(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	deps.OrderSvc = &stubOrderSvc{err: &paystack.GatewayError{StatusCode: 401, Message: "invalid key"}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPost, "/api/v1/checkout", `{"name":"Ada","email":"a@b.test"}`, "t")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "try again") {
		t.Fatalf("expected an actionable message, got %s", rec.Body.String())
	}
}

func TestPaymentCallbackPaid(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{verify: &ordersvc.VerifyResult{
		Order:   &domain.Order{ID: "o1", PaymentStatus: domain.PaymentPaid},
		Paid:    true,
		Applied: true,
	}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/payment/callback?reference=ALM-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"paid"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPaymentCallbackReplayStillPaid(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{verify: &ordersvc.VerifyResult{
		Order: &domain.Order{ID: "o1", PaymentStatus: domain.PaymentPaid},
		Paid:  true,
	}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/payment/callback?reference=ALM-1", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"code":"paid"`) {
		t.Fatalf("replayed callback must still report paid: %d %s", rec.Code, rec.Body.String())
	}
}

func TestPaymentCallbackFailed(t *testing.T) {
	deps := testDeps()
	deps.OrderSvc = &stubOrderSvc{verify: &ordersvc.VerifyResult{
		Order: &domain.Order{ID: "o1", PaymentStatus: domain.PaymentPending},
		Paid:  false,
	}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/payment/callback?reference=ALM-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"payment_failed"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestPaymentCallbackErrorCodes(t *testing.T) {
	cases := []struct {
		name       string
		target     string
		verifyErr  error
		wantStatus int
		wantCode   string
	}{
		{"missing reference", "/api/v1/payment/callback", domain.Validationf("reference is required"), http.StatusOK, codeInvalidReference},
		{"unresolved", "/api/v1/payment/callback?reference=ALM-1", ordersvc.ErrPaymentUnresolved, http.StatusOK, codeUnresolved},
		{"unknown reference", "/api/v1/payment/callback?reference=ALM-x", domain.ErrNotFound, http.StatusNotFound, codeUnknownReference},
		{"gateway rejection", "/api/v1/payment/callback?reference=ALM-1", &paystack.GatewayError{StatusCode: 400, Message: "bad"}, http.StatusBadGateway, codeGatewayError},
		{"transport failure", "/api/v1/payment/callback?reference=ALM-1", errors.New("dial tcp: timeout"), http.StatusBadGateway, codeVerifyError},
	}
	for _, tc := range cases {
		deps := testDeps()
		deps.OrderSvc = &stubOrderSvc{verifyErr: tc.verifyErr}
		router := newTestRouter(t, deps)

		rec := doRequest(router, http.MethodGet, tc.target, "", "")
		if rec.Code != tc.wantStatus {
			t.Errorf("%s: expected %d, got %d body=%s", tc.name, tc.wantStatus, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"code":"`+tc.wantCode+`"`) {
			t.Errorf("%s: expected code %q, got %s", tc.name, tc.wantCode, rec.Body.String())
		}
	}
}

func TestUpdateOrderStatusSuperAdminOnly(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodPatch, "/api/v1/orders/o1/status", `{"status":"processing"}`, "t")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestPersistenceErrorsStayGeneric(t *testing.T) {
	deps := testDeps()
	deps.AccountSvc = &stubAccountSvc{user: &domain.User{ID: "u1", Role: domain.RoleMember}}
	deps.CartSvc = &stubCartSvc{err: errors.New("pq: relation cart_items does not exist")}
	router := newTestRouter(t, deps)

	rec := doRequest(router, http.MethodGet, "/api/v1/cart", "", "t")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "cart_items") {
		t.Fatalf("internal detail leaked to the client: %s", rec.Body.String())
	}
}
