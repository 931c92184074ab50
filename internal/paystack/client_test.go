package paystack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testClient(url string) *Client {
	return New(Config{BaseURL: url, SecretKey: "sk_test", Timeout: 2 * time.Second})
}

func TestInitializeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"ALM-1"}}`))
	}))
	defer srv.Close()

	auth, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{
		Email:     "buyer@example.com",
		Amount:    decimal.RequireFromString("36.875"),
		Reference: "ALM-1",
		Metadata:  Metadata{OrderID: "o1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if auth.AuthorizationURL != "https://checkout.paystack.com/abc" || auth.AccessCode != "abc" {
		t.Fatalf("unexpected authorization %+v", auth)
	}
}

func TestInitializeStatusFalseIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{Reference: "ALM-2"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.Message != "Invalid key" {
		t.Fatalf("unexpected message %q", gwErr.Message)
	}
}

func TestInitializeNon2xxIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":false,"message":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{Reference: "ALM-3"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", gwErr.StatusCode)
	}
}

func TestInitializeMalformedBodyIsGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Initialize(context.Background(), InitializeInput{Reference: "ALM-4"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestVerifyReportsInnerStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ALM-5" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"failed","reference":"ALM-5","amount":3688,"gateway_response":"Declined","metadata":{"order_id":"o5"}}}`))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Verify(context.Background(), "ALM-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// outer status=true must not be mistaken for a successful payment
	if result.Status != StatusFailed {
		t.Fatalf("expected inner status failed, got %q", result.Status)
	}
	if result.Metadata.OrderID != "o5" {
		t.Fatalf("expected metadata order id, got %+v", result.Metadata)
	}
}

func TestVerifyTransportErrorIsNotGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, SecretKey: "sk_test", Timeout: 50 * time.Millisecond})
	_, err := c.Verify(context.Background(), "ALM-6")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		t.Fatalf("timeout must not be a GatewayError: %v", err)
	}
}

func TestGenerateReference(t *testing.T) {
	a := GenerateReference("ALM")
	b := GenerateReference("ALM")
	if a == b {
		t.Fatal("references must be unique")
	}
	if !strings.HasPrefix(a, "ALM-") {
		t.Fatalf("missing prefix: %s", a)
	}
}

func TestSubunitsRounding(t *testing.T) {
	if got := subunits(decimal.RequireFromString("36.875")); got != 3688 {
		t.Fatalf("subunits(36.875) = %d, want 3688", got)
	}
	if got := subunits(decimal.RequireFromString("25.00")); got != 2500 {
		t.Fatalf("subunits(25.00) = %d, want 2500", got)
	}
}
