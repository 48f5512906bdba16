package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakshininfra/purchase-api/models"
)

func testGatewayClient(baseURL string) *GatewayClient {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &GatewayClient{
		Name:      "DakshinInfra",
		Mode:      "sandbox",
		BaseURL:   baseURL,
		ScriptURL: baseURL + "/checkout.js",
		ReturnURL: "https://example.com/payment/return",
		appID:     "test-app-id",
		secretKey: "test-secret",
		L:         l,
		H:         &http.Client{Timeout: 5 * time.Second},
		loads:     make(map[string]*scriptLoad),
	}
}

func orderRequest() *models.PaymentOrderRequest {
	return &models.PaymentOrderRequest{
		OrderID:       "order-1",
		UnitNumber:    "A-101",
		OrderAmount:   100000,
		CustomerName:  "Priya Raman",
		CustomerEmail: "priya@example.com",
		CustomerPhone: "+919812345678",
	}
}

func TestCreateOrder_Success(t *testing.T) {
	// GIVEN: an order API that returns a payment session
	var gotAuth struct{ id, secret string }
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		gotAuth.id = r.Header.Get("x-client-id")
		gotAuth.secret = r.Header.Get("x-client-secret")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"order-1","payment_session_id":"session-abc"}`))
	}))
	defer srv.Close()

	// WHEN: creating an order
	g := testGatewayClient(srv.URL)
	resp, err := g.CreateOrder(context.Background(), orderRequest())

	// THEN: the session id comes back and credentials went on the wire
	require.NoError(t, err)
	assert.Equal(t, "session-abc", resp.PaymentSessionID)
	assert.Equal(t, "test-app-id", gotAuth.id)
	assert.Equal(t, "test-secret", gotAuth.secret)
}

func TestCreateOrder_DefaultsCurrencyAndReturnURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_id":"order-1","payment_session_id":"session-abc"}`))
	}))
	defer srv.Close()

	g := testGatewayClient(srv.URL)
	req := orderRequest()
	_, err := g.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "INR", req.OrderCurrency)
	assert.Equal(t, g.ReturnURL, req.ReturnURL)
}

func TestCreateOrder_IncompleteCustomerSkipsNetwork(t *testing.T) {
	// GIVEN: a server that counts every request
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()
	g := testGatewayClient(srv.URL)

	// WHEN: the customer contact fields are incomplete
	tests := []func(*models.PaymentOrderRequest){
		func(r *models.PaymentOrderRequest) { r.CustomerName = "" },
		func(r *models.PaymentOrderRequest) { r.CustomerEmail = "  " },
		func(r *models.PaymentOrderRequest) { r.CustomerPhone = "" },
	}
	for _, mutate := range tests {
		req := orderRequest()
		mutate(req)
		_, err := g.CreateOrder(context.Background(), req)
		assert.ErrorIs(t, err, ErrIncompleteCustomerInfo)
	}

	// THEN: nothing reached the wire
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestCreateOrder_ServerMessageExtracted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"authentication failed"}`))
	}))
	defer srv.Close()

	g := testGatewayClient(srv.URL)
	_, err := g.CreateOrder(context.Background(), orderRequest())

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusUnauthorized, ge.Status)
	assert.Equal(t, "authentication failed", ge.Message)
}

func TestCreateOrder_GenericMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	g := testGatewayClient(srv.URL)
	_, err := g.CreateOrder(context.Background(), orderRequest())

	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "payment gateway request failed", ge.Message)
}

func TestCreateOrder_MissingSessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order_id":"order-1"}`))
	}))
	defer srv.Close()

	g := testGatewayClient(srv.URL)
	_, err := g.CreateOrder(context.Background(), orderRequest())
	assert.ErrorIs(t, err, ErrInvalidGatewayResponse)
}

func TestEnsureCheckout_MissingCredentials(t *testing.T) {
	g := testGatewayClient("https://example.invalid")
	g.secretKey = ""
	assert.ErrorIs(t, g.EnsureCheckout(context.Background()), ErrGatewayInit)
}

func TestEnsureCheckout_ScriptLoadedOnce(t *testing.T) {
	// GIVEN: a script host that counts fetches
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = w.Write([]byte(`// checkout`))
	}))
	defer srv.Close()
	g := testGatewayClient(srv.URL)

	// WHEN: many callers race EnsureCheckout
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.EnsureCheckout(context.Background()))
		}()
	}
	wg.Wait()

	// THEN: the script was fetched exactly once, and later calls reuse it
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
	assert.NoError(t, g.EnsureCheckout(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestEnsureCheckout_FailureAllowsRetry(t *testing.T) {
	// GIVEN: a script host that fails once, then recovers
	var fetches int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&fetches, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`// checkout`))
	}))
	defer srv.Close()
	g := testGatewayClient(srv.URL)

	// WHEN: the first load fails
	err := g.EnsureCheckout(context.Background())
	assert.ErrorIs(t, err, ErrGatewayLoad)

	// THEN: the failure was not cached and the retry succeeds
	assert.NoError(t, g.EnsureCheckout(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches))
}

func TestCheckoutConfig(t *testing.T) {
	g := testGatewayClient("https://example.invalid")
	cfg := g.CheckoutConfig("session-abc")
	assert.Equal(t, models.CheckoutConfig{
		Mode:             "sandbox",
		PaymentSessionID: "session-abc",
		RedirectTarget:   "https://example.com/payment/return",
	}, cfg)
}

func TestNewGatewayClient_DefaultsToSandbox(t *testing.T) {
	t.Setenv("GATEWAY_ENV", "")
	g := NewGatewayClient(logrus.New())
	assert.Equal(t, "sandbox", g.Mode)
	assert.Equal(t, environments["sandbox"], g.BaseURL)
}
