package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dakshininfra/purchase-api/models"
)

// Order API base URLs per gateway environment, selected with GATEWAY_ENV.
var environments = map[string]string{
	"sandbox":    "https://sandbox.cashfree.com/pg",
	"production": "https://api.cashfree.com/pg",
}

const checkoutScriptURL = "https://sdk.cashfree.com/js/v3/cashfree.js"

var (
	// ErrIncompleteCustomerInfo is returned before any network call when the
	// customer contact fields are not all present.
	ErrIncompleteCustomerInfo = errors.New("customer name, email and phone are required")

	// ErrInvalidGatewayResponse is returned when the order API answers
	// without a payment_session_id.
	ErrInvalidGatewayResponse = errors.New("gateway response missing payment_session_id")

	// ErrGatewayLoad is returned when the external checkout script cannot be
	// fetched. Load failures are not cached; a user-initiated retry attempts
	// the fetch again.
	ErrGatewayLoad = errors.New("failed to load checkout script")

	// ErrGatewayInit is returned when the gateway client cannot be
	// constructed (bad mode or missing credentials).
	ErrGatewayInit = errors.New("failed to initialize payment gateway client")
)

// GatewayError carries the best available message from a failed gateway
// call: the server-supplied detail when present, a generic fallback
// otherwise. It feeds the dismissible error banner; nothing here retries.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (%d): %s", e.Status, e.Message)
}

// GatewayClient creates payment sessions against the external order API and
// hands the resulting session id to the hosted checkout widget. It never
// observes payment completion; that comes back via browser redirect.
type GatewayClient struct {
	Name      string
	Mode      string
	BaseURL   string
	ScriptURL string
	ReturnURL string
	appID     string
	secretKey string
	L         *logrus.Logger
	H         *http.Client

	loadMu sync.Mutex
	loads  map[string]*scriptLoad
}

func NewGatewayClient(l *logrus.Logger) *GatewayClient {
	mode := os.Getenv("GATEWAY_ENV")
	if mode == "" {
		mode = "sandbox"
	}
	return &GatewayClient{
		Name:      "DakshinInfra",
		Mode:      mode,
		BaseURL:   environments[mode],
		ScriptURL: checkoutScriptURL,
		ReturnURL: os.Getenv("GATEWAY_RETURN_URL"),
		appID:     os.Getenv("GATEWAY_APP_ID"),
		secretKey: os.Getenv("GATEWAY_SECRET_KEY"),
		L:         l,
		H:         &http.Client{Timeout: 10 * time.Second},
		loads:     make(map[string]*scriptLoad),
	}
}

// CreateOrder requests a payment session for one unit purchase. The customer
// contact fields are validated before anything goes on the wire.
func (g *GatewayClient) CreateOrder(ctx context.Context, req *models.PaymentOrderRequest) (*models.PaymentOrderResponse, error) {
	if strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" ||
		strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, ErrIncompleteCustomerInfo
	}

	if req.OrderCurrency == "" {
		req.OrderCurrency = "INR"
	}
	if req.ReturnURL == "" {
		req.ReturnURL = g.ReturnURL
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", g.appID)
	httpReq.Header.Set("x-client-secret", g.secretKey)

	resp, err := g.H.Do(httpReq)
	if err != nil {
		g.L.Errorf("[Gateway] order request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, g.readError(resp)
	}

	var result models.PaymentOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ErrInvalidGatewayResponse
	}
	if result.PaymentSessionID == "" {
		g.L.Errorf("[Gateway] order %s created without a payment_session_id", req.OrderID)
		return nil, ErrInvalidGatewayResponse
	}

	g.L.Infof("[Gateway] payment session created for order %s", result.OrderID)
	return &result, nil
}

// readError extracts the server-supplied message field from an error
// response, with a generic fallback when none is present.
func (g *GatewayClient) readError(resp *http.Response) error {
	msg := "payment gateway request failed"
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var detail struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if json.Unmarshal(raw, &detail) == nil {
			if detail.Message != "" {
				msg = detail.Message
			} else if detail.Detail != "" {
				msg = detail.Detail
			}
		}
	}
	return &GatewayError{Status: resp.StatusCode, Message: msg}
}

// CheckoutConfig is what the hosting page needs to open the checkout widget
// for a created session.
func (g *GatewayClient) CheckoutConfig(paymentSessionID string) models.CheckoutConfig {
	return models.CheckoutConfig{
		Mode:             g.Mode,
		PaymentSessionID: paymentSessionID,
		RedirectTarget:   g.ReturnURL,
	}
}

type scriptLoad struct {
	done chan struct{}
	err  error
}

// EnsureCheckout verifies the gateway client can be constructed and the
// checkout script is reachable. The load runs at most once per script URL
// per process lifetime; concurrent callers share one in-flight fetch, and a
// successful result is cached for good.
func (g *GatewayClient) EnsureCheckout(ctx context.Context) error {
	if g.BaseURL == "" || g.appID == "" || g.secretKey == "" {
		return ErrGatewayInit
	}
	return g.loadScript(ctx, g.ScriptURL)
}

func (g *GatewayClient) loadScript(ctx context.Context, url string) error {
	g.loadMu.Lock()
	if ld, inflight := g.loads[url]; inflight {
		g.loadMu.Unlock()
		select {
		case <-ld.done:
			return ld.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	ld := &scriptLoad{done: make(chan struct{})}
	g.loads[url] = ld
	g.loadMu.Unlock()

	ld.err = g.fetchScript(ctx, url)
	close(ld.done)

	if ld.err != nil {
		// keep failures out of the cache so a re-click can retry
		g.loadMu.Lock()
		delete(g.loads, url)
		g.loadMu.Unlock()
	}
	return ld.err
}

func (g *GatewayClient) fetchScript(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayLoad, err)
	}
	resp, err := g.H.Do(req)
	if err != nil {
		g.L.Errorf("[Gateway] checkout script fetch failed: %v", err)
		return fmt.Errorf("%w: %v", ErrGatewayLoad, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrGatewayLoad, resp.StatusCode)
	}
	return nil
}
