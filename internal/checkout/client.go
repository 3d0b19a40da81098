package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrPaymentUnavailable = errors.New("payment session endpoint unavailable")
	ErrRejected           = errors.New("payment session rejected")
)

// Request is what the payment processor needs to open a session: the line
// items with their resolved unit price, and where to send the shopper back.
type Request struct {
	Mode       domain.Mode
	Items      []domain.LineItem
	SuccessURL string
	CancelURL  string
}

// Client opens a payment session and returns the redirect target.
type Client interface {
	CreateSession(ctx context.Context, req Request) (string, error)
}

type sessionItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type sessionRequest struct {
	UserID      string        `json:"user_id,omitempty"`
	Items       []sessionItem `json:"items"`
	TotalAmount float64       `json:"total_amount"`
	Currency    string        `json:"currency"`
	SuccessURL  string        `json:"success_url"`
	CancelURL   string        `json:"cancel_url"`
}

type sessionResponse struct {
	URL string `json:"url"`
}

// HTTPClient posts checkout requests to a payment-session endpoint. Calls go
// through a circuit breaker so an unavailable processor fails fast.
type HTTPClient struct {
	endpoint string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[string]
	log      *zap.Logger
}

func NewHTTPClient(endpoint string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	log = logger.OrNop(log).Named("checkout_client")
	return &HTTPClient{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      log,
		cb: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "payment-session",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// a rejected cart says nothing about the processor's health
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrRejected)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					zap.String("breaker", name), zap.Stringer("from", from), zap.Stringer("to", to))
			},
		}),
	}
}

func (c *HTTPClient) CreateSession(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(newSessionRequest(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	url, err := c.cb.Execute(func() (string, error) {
		return c.post(ctx, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	return url, err
}

func (c *HTTPClient) post(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPaymentUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrPaymentUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: invalid response: %w", ErrPaymentUnavailable, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: response has no redirect url", ErrPaymentUnavailable)
	}
	return out.URL, nil
}

func newSessionRequest(req Request) sessionRequest {
	out := sessionRequest{
		UserID:     req.Mode.UserID,
		Items:      make([]sessionItem, 0, len(req.Items)),
		Currency:   "USD",
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}
	for _, it := range req.Items {
		out.Items = append(out.Items, sessionItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
		out.TotalAmount += it.Subtotal()
	}
	return out
}
