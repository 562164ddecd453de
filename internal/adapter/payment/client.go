package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
)

// LineItem is one payment-provider line: a payable (date, company) group.
type LineItem struct {
	Label       string
	Description string
	AmountMinor int64
}

// CheckoutParams carries everything needed to open a checkout session.
// The pending order id round-trips through provider metadata so the payment
// webhook can locate the PENDING order lines.
type CheckoutParams struct {
	CustomerEmail  string
	PendingOrderID string
	DiscountCodeID string
	DiscountAmount float64
	LineItems      []LineItem
}

// CheckoutSession is the provider session the customer is redirected to.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// Client exposes the payment provider operations the order pipeline uses.
type Client interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// IssueRefund refunds amount (major currency units) against the intent.
	IssueRefund(ctx context.Context, intentID string, amount float64) error
	// SumSucceededRefunds returns the total already refunded on the intent,
	// in major currency units.
	SumSucceededRefunds(ctx context.Context, intentID string) (float64, error)
}

// MinorUnits converts a major-unit amount to provider minor units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(math.Abs(amount) * 100))
}

// HTTPClient implements Client via the provider's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	clientURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an HTTP payment client with default timeout.
// clientURL is the frontend base the provider redirects back to.
func NewHTTPClient(baseURL, apiKey, clientURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL:   parsed,
		apiKey:    apiKey,
		clientURL: clientURL,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type sessionRequest struct {
	CustomerEmail string            `json:"customer_email"`
	Mode          string            `json:"mode"`
	LineItems     []sessionLineItem `json:"line_items"`
	Metadata      map[string]string `json:"metadata"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
}

type sessionLineItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitAmount  int64  `json:"unit_amount"`
	Quantity    int    `json:"quantity"`
}

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type refundRequest struct {
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
}

type refundListResponse struct {
	Data []struct {
		Amount int64  `json:"amount"`
		Status string `json:"status"`
	} `json:"data"`
}

// CreateCheckoutSession opens a provider checkout session with one line item
// per payable group.
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	items := make([]sessionLineItem, 0, len(params.LineItems))
	for _, li := range params.LineItems {
		items = append(items, sessionLineItem{
			Name:        li.Label,
			Description: li.Description,
			UnitAmount:  li.AmountMinor,
			Quantity:    1,
		})
	}

	body := sessionRequest{
		CustomerEmail: params.CustomerEmail,
		Mode:          "payment",
		LineItems:     items,
		Metadata: map[string]string{
			"pending_order_id": params.PendingOrderID,
			"discount_code_id": params.DiscountCodeID,
			"discount_amount":  fmt.Sprintf("%.2f", params.DiscountAmount),
		},
		SuccessURL: c.clientURL + "/success?session={CHECKOUT_SESSION_ID}",
		CancelURL:  c.clientURL + "/dashboard",
	}

	var resp sessionResponse
	if err := c.post(ctx, "/v1/checkout/sessions", body, &resp); err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: resp.ID, RedirectURL: resp.URL}, nil
}

// IssueRefund refunds the given major-unit amount against the intent.
func (c *HTTPClient) IssueRefund(ctx context.Context, intentID string, amount float64) error {
	body := refundRequest{PaymentIntent: intentID, Amount: MinorUnits(amount)}
	return c.post(ctx, "/v1/refunds", body, &struct{}{})
}

// SumSucceededRefunds totals succeeded refunds already issued on the intent.
func (c *HTTPClient) SumSucceededRefunds(ctx context.Context, intentID string) (float64, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/refunds")
	q := endpoint.Query()
	q.Set("payment_intent", intentID)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domainErrors.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, c.providerError(resp)
	}

	var list refundListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return 0, fmt.Errorf("%w: decode refunds: %w", domainErrors.ErrPaymentProvider, err)
	}

	var totalMinor int64
	for _, r := range list.Data {
		if r.Status == "succeeded" {
			totalMinor += r.Amount
		}
	}
	return float64(totalMinor) / 100, nil
}

func (c *HTTPClient) post(ctx context.Context, endpointPath string, body, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrPaymentProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.providerError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("%w: decode response: %w", domainErrors.ErrPaymentProvider, err)
	}
	return nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (c *HTTPClient) providerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("payment request failed",
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)
	return fmt.Errorf("%w: %s", domainErrors.ErrPaymentProvider, resp.Status)
}
