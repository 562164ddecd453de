package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer dispatches notification emails. Callers decide whether a send
// failure is fatal: delivery and archive notifications propagate it, order
// reminders only log it.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient implements Mailer via the mail provider's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates an HTTP mail client with default timeout.
func NewHTTPClient(baseURL, apiKey, from string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		from:    from,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send posts one message to the provider.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v3/mail/send")

	payload, err := json.Marshal(sendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: msg.To}}}},
		From:             emailAddress{Email: c.from},
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/html", Value: msg.HTML}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("mail request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return fmt.Errorf("send mail: %s", resp.Status)
	}
	return nil
}
