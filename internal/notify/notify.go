// Package notify delivers best-effort push notifications to a single
// preconfigured recipient channel. Delivery is fire-and-forget: no retry, no
// delivery guarantee, and failures never propagate past the caller's log.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Notifier sends one text message. Implementations must be safe for
// sequential reuse.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Nop is the notifier used when no channel is configured.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }

const (
	defaultEndpoint = "https://api.line.me/v2/bot/message/push"
	defaultTimeout  = 5 * time.Second
)

// Push delivers messages over the LINE Messaging push API.
type Push struct {
	endpoint  string
	token     string
	recipient string
	client    *http.Client
}

// Option configures a Push notifier.
type Option func(*Push)

// WithEndpoint overrides the push endpoint. Used by tests.
func WithEndpoint(u string) Option {
	return func(p *Push) { p.endpoint = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Push) { p.client = hc }
}

// NewPush creates a push notifier, or a Nop when the token or recipient is
// missing so callers never need to special-case absent configuration.
func NewPush(token, recipient string, opts ...Option) Notifier {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(recipient) == "" {
		return Nop{}
	}
	p := &Push{
		endpoint:  defaultEndpoint,
		token:     token,
		recipient: recipient,
		client:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type pushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []pushMessage `json:"messages"`
}

func (p *Push) Notify(ctx context.Context, text string) error {
	body, err := json.Marshal(pushRequest{
		To:       p.recipient,
		Messages: []pushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.token)

	res, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("push status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
