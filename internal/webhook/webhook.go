// Package webhook delivers parse results to a configured endpoint with an
// HMAC signature and bounded exponential backoff.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const userAgent = "sciparse-webhook/1.0"

// Deliverer posts JSON payloads to a webhook URL. The payload is signed
// with HMAC-SHA256 in the X-Signature header so receivers can verify the
// sender.
type Deliverer struct {
	url        string
	secret     string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

func New(url, secret string, maxRetries int, retryDelay time.Duration, log *slog.Logger) *Deliverer {
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	return &Deliverer{
		url:        url,
		secret:     secret,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// IsConfigured reports whether a webhook URL is set.
func (d *Deliverer) IsConfigured() bool {
	return d.url != ""
}

// Signature computes the hex HMAC-SHA256 of payload under secret.
func Signature(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Deliver posts the payload, retrying transient failures with exponential
// backoff up to the configured attempt limit.
func (d *Deliverer) Deliver(ctx context.Context, payload any) error {
	if !d.IsConfigured() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	signature := Signature(d.secret, body)

	attempt := 0
	post := func() error {
		attempt++
		d.log.Info("delivering webhook", "url", d.url, "attempt", attempt)
		if err := d.post(ctx, body, signature); err != nil {
			d.log.Warn("webhook attempt failed", "attempt", attempt, "error", err)
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = d.retryDelay
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(d.maxRetries-1)), ctx)

	if err := backoff.Retry(post, policy); err != nil {
		return fmt.Errorf("deliver webhook after %d attempts: %w", attempt, err)
	}
	d.log.Info("webhook delivered", "url", d.url)
	return nil
}

func (d *Deliverer) post(ctx context.Context, body []byte, signature string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", signature)
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
