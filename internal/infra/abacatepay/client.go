package abacatepay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("abacatepay api key not configured")

// APIError is returned when the gateway answers with an error payload or a
// non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("abacatepay: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("abacatepay: %s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for the gateway REST API. An empty apiKey is
// allowed; every call then fails with ErrNotConfigured.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// CheckPixCharge asks the gateway for the current state of a Pix charge.
func (c *Client) CheckPixCharge(ctx context.Context, chargeID string) (*Charge, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("id", chargeID)

	var charge Charge
	if err := c.do(ctx, http.MethodGet, "/pixQrCode/check?"+q.Encode(), nil, &charge); err != nil {
		return nil, err
	}
	if charge.ID == "" {
		charge.ID = chargeID
	}
	return &charge, nil
}

// CreatePixCharge opens a Pix QR code charge.
func (c *Client) CreatePixCharge(ctx context.Context, params CreateChargeParams) (*Charge, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var charge Charge
	if err := c.do(ctx, http.MethodPost, "/pixQrCode/create", params, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("abacatepay request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read abacatepay response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode abacatepay response: %w", err)
	}
	if env.Error != nil && *env.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: *env.Error}
	}
	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &APIError{StatusCode: resp.StatusCode, Message: "empty response data"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode abacatepay data: %w", err)
	}
	return nil
}
