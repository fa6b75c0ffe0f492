// Package client is a typed HTTP client for the ledger API used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// Config configures a Client
type Config struct {
	BaseURL string
	Token   string
	Lang    string
	Timeout time.Duration
}

// Client calls the ledger HTTP API
type Client struct {
	baseURL    string
	token      string
	lang       string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		lang:       cfg.Lang,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// SetToken replaces the bearer token used for later calls
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the {success, data, error} body of the /api routes
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Login exchanges admin credentials for a token and keeps it on the client
func (c *Client) Login(ctx context.Context, username, password string) (entity.UserRecord, error) {
	var resp struct {
		Access string            `json:"access"`
		User   entity.UserRecord `json:"user"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/token/", body, &resp); err != nil {
		return entity.UserRecord{}, err
	}
	c.token = resp.Access
	return resp.User, nil
}

// VipLogin exchanges VIP credentials for a token and keeps it on the client
func (c *Client) VipLogin(ctx context.Context, phone, password string) (entity.UserRecord, error) {
	var resp struct {
		Access string            `json:"access"`
		User   entity.UserRecord `json:"user"`
	}
	body := map[string]string{"phone": phone, "password": password}
	if err := c.call(ctx, http.MethodPost, "/api/auth/vip/token/", body, &resp); err != nil {
		return entity.UserRecord{}, err
	}
	c.token = resp.Access
	return resp.User, nil
}

// ListInvoices returns the invoices visible to the token's user
func (c *Client) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := c.data(ctx, http.MethodGet, "/api/invoices", nil, &invoices)
	return invoices, err
}

// RecordPayment posts a new payment
func (c *Client) RecordPayment(ctx context.Context, form entity.PaymentForm) (entity.Payment, error) {
	var payment entity.Payment
	err := c.data(ctx, http.MethodPost, "/api/payments", form, &payment)
	return payment, err
}

// ListClients returns the client directory filtered by query
func (c *Client) ListClients(ctx context.Context, query string) ([]entity.VipClient, error) {
	path := "/api/clients"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var clients []entity.VipClient
	err := c.data(ctx, http.MethodGet, path, nil, &clients)
	return clients, err
}

// DeleteClient removes a client. The server refuses unless confirmed is true.
func (c *Client) DeleteClient(ctx context.Context, id string, confirmed bool) error {
	path := fmt.Sprintf("/api/clients/%s?confirm=%t", url.PathEscape(id), confirmed)
	return c.data(ctx, http.MethodDelete, path, nil, nil)
}

// Statement returns a client's statement
func (c *Client) Statement(ctx context.Context, clientID string) (entity.Statement, error) {
	var stmt entity.Statement
	err := c.data(ctx, http.MethodGet, "/api/statement?clientId="+url.QueryEscape(clientID), nil, &stmt)
	return stmt, err
}

// data calls an enveloped /api route and decodes its data field into out
func (c *Client) data(ctx context.Context, method, path string, body, out interface{}) error {
	var env envelope
	if err := c.call(ctx, method, path, body, &env); err != nil {
		return err
	}
	if !env.Success {
		return &APIError{Status: http.StatusOK, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// call performs one request. Non-2xx answers become *APIError, transport failures status 0.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &APIError{Status: 0, Message: "Network connection failed. Please check your internet connection."}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, resp.Header.Get("Content-Type"), raw)
		c.logger.Debug("API request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
