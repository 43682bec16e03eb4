package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/smallbiznis/givehope/internal/config"
)

const (
	sandboxBaseURL    = "https://sandbox.cashfree.com/pg"
	productionBaseURL = "https://api.cashfree.com/pg"

	apiVersion = "2023-08-01"
)

var (
	// ErrNotConfigured indicates missing gateway credentials.
	ErrNotConfigured = errors.New("cashfree_not_configured")
	// ErrOrderNotFound indicates the gateway does not know the order.
	ErrOrderNotFound = errors.New("cashfree_order_not_found")
)

// API is the subset of the Cashfree PG API this service consumes.
type API interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error)
	GetOrder(ctx context.Context, orderID string) (Order, error)
	ListOrderPayments(ctx context.Context, orderID string) ([]Payment, error)
}

type Client struct {
	appID     string
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewClient builds a gateway client from configuration. The returned client
// fails every call with ErrNotConfigured when credentials are absent rather
// than failing process startup.
func NewClient(cfg config.GatewayConfig) *Client {
	baseURL := sandboxBaseURL
	if cfg.IsProduction() {
		baseURL = productionBaseURL
	}
	return &Client{
		appID:     strings.TrimSpace(cfg.AppID),
		secretKey: strings.TrimSpace(cfg.SecretKey),
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 12 * time.Second},
	}
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var order Order
	if err := c.doRequest(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return Order{}, err
	}
	if order.OrderID == "" || order.PaymentSessionID == "" {
		return Order{}, errors.New("cashfree_response_invalid")
	}
	return order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (Order, error) {
	var order Order
	if err := c.doRequest(ctx, http.MethodGet, "/orders/"+orderID, nil, &order); err != nil {
		return Order{}, err
	}
	return order, nil
}

func (c *Client) ListOrderPayments(ctx context.Context, orderID string) ([]Payment, error) {
	var payments []Payment
	if err := c.doRequest(ctx, http.MethodGet, "/orders/"+orderID+"/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	if c.appID == "" || c.secretKey == "" {
		return ErrNotConfigured
	}

	var bodyReader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(encoded)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)
	req.Header.Set("x-api-version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrOrderNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var gatewayErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&gatewayErr); err != nil {
			return fmt.Errorf("cashfree_request_failed: status %d", resp.StatusCode)
		}
		message := strings.TrimSpace(gatewayErr.Message)
		if message == "" {
			message = "cashfree_request_failed"
		}
		return errors.New(message)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
