package cashfree

import "encoding/json"

// CustomerDetails is the contact snapshot sent with an order.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// CreateOrderRequest opens a hosted-checkout order with the gateway.
type CreateOrderRequest struct {
	OrderID       string          `json:"order_id"`
	OrderAmount   float64         `json:"order_amount"`
	OrderCurrency string          `json:"order_currency"`
	OrderNote     string          `json:"order_note,omitempty"`
	Customer      CustomerDetails `json:"customer_details"`
	OrderMeta     OrderMeta       `json:"order_meta"`
}

// OrderMeta carries the browser return URL and the server notification URL.
type OrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
	NotifyURL string `json:"notify_url,omitempty"`
}

// Order statuses reported by the order endpoint.
const (
	OrderStatusActive     = "ACTIVE"
	OrderStatusPaid       = "PAID"
	OrderStatusExpired    = "EXPIRED"
	OrderStatusTerminated = "TERMINATED"
)

// Order is the gateway's view of an order.
type Order struct {
	OrderID          string  `json:"order_id"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	OrderStatus      string  `json:"order_status"`
	PaymentSessionID string  `json:"payment_session_id"`
}

// Payment statuses reported by the payment-list endpoint.
const (
	PaymentStatusPending      = "PENDING"
	PaymentStatusSuccess      = "SUCCESS"
	PaymentStatusFailed       = "FAILED"
	PaymentStatusCancelled    = "CANCELLED"
	PaymentStatusUserDropped  = "USER_DROPPED"
	PaymentStatusNotAttempted = "NOT_ATTEMPTED"
)

// Payment is one payment attempt against an order. PaymentMethod arrives
// either as a plain string or as a nested per-instrument object; it is kept
// raw here and converted once via ParseMethod.
type Payment struct {
	CFPaymentID    json.Number     `json:"cf_payment_id"`
	PaymentStatus  string          `json:"payment_status"`
	PaymentMessage string          `json:"payment_message"`
	PaymentMethod  json.RawMessage `json:"payment_method"`
	PaymentTime    string          `json:"payment_time"`
}

type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}
