package events

import (
	"encoding/json"
	"time"
)

const (
	EventCheckoutCompleted = "CheckoutCompleted"
	EventPaymentResolved   = "PaymentResolved"
)

const (
	TopicCheckoutCompleted = "storefront.checkout.completed"
	TopicPaymentResolved   = "storefront.payment.resolved"
)

// Envelope is the wire format shared by every storefront event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type CheckoutCompletedPayload struct {
	OrderID         int64  `json:"order_id"`
	PaymentMethod   string `json:"payment_method"`
	TotalAmount     int    `json:"total_amount"`
	ShippingCharges int    `json:"shipping_charges"`
	CouponCode      string `json:"coupon_code,omitempty"`
	ItemCount       int    `json:"item_count"`
}

type PaymentResolvedPayload struct {
	TransactionID string `json:"transaction_id"`
	State         string `json:"state"`
	AmountMinor   int64  `json:"amount_minor,omitempty"`
}

// Partition key = transaction/order id so events for one order stay ordered.
func PartitionKey(id string) []byte { return []byte(id) }
