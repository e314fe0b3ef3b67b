package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/nandanicollection/storefront/internal/cart"
	"github.com/nandanicollection/storefront/internal/commerce"
	"github.com/nandanicollection/storefront/internal/coupon"
	"github.com/nandanicollection/storefront/internal/events"
	kafkax "github.com/nandanicollection/storefront/internal/kafka"
	"github.com/nandanicollection/storefront/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty")

// RemoteError carries an order-creation rejection message from the commerce
// API verbatim; the shopper can correct and retry.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

type PaymentRequest struct {
	Amount        int
	TransactionID string
	Name          string
	Mobile        string
}

// PaymentInitiator obtains a hosted-checkout redirect URL for an order.
type PaymentInitiator interface {
	Initiate(ctx context.Context, req PaymentRequest) (string, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, req commerce.OrderRequest) (*commerce.OrderResult, error)
}

type EventSink interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// Orchestrator drives the two-path order submission: validate, price, create
// the order upstream, then either finish as COD or hand off to the payment
// gateway.
type Orchestrator struct {
	Carts    *cart.Service
	Coupons  *coupon.Engine
	Orders   OrderCreator
	Payments PaymentInitiator
	Producer EventSink
	Service  string
}

type Outcome struct {
	State       State         `json:"state"`
	OrderID     int64         `json:"order_id,omitempty"`
	RedirectURL string        `json:"url,omitempty"`
	Quote       pricing.Quote `json:"quote"`
}

// Quote prices the current cart. The applied coupon is re-validated against
// the live subtotal so a cart change never leaves a stale discount standing.
func (o *Orchestrator) Quote(ctx context.Context, sessionID string) (pricing.Quote, *coupon.Applied, error) {
	bag, err := o.Carts.Bag(ctx, sessionID)
	if err != nil {
		return pricing.Quote{}, nil, err
	}
	if bag.Empty() {
		return pricing.Quote{}, nil, ErrEmptyCart
	}
	subtotal := bag.Subtotal()
	applied, err := o.Coupons.Revalidate(ctx, sessionID, subtotal)
	if err != nil {
		return pricing.Quote{}, nil, err
	}
	discount := 0
	if applied != nil {
		discount = applied.DiscountAmount
	}
	return pricing.Compute(subtotal, discount), applied, nil
}

// Submit runs the submission state machine. Failure paths return to IDLE
// with the cart intact; the cart is cleared only once an order is terminal
// on our side (COD confirmed, or a gateway redirect URL in hand).
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, form Form, method string) (Outcome, error) {
	bag, err := o.Carts.Bag(ctx, sessionID)
	if err != nil {
		return Outcome{State: StateIdle}, err
	}
	// Empty cart short-circuits before any validation or network call.
	if bag.Empty() {
		return Outcome{State: StateIdle}, ErrEmptyCart
	}
	if err := form.Validate(); err != nil {
		return Outcome{State: StateIdle}, err
	}
	if method != "upi" && method != "cod" {
		return Outcome{State: StateIdle}, fmt.Errorf("unknown payment method %q", method)
	}

	state := StateIdle
	if !CanTransition(state, StateSubmitting) {
		return Outcome{State: state}, fmt.Errorf("cannot submit from %s", state)
	}
	state = StateSubmitting

	subtotal := bag.Subtotal()
	applied, err := o.Coupons.Revalidate(ctx, sessionID, subtotal)
	if err != nil {
		return Outcome{State: StateIdle}, err
	}
	discount, code := 0, ""
	if applied != nil {
		discount, code = applied.DiscountAmount, applied.Code
	}
	quote := pricing.Compute(subtotal, discount)

	res, err := o.Orders.CreateOrder(ctx, orderRequest(form, method, quote, code, bag.Lines))
	if err != nil {
		return Outcome{State: StateIdle, Quote: quote}, fmt.Errorf("order submission failed: %w", err)
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "something went wrong while creating the order"
		}
		return Outcome{State: StateIdle, Quote: quote}, &RemoteError{Message: msg}
	}

	if method == "cod" {
		if err := o.Carts.ClearBag(ctx, sessionID); err != nil {
			return Outcome{State: StateIdle, Quote: quote}, err
		}
		o.publishCompleted(res.OrderID, method, quote, code, len(bag.Lines))
		return Outcome{State: StateCompleted, OrderID: res.OrderID, Quote: quote}, nil
	}

	// Online payment: the order now exists upstream in an unpaid state.
	// If initiation fails the cart is deliberately kept; expiring the unpaid
	// order is the backend's reconciliation job.
	url, err := o.Payments.Initiate(ctx, PaymentRequest{
		Amount:        quote.Total,
		TransactionID: fmt.Sprintf("NDN-%d", res.OrderID),
		Name:          form.Name,
		Mobile:        form.Phone,
	})
	if err != nil || url == "" {
		if err == nil {
			err = errors.New("payment gateway returned no redirect url")
		}
		return Outcome{State: StateIdle, OrderID: res.OrderID, Quote: quote},
			fmt.Errorf("payment initiation failed: %w", err)
	}

	if err := o.Carts.ClearBag(ctx, sessionID); err != nil {
		return Outcome{State: StateIdle, OrderID: res.OrderID, Quote: quote}, err
	}
	o.publishCompleted(res.OrderID, method, quote, code, len(bag.Lines))
	return Outcome{State: StateAwaitingRedirect, OrderID: res.OrderID, RedirectURL: url, Quote: quote}, nil
}

func orderRequest(form Form, method string, q pricing.Quote, couponCode string, lines []cart.Line) commerce.OrderRequest {
	items := make([]commerce.OrderItem, 0, len(lines))
	for _, l := range lines {
		var sizeID *int64
		if l.SizeID != 0 {
			id := l.SizeID
			sizeID = &id
		}
		items = append(items, commerce.OrderItem{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			SizeID:    sizeID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Size:      l.Size,
			Color:     l.Color,
		})
	}
	return commerce.OrderRequest{
		FullName:        form.Name,
		PhoneNumber:     "+91" + form.Phone,
		Address:         form.Address,
		Pincode:         form.Pincode,
		PaymentMethod:   method,
		TotalAmount:     q.Total,
		ShippingCharges: q.Shipping,
		CouponCode:      couponCode,
		Items:           items,
	}
}

func (o *Orchestrator) publishCompleted(orderID int64, method string, q pricing.Quote, couponCode string, itemCount int) {
	if o.Producer == nil {
		return
	}
	ev := events.Envelope{
		EventID:       uuid.NewString(),
		EventType:     events.EventCheckoutCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      o.Service,
		CorrelationID: fmt.Sprintf("%d", orderID),
		Payload: kafkax.MustMarshal(events.CheckoutCompletedPayload{
			OrderID:         orderID,
			PaymentMethod:   method,
			TotalAmount:     q.Total,
			ShippingCharges: q.Shipping,
			CouponCode:      couponCode,
			ItemCount:       itemCount,
		}),
	}
	o.Producer.Publish(events.PartitionKey(ev.CorrelationID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventCheckoutCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
