package checkout

import (
	"context"
	"errors"
	"log"

	"chaikada_store_front/internal/cart"
	"chaikada_store_front/internal/events"
	"chaikada_store_front/internal/models"
	"chaikada_store_front/internal/upstream"
)

// State of one checkout attempt. The flow is linear with branches: Loading →
// Editing → Validating → Placing → Confirmed | Failed. Validation failures
// drop back to Editing; so do network failures during Placing, for a manual
// retry.
type State int

const (
	StateLoading State = iota
	StateEditing
	StateValidating
	StatePlacing
	StateConfirmed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StatePlacing:
		return "placing"
	case StateConfirmed:
		return "confirmed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrEmptyCart short-circuits checkout; callers redirect back to the cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidState means an operation was called out of flow order.
	ErrInvalidState = errors.New("operation not allowed in current checkout state")
)

// Terminal failure reasons. Verification failure and user cancellation both
// land on the failure page but must stay distinguishable.
const (
	ReasonCancelled    = "Payment was cancelled by user"
	ReasonVerifyFailed = "Payment verification failed"
)

// Outcome statuses.
const (
	StatusConfirmed       = "confirmed"
	StatusPaymentRequired = "payment_required"
	StatusPaid            = "paid"
	StatusFailed          = "failed"
)

// CartSource is the reconciliation facade as the orchestrator sees it.
type CartSource interface {
	Get(ctx context.Context) (models.Cart, error)
}

// GuestCart is the slice of the guest store the guest branch needs: project
// the order lines, then clear after a successful placement.
type GuestCart interface {
	OrderItems(ctx context.Context) ([]models.OrderItem, error)
	Clear(ctx context.Context) error
}

// OrderService is the slice of the remote order API the orchestrator drives.
type OrderService interface {
	CreateOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress, paymentMethod string) (models.Order, error)
	CreateRazorpayOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress) (upstream.RazorpayOrder, error)
	VerifyPayment(ctx context.Context, req upstream.VerifyRequest) (upstream.VerifyResult, error)
	CreateGuestOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress, contact models.GuestContact) (models.Order, error)
}

// Input is everything collected on the checkout page.
type Input struct {
	Address       models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod string                 `json:"paymentMethod"`
	GuestContact  *models.GuestContact   `json:"guestContact,omitempty"`
}

// GatewayCheckout is what the browser needs to open the hosted payment UI.
type GatewayCheckout struct {
	upstream.RazorpayOrder
	KeyID string `json:"keyId"`
}

// Outcome is the result of a placement or payment step.
type Outcome struct {
	Status      string           `json:"status"`
	Order       models.Order     `json:"order,omitempty"`
	Gateway     *GatewayCheckout `json:"razorpay,omitempty"`
	PaymentID   string           `json:"paymentId,omitempty"`
	Amount      float64          `json:"amount,omitempty"`
	TrackingURL string           `json:"trackingUrl,omitempty"`
	Reason      string           `json:"reason,omitempty"`
}

type Deps struct {
	Carts         CartSource
	Guest         GuestCart // nil for authenticated shoppers
	Orders        OrderService
	Bus           *events.Bus
	Authenticated bool
	RazorpayKeyID string
}

// Orchestrator drives one checkout attempt from "cart loaded" to a terminal
// confirmed or failed state.
type Orchestrator struct {
	deps    Deps
	state   State
	cart    models.Cart
	express bool
}

func New(deps Deps) *Orchestrator {
	return &Orchestrator{deps: deps, state: StateLoading}
}

func (o *Orchestrator) State() State { return o.state }

// Begin fetches the current cart through the facade. An empty cart is a
// terminal short-circuit: checkout requires at least one line.
func (o *Orchestrator) Begin(ctx context.Context) error {
	if o.state != StateLoading {
		return ErrInvalidState
	}

	loaded, err := o.deps.Carts.Get(ctx)
	if err != nil {
		return err
	}
	if len(loaded.Items) == 0 {
		o.state = StateFailed
		return ErrEmptyCart
	}

	o.cart = loaded
	o.state = StateEditing
	return nil
}

// BeginExpress seeds the attempt with a single product line carried directly
// from the product page, bypassing both cart stores. The summary computation
// is identical to the multi-item path.
func (o *Orchestrator) BeginExpress(product models.Product, variantSize string, quantity int) error {
	if o.state != StateLoading {
		return ErrInvalidState
	}
	if quantity < 1 {
		o.state = StateFailed
		return ErrEmptyCart
	}

	variant, ok := product.VariantBySize(variantSize)
	if !ok {
		return cart.ErrVariantNotFound
	}

	o.cart = models.Cart{Items: []models.CartItem{{
		Product:     product,
		VariantSize: variantSize,
		Quantity:    quantity,
		Price:       variant.Price,
	}}}
	o.cart.Recalculate()
	o.express = true
	o.state = StateEditing
	return nil
}

// Summary computes the order summary for the loaded cart.
func (o *Orchestrator) Summary() Summary {
	return Summarize(o.cart)
}

// Submit validates the collected input and places the order. Validation
// failures return a *ValidationError and drop back to Editing without any
// network call; placement failures also drop back to Editing so the shopper
// can retry manually.
func (o *Orchestrator) Submit(ctx context.Context, input Input) (Outcome, error) {
	if o.state != StateEditing {
		return Outcome{}, ErrInvalidState
	}

	o.state = StateValidating
	if errs := Validate(input, o.deps.Authenticated); len(errs) > 0 {
		o.state = StateEditing
		return Outcome{}, &ValidationError{Fields: errs}
	}

	o.state = StatePlacing
	var outcome Outcome
	var err error
	if o.deps.Authenticated {
		outcome, err = o.placeAuthenticated(ctx, input)
	} else {
		outcome, err = o.placeGuest(ctx, input)
	}
	if err != nil {
		o.state = StateEditing
		return Outcome{}, err
	}
	return outcome, nil
}

func (o *Orchestrator) placeAuthenticated(ctx context.Context, input Input) (Outcome, error) {
	// the server cart is authoritative for the normal path; express must send
	// its in-memory line or the server would bill the cart instead
	var items []models.OrderItem
	if o.express {
		items = o.cart.OrderItems()
	}

	if input.PaymentMethod == models.PaymentMethodOnline {
		rzp, err := o.deps.Orders.CreateRazorpayOrder(ctx, items, input.Address)
		if err != nil {
			return Outcome{}, err
		}
		log.Printf("💳 Gateway order created: %s (order %s)", rzp.RazorpayOrderID, rzp.OrderNumber)
		// stays in Placing until the gateway callback settles the attempt
		return Outcome{
			Status:  StatusPaymentRequired,
			Order:   models.Order{OrderID: rzp.OrderID, OrderNumber: rzp.OrderNumber},
			Gateway: &GatewayCheckout{RazorpayOrder: rzp, KeyID: o.deps.RazorpayKeyID},
		}, nil
	}

	order, err := o.deps.Orders.CreateOrder(ctx, items, input.Address, models.PaymentMethodCOD)
	if err != nil {
		return Outcome{}, err
	}
	// the server cart is emptied server-side; only broadcast
	o.deps.Bus.Publish()
	o.state = StateConfirmed
	log.Printf("✅ COD order placed: %s", order.OrderNumber)
	return Outcome{Status: StatusConfirmed, Order: order}, nil
}

func (o *Orchestrator) placeGuest(ctx context.Context, input Input) (Outcome, error) {
	contact := *input.GuestContact
	if contact.Name == "" {
		contact.Name = input.Address.FullName
	}

	// express carries its single line in memory; the normal path projects the
	// session cart
	items := o.cart.OrderItems()

	order, err := o.deps.Orders.CreateGuestOrder(ctx, items, input.Address, contact)
	if err != nil {
		return Outcome{}, err
	}

	if !o.express && o.deps.Guest != nil {
		if err := o.deps.Guest.Clear(ctx); err != nil {
			log.Printf("⚠️ Failed to clear guest cart after order %s: %v", order.OrderNumber, err)
		}
	}
	o.deps.Bus.Publish()
	o.state = StateConfirmed
	log.Printf("✅ Guest COD order placed: %s", order.OrderNumber)
	return Outcome{
		Status:      StatusConfirmed,
		Order:       order,
		TrackingURL: "/track?mobile=" + contact.Mobile,
	}, nil
}

// ConfirmPayment settles an online attempt with the gateway's signed callback.
// Verification failure (including a gateway-reported failure) is a terminal
// outcome carrying the order number and reason; only a transport-level error
// is returned for a manual retry.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, req upstream.VerifyRequest) (Outcome, error) {
	// the callback usually arrives on a fresh request, so Loading is allowed
	if o.state != StatePlacing && o.state != StateLoading {
		return Outcome{}, ErrInvalidState
	}

	result, err := o.deps.Orders.VerifyPayment(ctx, req)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			o.state = StateFailed
			reason := apiErr.Message
			if reason == "" {
				reason = ReasonVerifyFailed
			}
			return Outcome{
				Status: StatusFailed,
				Order:  models.Order{OrderID: req.OrderID},
				Reason: reason,
			}, nil
		}
		return Outcome{}, err
	}

	if !result.Verified {
		o.state = StateFailed
		reason := result.Message
		if reason == "" {
			reason = ReasonVerifyFailed
		}
		log.Printf("❌ Payment verification failed for order %s", req.OrderID)
		return Outcome{
			Status: StatusFailed,
			Order:  models.Order{OrderID: req.OrderID, OrderNumber: result.OrderNumber},
			Reason: reason,
		}, nil
	}

	o.deps.Bus.Publish()
	o.state = StateConfirmed
	log.Printf("✅ Payment verified for order %s (payment %s)", result.OrderNumber, result.PaymentID)
	return Outcome{
		Status:    StatusPaid,
		Order:     models.Order{OrderID: result.OrderID, OrderNumber: result.OrderNumber},
		Amount:    result.Amount,
		PaymentID: result.PaymentID,
	}, nil
}

// CancelPayment records the shopper dismissing the hosted payment UI. No
// verify call is made; the already-created order stays pending server-side for
// a later retry or support reconciliation.
func (o *Orchestrator) CancelPayment(orderID, orderNumber string) Outcome {
	o.state = StateFailed
	log.Printf("🚫 Payment cancelled by user for order %s", orderNumber)
	return Outcome{
		Status: StatusFailed,
		Order:  models.Order{OrderID: orderID, OrderNumber: orderNumber},
		Reason: ReasonCancelled,
	}
}
