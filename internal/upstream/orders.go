package upstream

import (
	"context"
	"net/http"
	"net/url"

	"chaikada_store_front/internal/models"
)

// OrderClient wraps the server order API.
type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

// RazorpayOrder is the gateway order handle the server creates before the
// hosted checkout opens. The underlying order already exists server-side and
// stays pending if payment later fails or is cancelled.
type RazorpayOrder struct {
	OrderID         string  `json:"orderId"`
	OrderNumber     string  `json:"orderNumber"`
	RazorpayOrderID string  `json:"razorpayOrderId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// VerifyRequest carries the gateway callback's three signed fields plus our
// order id, exactly as the verify endpoint expects them.
type VerifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderID           string `json:"orderId"`
}

type VerifyResult struct {
	Verified    bool    `json:"verified"`
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	Amount      float64 `json:"amount"`
	PaymentID   string  `json:"paymentId"`
	Message     string  `json:"message"`
}

// CreateOrder places an order for the authenticated shopper. With nil items
// the server builds the order from its own cart; express buy passes its single
// line explicitly so the billed order matches what was summarized.
func (o *OrderClient) CreateOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress, paymentMethod string) (models.Order, error) {
	body := struct {
		Items           []models.OrderItem     `json:"items,omitempty"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}{items, address, paymentMethod}

	var order models.Order
	if err := o.client.do(ctx, http.MethodPost, "/orders/create", body, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// CreateRazorpayOrder follows the same items contract as CreateOrder.
func (o *OrderClient) CreateRazorpayOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress) (RazorpayOrder, error) {
	body := struct {
		Items           []models.OrderItem     `json:"items,omitempty"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	}{items, address}

	var rzp RazorpayOrder
	if err := o.client.do(ctx, http.MethodPost, "/orders/razorpay/create", body, &rzp); err != nil {
		return RazorpayOrder{}, err
	}
	return rzp, nil
}

func (o *OrderClient) VerifyPayment(ctx context.Context, req VerifyRequest) (VerifyResult, error) {
	var result VerifyResult
	if err := o.client.do(ctx, http.MethodPost, "/orders/razorpay/verify", req, &result); err != nil {
		return VerifyResult{}, err
	}
	return result, nil
}

func (o *OrderClient) CreateGuestOrder(ctx context.Context, items []models.OrderItem, address models.ShippingAddress, contact models.GuestContact) (models.Order, error) {
	body := struct {
		Items           []models.OrderItem     `json:"items"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		GuestContact    models.GuestContact    `json:"guestContact"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}{items, address, contact, models.PaymentMethodCOD}

	var order models.Order
	if err := o.client.do(ctx, http.MethodPost, "/orders/guest", body, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// TrackByMobile is the guest lookup: all orders placed against a mobile
// number. Format validation happens before this call.
func (o *OrderClient) TrackByMobile(ctx context.Context, mobile string) ([]models.Order, error) {
	var orders []models.Order
	path := "/orders/track?mobile=" + url.QueryEscape(mobile)
	if err := o.client.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order owned by the authenticated shopper.
func (o *OrderClient) Order(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	if err := o.client.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (o *OrderClient) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := o.client.do(ctx, http.MethodGet, "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder requests cancellation. The server decides eligibility; a
// rejection comes back as an APIError and leaves local state untouched.
func (o *OrderClient) CancelOrder(ctx context.Context, orderID string) error {
	return o.client.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/cancel", nil, nil)
}
