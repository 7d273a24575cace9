package checkout

import "chaikada_store_front/internal/models"

// Shipping policy. The cart view and the checkout view both go through
// Summarize, so the threshold can never drift between the two.
const (
	FreeShippingAbove = 500.0
	FlatShippingFee   = 50.0
)

// ShippingFee is free at or above the threshold, flat below it.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingAbove {
		return 0
	}
	return FlatShippingFee
}

// Summary is the order summary shown on both the cart and checkout pages.
type Summary struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

func Summarize(cart models.Cart) Summary {
	cart.Recalculate()
	fee := ShippingFee(cart.TotalPrice)
	return Summary{
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.TotalPrice,
		Shipping:  fee,
		Total:     cart.TotalPrice + fee,
	}
}
