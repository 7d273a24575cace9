package handlers

import (
	"errors"
	"net/http"

	"chaikada_store_front/internal/cart"
	"chaikada_store_front/internal/checkout"
	"chaikada_store_front/internal/events"
	"chaikada_store_front/internal/middleware"
	"chaikada_store_front/internal/upstream"

	"github.com/gin-gonic/gin"
)

// Deps wires the handlers to their collaborators.
type Deps struct {
	API           *upstream.Client // bare client; tokens are attached per request
	Storage       cart.Storage
	Bus           *events.Bus
	RazorpayKeyID string
}

func (d *Deps) clientFor(c *gin.Context) *upstream.Client {
	if token := c.GetString(middleware.CtxAuthToken); token != "" {
		return d.API.WithToken(token)
	}
	return d.API
}

func (d *Deps) guestStoreFor(c *gin.Context) *cart.GuestStore {
	return cart.NewGuestStore(d.Storage, c.GetString(middleware.CtxSessionID))
}

// backendFor is the single injection point deciding which cart is
// authoritative for this request. No operation branches on the auth flag
// after this.
func (d *Deps) backendFor(c *gin.Context) cart.Backend {
	if c.GetBool(middleware.CtxIsAuthenticated) {
		return upstream.NewRemoteCart(d.clientFor(c))
	}
	return d.guestStoreFor(c)
}

func (d *Deps) facadeFor(c *gin.Context) *cart.Facade {
	return cart.NewFacade(d.backendFor(c), d.Bus)
}

func (d *Deps) ordersFor(c *gin.Context) *upstream.OrderClient {
	return upstream.NewOrderClient(d.clientFor(c))
}

// respondError is the one place core failures become user-facing messages.
// Server-supplied display text is passed through verbatim; everything else
// gets a generic fallback so the shopper can retry manually.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Selected size is not available for this product"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty", "redirect": "/cart"})
	default:
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			status := apiErr.StatusCode
			if status < http.StatusBadRequest {
				status = http.StatusBadGateway
			}
			msg := apiErr.Message
			if msg == "" {
				msg = "Something went wrong. Please try again"
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Something went wrong. Please try again"})
	}
}
