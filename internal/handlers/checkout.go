package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chaikada_store_front/internal/checkout"
	"chaikada_store_front/internal/middleware"
	"chaikada_store_front/internal/models"
	"chaikada_store_front/internal/upstream"

	"github.com/gin-gonic/gin"
)

const draftTTL = 30 * 24 * time.Hour

func (d *Deps) orchestratorFor(c *gin.Context) *checkout.Orchestrator {
	isAuth := c.GetBool(middleware.CtxIsAuthenticated)
	deps := checkout.Deps{
		Carts:         d.facadeFor(c),
		Orders:        d.ordersFor(c),
		Bus:           d.Bus,
		Authenticated: isAuth,
		RazorpayKeyID: d.RazorpayKeyID,
	}
	if !isAuth {
		deps.Guest = d.guestStoreFor(c)
	}
	return checkout.New(deps)
}

//
// 🟢 GET /api/checkout/config
//
func (d *Deps) CheckoutConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"razorpayKeyId":     d.RazorpayKeyID,
		"currency":          "INR",
		"freeShippingAbove": checkout.FreeShippingAbove,
		"shippingFee":       checkout.FlatShippingFee,
	})
}

func draftKey(c *gin.Context) string {
	if c.GetBool(middleware.CtxIsAuthenticated) {
		return "draft:" + c.GetString(middleware.CtxUserID)
	}
	return "draft:sess:" + c.GetString(middleware.CtxSessionID)
}

//
// 🟢 GET /api/checkout/draft
//
// Address draft is a best-effort convenience cache so a returning shopper
// does not re-type; it is never part of the order's source of truth.
func (d *Deps) GetAddressDraft(c *gin.Context) {
	data, err := d.Storage.Get(c.Request.Context(), draftKey(c))
	if err != nil || data == "" || !json.Valid([]byte(data)) {
		c.JSON(http.StatusOK, gin.H{"draft": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": json.RawMessage(data)})
}

//
// 🟢 PUT /api/checkout/draft
//
func (d *Deps) SaveAddressDraft(c *gin.Context) {
	var draft models.ShippingAddress
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	raw, _ := json.Marshal(draft)
	if err := d.Storage.Set(c.Request.Context(), draftKey(c), string(raw), draftTTL); err != nil {
		// draft persistence is best effort; never block the shopper on it
		c.JSON(http.StatusOK, gin.H{"saved": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

//
// 💳 POST /api/checkout/place
//
func (d *Deps) PlaceOrder(c *gin.Context) {
	var input checkout.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	orch := d.orchestratorFor(c)
	if err := orch.Begin(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	d.submit(c, orch, input)
}

//
// 💳 POST /api/checkout/express
//
// Express buy carries a single product line straight from the product page,
// bypassing both cart stores.
func (d *Deps) ExpressCheckout(c *gin.Context) {
	var input struct {
		checkout.Input
		Product     models.Product `json:"product" binding:"required"`
		VariantSize string         `json:"variantSize" binding:"required"`
		Quantity    int            `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	orch := d.orchestratorFor(c)
	if err := orch.BeginExpress(input.Product, input.VariantSize, input.Quantity); err != nil {
		respondError(c, err)
		return
	}

	d.submit(c, orch, input.Input)
}

func (d *Deps) submit(c *gin.Context, orch *checkout.Orchestrator, input checkout.Input) {
	outcome, err := orch.Submit(c.Request.Context(), input)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "Please fix the highlighted fields",
				"fields": verr.Fields,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

//
// 💳 POST /api/checkout/payment/verify
//
func (d *Deps) VerifyPayment(c *gin.Context) {
	var req upstream.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outcome, err := d.orchestratorFor(c).ConfirmPayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

//
// 🚫 POST /api/checkout/payment/cancel
//
// The shopper dismissed the hosted payment UI. The order already exists and
// stays pending server-side; no verify call is made.
func (d *Deps) CancelPayment(c *gin.Context) {
	var req struct {
		OrderID     string `json:"orderId"`
		OrderNumber string `json:"orderNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	outcome := d.orchestratorFor(c).CancelPayment(req.OrderID, req.OrderNumber)
	c.JSON(http.StatusOK, outcome)
}
