package handlers

import (
	"net/http"

	"chaikada_store_front/internal/checkout"
	"chaikada_store_front/internal/config"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

//
// 🟢 GET /api/orders/track?mobile=
//
// Guest order lookup by mobile number. The format is validated before any
// network call, same rule as checkout.
func (d *Deps) TrackOrders(c *gin.Context) {
	mobile := c.Query("mobile")
	if !checkout.IsValidMobile(mobile) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Enter a valid 10-digit mobile number",
			"fields": gin.H{"mobile": "Enter a valid 10-digit mobile number"},
		})
		return
	}

	orders, err := d.ordersFor(c).TrackByMobile(c.Request.Context(), mobile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🟢 GET /api/orders/track/qr?mobile=
//
// PNG QR of the tracking page URL, shown on the guest order confirmation.
func (d *Deps) TrackingQR(c *gin.Context) {
	mobile := c.Query("mobile")
	if !checkout.IsValidMobile(mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a valid 10-digit mobile number"})
		return
	}

	trackingURL := config.BaseURL() + "/track?mobile=" + mobile
	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

//
// 🟢 GET /api/orders/my
//
func (d *Deps) MyOrders(c *gin.Context) {
	orders, err := d.ordersFor(c).MyOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// 🚫 POST /api/orders/:id/cancel
//
// Eligibility is checked here so the UI fails fast, but the server remains
// the final arbiter — its rejection passes through untouched.
func (d *Deps) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	orderClient := d.ordersFor(c)

	order, err := orderClient.Order(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !order.CanCancel() {
		c.JSON(http.StatusConflict, gin.H{"error": "This order can no longer be cancelled"})
		return
	}

	if err := orderClient.CancelOrder(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
