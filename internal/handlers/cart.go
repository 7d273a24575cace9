package handlers

import (
	"net/http"

	"chaikada_store_front/internal/checkout"
	"chaikada_store_front/internal/middleware"
	"chaikada_store_front/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🟢 GET /api/cart
//
func (d *Deps) GetCart(c *gin.Context) {
	cart, err := d.facadeFor(c).Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":    cart,
		"summary": checkout.Summarize(cart),
	})
}

//
// 🟢 POST /api/cart/add
//
func (d *Deps) AddToCart(c *gin.Context) {
	var input struct {
		Product     models.Product `json:"product" binding:"required"`
		VariantSize string         `json:"variantSize" binding:"required"`
		Quantity    int            `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	cart, err := d.facadeFor(c).Add(c.Request.Context(), input.Product, input.VariantSize, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to cart",
		"cart":    cart,
		"summary": checkout.Summarize(cart),
	})
}

//
// 🟢 PATCH /api/cart/update
//
func (d *Deps) UpdateCartItem(c *gin.Context) {
	var input struct {
		ProductID   string `json:"productId" binding:"required"`
		VariantSize string `json:"variantSize" binding:"required"`
		Quantity    int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cart, err := d.facadeFor(c).Update(c.Request.Context(), input.ProductID, input.VariantSize, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"cart":    cart,
		"summary": checkout.Summarize(cart),
	})
}

//
// ❌ DELETE /api/cart/remove
//
func (d *Deps) RemoveFromCart(c *gin.Context) {
	var input struct {
		ProductID   string `json:"productId" binding:"required"`
		VariantSize string `json:"variantSize" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	cart, err := d.facadeFor(c).Remove(c.Request.Context(), input.ProductID, input.VariantSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from cart",
		"cart":    cart,
		"summary": checkout.Summarize(cart),
	})
}

//
// 🧹 DELETE /api/cart/clear
//
// Guest sessions only: the server cart is emptied server-side after an order,
// never from here.
func (d *Deps) ClearCart(c *gin.Context) {
	if c.GetBool(middleware.CtxIsAuthenticated) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart clear is only available for guest sessions"})
		return
	}

	if err := d.guestStoreFor(c).Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	d.Bus.Publish()

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

//
// 🟢 GET /api/cart/count
//
func (d *Deps) CartCount(c *gin.Context) {
	count, err := d.facadeFor(c).ItemCount(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
