package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"chaikada_store_front/internal/cache"
	"chaikada_store_front/internal/upstream"

	"github.com/gin-gonic/gin"
)

const productCacheTTL = 60 * time.Second

//
// 🟢 GET /api/products
//
// Thin read-through proxy over the remote catalog with a short Redis cache.
func (d *Deps) ListProducts(c *gin.Context) {
	category := c.Query("category")
	key := "products:" + category

	if cached, err := cache.GetCache(c.Request.Context(), key); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	products, err := upstream.NewProductClient(d.API).List(c.Request.Context(), category)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, _ := json.Marshal(gin.H{"products": products})
	_ = cache.SetCache(c.Request.Context(), key, string(payload), productCacheTTL)
	c.Data(http.StatusOK, "application/json", payload)
}

//
// 🟢 GET /api/products/:id
//
func (d *Deps) GetProduct(c *gin.Context) {
	id := c.Param("id")
	key := "product:" + id

	if cached, err := cache.GetCache(c.Request.Context(), key); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	product, err := upstream.NewProductClient(d.API).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, _ := json.Marshal(product)
	_ = cache.SetCache(c.Request.Context(), key, string(payload), productCacheTTL)
	c.Data(http.StatusOK, "application/json", payload)
}
