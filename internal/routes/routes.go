package routes

import (
	"os"
	"strings"
	"time"

	"chaikada_store_front/internal/handlers"
	"chaikada_store_front/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

func RegisterRoutes(r *gin.Engine, d *handlers.Deps, sessionStore *sessions.CookieStore) {
	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := os.Getenv("STOREFRONT_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	api.Use(middleware.GuestSession(sessionStore), middleware.OptionalAuth())

	cart := api.Group("/cart")
	{
		cart.GET("", d.GetCart)
		cart.POST("/add", d.AddToCart)
		cart.PATCH("/update", d.UpdateCartItem)
		cart.DELETE("/remove", d.RemoveFromCart)
		cart.DELETE("/clear", d.ClearCart)
		cart.GET("/count", d.CartCount)
		cart.GET("/ws", d.CartWebSocket)
	}

	checkout := api.Group("/checkout")
	{
		checkout.GET("/config", d.CheckoutConfig)
		checkout.GET("/draft", d.GetAddressDraft)
		checkout.PUT("/draft", d.SaveAddressDraft)
		checkout.POST("/place", middleware.CheckoutRateLimit(), d.PlaceOrder)
		checkout.POST("/express", middleware.CheckoutRateLimit(), d.ExpressCheckout)
		checkout.POST("/payment/verify", d.VerifyPayment)
		checkout.POST("/payment/cancel", d.CancelPayment)
	}

	orders := api.Group("/orders")
	{
		orders.GET("/track", d.TrackOrders)
		orders.GET("/track/qr", d.TrackingQR)
		orders.GET("/my", middleware.AuthRequired(), d.MyOrders)
		orders.POST("/:id/cancel", middleware.AuthRequired(), d.CancelOrder)
	}

	products := api.Group("/products")
	{
		products.GET("", d.ListProducts)
		products.GET("/:id", d.GetProduct)
	}
}
