package main

import (
	"log"
	"os"

	"chaikada_store_front/internal/cache"
	"chaikada_store_front/internal/config"
	"chaikada_store_front/internal/events"
	"chaikada_store_front/internal/handlers"
	"chaikada_store_front/internal/middleware"
	"chaikada_store_front/internal/routes"
	"chaikada_store_front/internal/upstream"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if err := cache.InitRedis(); err != nil {
		log.Fatalf("❌ Redis initialisation failed: %v", err)
	}
	defer cache.CloseRedis()

	if config.RazorpayKeyID() == "" {
		log.Println("⚠️ RAZORPAY_KEY_ID not set — online payment will be unavailable")
	}

	deps := &handlers.Deps{
		API:           upstream.NewClient(config.StoreAPIURL()),
		Storage:       cache.RedisStorage{},
		Bus:           events.NewBus(),
		RazorpayKeyID: config.RazorpayKeyID(),
	}
	sessionStore := middleware.NewSessionStore(config.SessionSecret())

	r := gin.Default()
	routes.RegisterRoutes(r, deps, sessionStore)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Chaikada storefront running on port", port)
	r.Run(":" + port)
}
