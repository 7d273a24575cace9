package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found — falling back to system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}
}

// StoreAPIURL returns the base URL of the remote commerce API.
func StoreAPIURL() string {
	url := os.Getenv("STORE_API_URL")
	if url == "" {
		url = "http://localhost:5000/api"
	}
	return url
}

// RazorpayKeyID is the public gateway key handed to the browser checkout.
func RazorpayKeyID() string {
	return os.Getenv("RAZORPAY_KEY_ID")
}

func BaseURL() string {
	url := os.Getenv("BASE_URL")
	if url == "" {
		url = "http://localhost:8080"
	}
	return url
}

func SessionSecret() string {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "chaikada_dev_session"
	}
	return secret
}

func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}
	return []byte(secret)
}
