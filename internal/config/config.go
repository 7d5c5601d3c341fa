package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppEnv            string
	RazorpayKeyID     string
	RazorpayKeySecret string
	AllowedOrigin     string
	JWTSecret         string
}

// LoadConfig reads configuration from the environment (.env in development).
// Gateway credentials are mandatory: running without the key secret would
// produce a verifier that rejects every signature, so we refuse to start.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		AllowedOrigin:     os.Getenv("ALLOWED_ORIGIN"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Fatal("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}

	return cfg
}
