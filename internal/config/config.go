package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from environment
// variables. Absence of any optional key degrades the dependent component to
// a fixed-failure response instead of crashing the process; only DATABASE_URL
// is required at startup.
type Config struct {
	HTTPPort    string
	DatabaseURL string

	// AI completion service.
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	AITimeout         time.Duration

	// WhatsApp Cloud API.
	WhatsAppAPIToken      string
	WhatsAppPhoneNumberID string
	WhatsAppVerifyToken   string
	WhatsAppAPIBaseURL    string
	SendTimeout           time.Duration

	// Admin dashboard API.
	AdminUsername   string
	AdminPassword   string
	JWTSecret       string
	TokenExpiration time.Duration

	// Conversation context windowing.
	HistoryFetchLimit int
	HistoryTurnCap    int

	// Ceiling for one background webhook-processing run.
	PipelineTimeout time.Duration
}

// LoadConfig loads configuration from environment variables. It looks for a
// .env file first, then reads the actual environment with defaults applied.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development).
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_MAX_TOKENS", 300)
	v.SetDefault("OPENAI_TEMPERATURE", 0.6)
	v.SetDefault("AI_TIMEOUT_SECONDS", 30)
	v.SetDefault("WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v19.0")
	v.SetDefault("SEND_TIMEOUT_SECONDS", 15)
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("HISTORY_FETCH_LIMIT", 20)
	v.SetDefault("HISTORY_TURN_CAP", 10)
	v.SetDefault("PIPELINE_TIMEOUT_SECONDS", 120)

	dbURL := v.GetString("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	cfg := &Config{
		HTTPPort:    v.GetString("HTTP_PORT"),
		DatabaseURL: dbURL,

		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),
		OpenAIMaxTokens:   v.GetInt("OPENAI_MAX_TOKENS"),
		OpenAITemperature: v.GetFloat64("OPENAI_TEMPERATURE"),
		AITimeout:         time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,

		WhatsAppAPIToken:      v.GetString("WHATSAPP_API_TOKEN"),
		WhatsAppPhoneNumberID: v.GetString("WHATSAPP_PHONE_NUMBER_ID"),
		WhatsAppVerifyToken:   v.GetString("WHATSAPP_VERIFY_TOKEN"),
		WhatsAppAPIBaseURL:    v.GetString("WHATSAPP_API_BASE_URL"),
		SendTimeout:           time.Duration(v.GetInt("SEND_TIMEOUT_SECONDS")) * time.Second,

		AdminUsername:   v.GetString("ADMIN_USERNAME"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenExpiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,

		HistoryFetchLimit: v.GetInt("HISTORY_FETCH_LIMIT"),
		HistoryTurnCap:    v.GetInt("HISTORY_TURN_CAP"),

		PipelineTimeout: time.Duration(v.GetInt("PIPELINE_TIMEOUT_SECONDS")) * time.Second,
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. AI replies degrade to a fixed not-configured response.")
	}
	if cfg.WhatsAppAPIToken == "" || cfg.WhatsAppPhoneNumberID == "" {
		log.Println("Warning: WhatsApp send credentials not set. Outbound sends will be skipped.")
	}
	if cfg.WhatsAppVerifyToken == "" {
		log.Println("Warning: WHATSAPP_VERIFY_TOKEN not set. Webhook verification will always fail.")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("Warning: admin credentials not set. Admin API is disabled.")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Admin logins will only work with Basic credentials.")
	}

	return cfg, nil
}
