package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret         string
	SessionTTL        time.Duration
	AdminDiscordIDs   []string
	AdminPasswordHash string

	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	FeedURLs     []string
	FeedInterval time.Duration

	VoteCooldown time.Duration

	MintContractAddress string
	MintChainID         int64
	MintPriceNavax      string
	MintMaxSupply       int
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret:         getEnv("JWT_SECRET", "12345"),
		AdminDiscordIDs:   splitList(os.Getenv("ADMIN_DISCORD_IDS")),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		DiscordClientID:     os.Getenv("DISCORD_CLIENT_ID"),
		DiscordClientSecret: os.Getenv("DISCORD_CLIENT_SECRET"),
		DiscordRedirectURL:  getEnv("DISCORD_REDIRECT_URL", "http://localhost:8080/auth/discord/callback"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "avaxboard"),

		FeedURLs: splitList(getEnv("NEWS_FEED_URLS", "https://medium.com/feed/avalancheavax")),

		MintContractAddress: os.Getenv("MINT_CONTRACT_ADDRESS"),
		MintPriceNavax:      getEnv("MINT_PRICE_NAVAX", "500000000"),
	}

	// Parsing durations
	var err error
	cfg.SessionTTL, err = time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.FeedInterval, err = time.ParseDuration(getEnv("NEWS_FEED_INTERVAL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid NEWS_FEED_INTERVAL: %w", err)
	}
	cfg.VoteCooldown, err = time.ParseDuration(getEnv("VOTE_COOLDOWN", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid VOTE_COOLDOWN: %w", err)
	}

	if _, err := fmt.Sscanf(getEnv("MINT_CHAIN_ID", "43114"), "%d", &cfg.MintChainID); err != nil {
		return nil, fmt.Errorf("invalid MINT_CHAIN_ID: %w", err)
	}
	if _, err := fmt.Sscanf(getEnv("MINT_MAX_SUPPLY", "10000"), "%d", &cfg.MintMaxSupply); err != nil {
		return nil, fmt.Errorf("invalid MINT_MAX_SUPPLY: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
