package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Values loaded from the environment (.env in development)
var (
	ServerPort string
	ClientUrl  string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string
	DiscordBotToken     string
	DiscordGuildID      string
	AllowlistRoleID     string
	AdminRoleID         string
	// DiscordApiUrl is overridable so tests can point the side channel at a fake server
	DiscordApiUrl     string
	DiscordWebhookURL string

	DefaultAdminDiscordID string
	QuestionsSeedFile     string
)

// Init loads the .env file if present and resolves all configuration values
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "portal")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "portal")
	PostgresDB = getEnv("POSTGRES_DB", "portal")

	RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "change-me-in-production")

	DiscordClientID = getEnv("DISCORD_CLIENT_ID", "")
	DiscordClientSecret = getEnv("DISCORD_CLIENT_SECRET", "")
	DiscordRedirectURL = getEnv("DISCORD_REDIRECT_URL", "http://localhost:8080/api/v1/auth/discord/callback")
	DiscordBotToken = getEnv("DISCORD_BOT_TOKEN", "")
	DiscordGuildID = getEnv("DISCORD_GUILD_ID", "")
	AllowlistRoleID = getEnv("ALLOWLIST_ROLE_ID", "")
	AdminRoleID = getEnv("ADMIN_ROLE_ID", "")
	DiscordApiUrl = getEnv("DISCORD_API_URL", "https://discord.com/api/v10")
	DiscordWebhookURL = getEnv("DISCORD_WEBHOOK_URL", "")

	DefaultAdminDiscordID = getEnv("DEFAULT_ADMIN_DISCORD_ID", "")
	QuestionsSeedFile = getEnv("QUESTIONS_SEED_FILE", "questions.json")
}

// getEnv returns the value of the environment variable or the fallback if unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
