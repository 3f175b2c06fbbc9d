package configs

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	S3       S3Config
	NATS     NATSConfig
	Security SecurityConfig
	LogLevel string
}

type ServerConfig struct {
	Host       string
	Port       int
	EnableCORS bool
}

type S3Config struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	UseSSL       bool
	Bucket       string
	Region       string
	// PublicURL overrides the endpoint-derived base when objects are served
	// through a CDN or a different external hostname.
	PublicURL string
}

type NATSConfig struct {
	URL     string
	Stream  string
	Subject string
}

type SecurityConfig struct {
	JWTSecret    string
	GatewayToken string
}

func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       getEnv("SERVER_HOST", "0.0.0.0"),
			Port:       getEnvAsInt("SERVER_PORT", 8080),
			EnableCORS: getEnvAsBool("ENABLE_CORS", false),
		},
		S3: S3Config{
			Endpoint:     getEnv("S3_ENDPOINT", "localhost:9000"),
			AccessKey:    getEnv("S3_ACCESS_KEY", ""),
			SecretKey:    getEnv("S3_SECRET_KEY", ""),
			SessionToken: getEnv("S3_SESSION_TOKEN", ""),
			UseSSL:       getEnvAsBool("S3_USE_SSL", false),
			Bucket:       getEnv("S3_BUCKET", "tungwong-videos"),
			Region:       getEnv("S3_REGION", "us-east-1"),
			PublicURL:    getEnv("S3_PUBLIC_URL", ""),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", "nats://localhost:4222"),
			Stream:  getEnv("NATS_STREAM", "VIDEO_UPLOADS"),
			Subject: getEnv("NATS_SUBJECT", "video.upload.created"),
		},
		Security: SecurityConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			GatewayToken: getEnv("GATEWAY_TOKEN", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
