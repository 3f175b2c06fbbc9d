package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	config := LoadConfig()

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "tungwong-videos", config.S3.Bucket)
	assert.Equal(t, "nats://localhost:4222", config.NATS.URL)
	assert.Equal(t, "VIDEO_UPLOADS", config.NATS.Stream)
	assert.Equal(t, "video.upload.created", config.NATS.Subject)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.S3.UseSSL)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("S3_BUCKET", "other-bucket")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("JWT_SECRET", "hunter2")
	t.Setenv("GATEWAY_TOKEN", "gw-secret")

	config := LoadConfig()

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "other-bucket", config.S3.Bucket)
	assert.True(t, config.S3.UseSSL)
	assert.Equal(t, "hunter2", config.Security.JWTSecret)
	assert.Equal(t, "gw-secret", config.Security.GatewayToken)
}

func TestLoadConfigIgnoresBadInt(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	config := LoadConfig()
	assert.Equal(t, 8080, config.Server.Port)
}
