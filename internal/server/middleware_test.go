package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/phnormalguy/tungwong-video-uploader/pkg/logger"
)

func newGateEngine(reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(GatewayTokenMiddleware("gateway-secret", logger.NewLogger("error")))
	engine.GET(healthCheckPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST("/videos", func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusOK)
	})
	return engine
}

func TestGateAllowsHealthCheckWithoutToken(t *testing.T) {
	var reached bool
	engine := newGateEngine(&reached)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthCheckPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateRejectsMissingToken(t *testing.T) {
	var reached bool
	engine := newGateEngine(&reached)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/videos", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
	assert.False(t, reached, "handler must not run when the gate rejects")
}

func TestGateRejectsWrongToken(t *testing.T) {
	var reached bool
	engine := newGateEngine(&reached)

	req := httptest.NewRequest(http.MethodPost, "/videos", nil)
	req.Header.Set(gatewayTokenHeader, "wrong-secret")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}

func TestGatePassesValidToken(t *testing.T) {
	var reached bool
	engine := newGateEngine(&reached)

	req := httptest.NewRequest(http.MethodPost, "/videos", nil)
	req.Header.Set(gatewayTokenHeader, "gateway-secret")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
