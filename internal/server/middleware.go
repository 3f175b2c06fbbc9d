package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	gatewayTokenHeader = "x-apigateway-token"
	healthCheckPath    = "/healthz"
)

// GatewayTokenMiddleware rejects requests that did not pass through the API
// gateway. The gateway injects a shared-secret header on every forwarded
// request; anything arriving without it is answered 403 before routing.
// The liveness path is exempt so the load balancer can probe directly.
func GatewayTokenMiddleware(expectedToken string, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthCheckPath {
			c.Next()
			return
		}

		token := c.GetHeader(gatewayTokenHeader)
		if token == "" || token != expectedToken {
			logger.WithFields(logrus.Fields{
				"ip":   c.ClientIP(),
				"path": c.Request.URL.Path,
			}).Warn("Request rejected: gateway token missing or invalid")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "access denied: gateway token missing or invalid",
			})
			return
		}

		c.Next()
	}
}
