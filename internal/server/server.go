package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/phnormalguy/tungwong-video-uploader/configs"
)

// Server wires the gateway gate, the health endpoint and the upload
// pipeline into one HTTP listener.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	config     *configs.Config
	logger     *logrus.Logger
}

func NewServer(config *configs.Config, handler *UploadHandler, logger *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(GatewayTokenMiddleware(config.Security.GatewayToken, logger))

	if config.Server.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", gatewayTokenHeader}
		engine.Use(cors.New(corsConfig))
	}

	engine.GET(healthCheckPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.POST("/videos", handler.Upload)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
			Handler:      engine,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		config: config,
		logger: logger,
	}
}

// Run starts the listener and blocks until SIGINT/SIGTERM, then drains
// in-flight requests before returning.
func (s *Server) Run() error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		s.logger.WithField("signal", sig.String()).Info("Received shutdown signal, gracefully stopping...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}
