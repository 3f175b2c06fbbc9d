package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/phnormalguy/tungwong-video-uploader/internal/models"
)

// TokenVerifier validates a bearer credential and extracts caller identity.
type TokenVerifier interface {
	Verify(tokenHeader string) (models.UserInfo, error)
}

// ObjectStore writes a payload under a generated key and resolves the
// public URL for that key.
type ObjectStore interface {
	Put(ctx context.Context, content io.Reader, size int64, originalFilename, contentType string) (string, error)
	ResolveURL(key string) (string, error)
}

// Publisher sends one upload notification to the processing queue.
type Publisher interface {
	Publish(ctx context.Context, n models.VideoNotification) error
}

// UploadHandler runs the upload pipeline: authenticate, validate, store,
// resolve URL, publish. Each request is a single sequential pass; no step
// is retried and no side effect happens before authentication succeeds.
type UploadHandler struct {
	verifier  TokenVerifier
	store     ObjectStore
	publisher Publisher
	logger    *logrus.Logger
}

func NewUploadHandler(verifier TokenVerifier, store ObjectStore, publisher Publisher, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		verifier:  verifier,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	tokenHeader := c.GetHeader("Authorization")
	if tokenHeader == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization header is required"})
		return
	}

	userInfo, err := h.verifier.Verify(tokenHeader)
	if err != nil {
		h.logger.WithError(err).Warn("Upload rejected: token verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}

	title := c.PostForm("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	description := c.PostForm("description")

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	key, err := h.store.Put(ctx, file, fileHeader.Size, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to store video")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store video: " + err.Error()})
		return
	}

	url, err := h.store.ResolveURL(key)
	if err != nil {
		h.logger.WithError(err).WithField("s3_key", key).Error("Failed to resolve video URL")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve video URL: " + err.Error()})
		return
	}

	err = h.publisher.Publish(ctx, models.VideoNotification{
		S3Key:       key,
		S3URL:       url,
		Title:       title,
		Description: description,
		Username:    userInfo.Username,
		Email:       userInfo.Email,
	})
	if err != nil {
		// The object stays in the bucket; reconciliation of orphaned
		// uploads is out of band.
		h.logger.WithError(err).WithField("s3_key", key).Error("Failed to publish upload notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue video for processing: " + err.Error()})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"s3_key":   key,
		"username": userInfo.Username,
	}).Info("Video uploaded")

	c.JSON(http.StatusCreated, gin.H{
		"message": "upload completed successfully",
		"s3Key":   key,
		"s3Url":   url,
	})
}
