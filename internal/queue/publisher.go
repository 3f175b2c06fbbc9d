package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/phnormalguy/tungwong-video-uploader/configs"
	"github.com/phnormalguy/tungwong-video-uploader/internal/models"
	"github.com/phnormalguy/tungwong-video-uploader/pkg/logger"
)

// jetStream is the subset of nats.JetStreamContext the publisher needs.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher emits upload notifications to the stream the video workers
// consume. One logical upload maps to exactly one publish attempt.
type Publisher struct {
	nc     *nats.Conn
	js     jetStream
	config *configs.NATSConfig
	logger *logrus.Entry
	now    func() time.Time
}

func NewPublisher(config *configs.NATSConfig, log *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &Publisher{
		nc:     nc,
		js:     js,
		config: config,
		logger: logger.WithComponent(log, "queue"),
		now:    time.Now,
	}

	if err := p.ensureStream(js); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"stream":  config.Stream,
		"subject": config.Subject,
	}).Info("NATS publisher ready")

	return p, nil
}

// ensureStream creates the upload stream if it doesn't exist yet. Config
// must stay in sync with the worker's consumer side.
func (p *Publisher) ensureStream(js nats.JetStreamContext) error {
	_, err := js.StreamInfo(p.config.Stream)
	if err == nil {
		p.logger.WithField("stream", p.config.Stream).Info("Stream already exists")
		return nil
	}

	p.logger.WithField("stream", p.config.Stream).Info("Creating stream...")
	_, err = js.AddStream(&nats.StreamConfig{
		Name:      p.config.Stream,
		Subjects:  []string{p.config.Subject},
		Retention: nats.WorkQueuePolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// Publish stamps the notification with the current instant, serializes it
// and sends it as one message to the configured subject. Serialization
// failures abort before any network call; the send itself returns only
// after the JetStream server acknowledges the message.
func (p *Publisher) Publish(ctx context.Context, n models.VideoNotification) error {
	n.UploadedAt = p.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if _, err := p.js.Publish(p.config.Subject, body, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"subject": p.config.Subject,
		"s3_key":  n.S3Key,
	}).Info("Upload notification published")

	return nil
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
