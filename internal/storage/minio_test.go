package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phnormalguy/tungwong-video-uploader/configs"
	"github.com/phnormalguy/tungwong-video-uploader/pkg/logger"
)

func newTestStore(t *testing.T, cfg configs.S3Config) *Store {
	t.Helper()
	store, err := NewStore(&cfg, logger.NewLogger("error"))
	require.NoError(t, err)
	return store
}

func TestResolveURLFromEndpoint(t *testing.T) {
	store := newTestStore(t, configs.S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "tungwong-videos",
	})

	url, err := store.ResolveURL("videos/123-abc.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/tungwong-videos/videos/123-abc.mp4", url)
}

func TestResolveURLUsesPublicBase(t *testing.T) {
	store := newTestStore(t, configs.S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "tungwong-videos",
		PublicURL: "https://cdn.tungwong.example",
	})

	url, err := store.ResolveURL("videos/123-abc.mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tungwong.example/tungwong-videos/videos/123-abc.mp4", url)
}

func TestResolveURLWithoutBucket(t *testing.T) {
	store := newTestStore(t, configs.S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})

	_, err := store.ResolveURL("videos/123-abc.mp4")
	assert.Error(t, err)
}
