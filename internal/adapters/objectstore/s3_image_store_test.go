package objectstore

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, cfg Config) *S3ImageStore {
	t.Helper()
	nopLogger := zerolog.Nop()
	cfg.AccessKeyID, cfg.SecretAccessKey = "AKIA", "SECRET"
	store, err := New(context.Background(), cfg, &nopLogger)
	require.NoError(t, err)
	return store
}

func TestS3ImageStore_PresignUpload(t *testing.T) {
	store := newTestStore(t, Config{
		Bucket:    "bodi-images",
		Region:    "eu-west-1",
		Endpoint:  "https://minio.local:9000",
		PathStyle: true,
		UploadTTL: 5 * time.Minute,
	})
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	up, err := store.PresignUpload(context.Background(), "properties/LAG-001/front.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, up.Method)
	assert.Equal(t, "https://minio.local:9000/bodi-images/properties/LAG-001/front.jpg", up.ObjectURL)
	assert.Equal(t, fixed.Add(5*time.Minute), up.ExpiresAt)

	u, err := url.Parse(up.URL)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", u.Host)
	assert.Equal(t, "/bodi-images/properties/LAG-001/front.jpg", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

func TestObjectBaseURL(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"aws virtual host", Config{Bucket: "b"}, "https://b.s3.us-east-1.amazonaws.com"},
		{"public base wins", Config{Bucket: "b", Endpoint: "http://x", PublicBaseURL: "https://cdn.bodi.ng/"}, "https://cdn.bodi.ng"},
		{"path style endpoint", Config{Bucket: "b", Endpoint: "http://minio:9000/", PathStyle: true}, "http://minio:9000/b"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, objectBaseURL(tc.cfg, "us-east-1"))
		})
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	nopLogger := zerolog.Nop()
	_, err := New(context.Background(), Config{}, &nopLogger)
	assert.Error(t, err)
}
