package ports

import (
	"context"
	"net/http"
	"time"
)

// PresignedUpload is a time-limited URL a client can PUT an object to.
type PresignedUpload struct {
	URL       string      `json:"upload_url"`
	Method    string      `json:"method"`
	Headers   http.Header `json:"headers,omitempty"`
	ObjectURL string      `json:"object_url"`
	Key       string      `json:"key"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// ImageStore hands out upload URLs for listing images.
type ImageStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (PresignedUpload, error)
}
