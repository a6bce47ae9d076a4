package storage

import "context"

// ObjectStorage uploads binary content and mints public direct-download
// URLs. Implementations must return a URL that stays valid for the
// lifetime of the object.
type ObjectStorage interface {
	// UploadBytes stores data under key and returns its public URL
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
