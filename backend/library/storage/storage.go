package storage

import (
	"context"
	"time"
)

// UploadHandle is a one-time authorization for a direct client upload. The
// client PUTs the file bytes to URL and then echoes FileID back when it
// registers the note's metadata.
type UploadHandle struct {
	FileID string `json:"file_id"`
	URL    string `json:"upload_url"`
}

// BlobStore is the external file-storage collaborator. Upload and download
// both happen directly between the client and the store via presigned URLs;
// this service only brokers handles and resolves ids back to URLs.
type BlobStore interface {
	// GenerateUpload mints a fresh object id and a presigned upload URL for it.
	GenerateUpload(ctx context.Context) (*UploadHandle, error)
	// ResolveURL returns a retrievable URL for a stored object, or "" when the
	// object is missing or inaccessible. A missing blob is not an error; the
	// caller surfaces it as "file not available".
	ResolveURL(ctx context.Context, fileID string) string
}

// Presigned URL lifetimes.
const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = time.Hour
)
