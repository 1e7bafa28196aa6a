package object

import "context"

// ImageRef is a durable pointer into the object store. URL is the public
// address persisted on job records; PublicID is the handle needed to delete
// the object later.
type ImageRef struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// ImageStore defines the contract for storing and deleting poster images.
// Delete must be idempotent: removing a missing or already-deleted object
// succeeds.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, folder string) (ImageRef, error)
	Delete(ctx context.Context, publicID string) error
}
