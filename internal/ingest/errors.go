package ingest

import "errors"

var (
	// ErrNoFile means the upload did not include an image part.
	ErrNoFile = errors.New("no image file provided")

	// ErrNotImage means the uploaded part is not an image content type.
	ErrNotImage = errors.New("uploaded file is not an image")

	// ErrTooLarge means the upload exceeds the size cap.
	ErrTooLarge = errors.New("image exceeds maximum allowed size")

	// ErrImageProcessing wraps decode and encode failures.
	ErrImageProcessing = errors.New("image processing failed")

	// ErrStorageUpload wraps object store failures. Ingestion cannot
	// continue without a stored image.
	ErrStorageUpload = errors.New("image upload failed")
)
