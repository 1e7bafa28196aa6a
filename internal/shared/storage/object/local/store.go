package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"jobboard-backend/internal/shared/storage/object"
	"jobboard-backend/internal/shared/util"
)

// Store implements ImageStore using the local filesystem. It exists for dev
// and tests; the files it writes are served by the router under /static.
type Store struct {
	baseDir string
	baseURL string
}

// New creates a new local image store rooted at baseDir. Stored images are
// addressed as baseURL/<publicId>.
func New(baseDir, baseURL string) object.ImageStore {
	if baseURL == "" {
		baseURL = "/static"
	}
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes the image bytes to disk under folder with a random name.
func (s *Store) Upload(ctx context.Context, data []byte, folder string) (object.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return object.ImageRef{}, err
	}
	if len(data) == 0 {
		return object.ImageRef{}, errors.New("empty image data")
	}

	publicID := path.Join(cleanFolder(folder), randomID()+".jpg")

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(publicID))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return object.ImageRef{}, fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return object.ImageRef{}, fmt.Errorf("write image: %w", err)
	}

	return object.ImageRef{
		URL:      s.baseURL + "/" + publicID,
		PublicID: publicID,
	}, nil
}

// Delete removes a stored image. Missing files are treated as success.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(filepath.FromSlash(publicID))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return errors.New("invalid public id")
	}

	err := os.Remove(filepath.Join(s.baseDir, clean))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}

func cleanFolder(folder string) string {
	clean, err := util.SanitizeFileName(strings.Trim(folder, "/"))
	if err != nil {
		return "job-posters"
	}
	return clean
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return util.HashKey(fmt.Sprintf("%d", time.Now().UnixNano()))[:32]
	}
	return hex.EncodeToString(b[:])
}

var _ object.ImageStore = (*Store)(nil)
