package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "")

	ref, err := store.Upload(context.Background(), []byte("jpeg bytes"), "job-posters")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(ref.URL, "/static/job-posters/") {
		t.Fatalf("url = %q", ref.URL)
	}
	if !strings.HasSuffix(ref.PublicID, ".jpg") {
		t.Fatalf("publicId = %q", ref.PublicID)
	}

	onDisk := filepath.Join(dir, filepath.FromSlash(ref.PublicID))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.Delete(context.Background(), ref.PublicID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}
}

func TestDeleteMissingIsIdempotent(t *testing.T) {
	store := New(t.TempDir(), "")
	if err := store.Delete(context.Background(), "job-posters/nonexistent.jpg"); err != nil {
		t.Fatalf("Delete of missing file should succeed, got %v", err)
	}
}

func TestDeleteRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "")
	if err := store.Delete(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
}

func TestUploadSanitizesFolder(t *testing.T) {
	store := New(t.TempDir(), "")
	ref, err := store.Upload(context.Background(), []byte("x"), "../evil")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(ref.PublicID, "job-posters/") {
		t.Fatalf("expected fallback folder, got %q", ref.PublicID)
	}
}

func TestUploadRejectsEmpty(t *testing.T) {
	store := New(t.TempDir(), "")
	if _, err := store.Upload(context.Background(), nil, "job-posters"); err == nil {
		t.Fatalf("expected error for empty data")
	}
}
