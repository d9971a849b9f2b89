// Package storage persists uploaded media files on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore writes uploads under a base directory and hands back the
// relative reference stored on the model. References are served under
// /media/<ref>.
type MediaStore struct {
	baseDir string
}

// NewMediaStore creates the base directory if needed.
func NewMediaStore(baseDir string) (*MediaStore, error) {
	for _, sub := range []string{"images", "avatars"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory: %w", err)
		}
	}
	return &MediaStore{baseDir: baseDir}, nil
}

// Save writes content into subdir with a random name, preserving the original
// extension, and returns the relative reference.
func (s *MediaStore) Save(subdir, originalName string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}

	ref := filepath.Join(subdir, uuid.NewString()+ext)
	path := filepath.Join(s.baseDir, ref)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store media file: %w", err)
	}
	return filepath.ToSlash(ref), nil
}

// SaveImage stores a post or gallery image.
func (s *MediaStore) SaveImage(originalName string, content []byte) (string, error) {
	return s.Save("images", originalName, content)
}

// SaveAvatar stores a profile avatar.
func (s *MediaStore) SaveAvatar(originalName string, content []byte) (string, error) {
	return s.Save("avatars", originalName, content)
}

// BaseDir returns the root of the media tree, for static file serving.
func (s *MediaStore) BaseDir() string {
	return s.baseDir
}
