// Package filestore is the paper-binary collaborator: it stores uploaded
// documents on disk and serves reads and integrity hashes over them.
package filestore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

// New creates the base directory if needed and returns a store rooted at it.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the bytes under a generated name and returns the locator
// used for later reads. The original filename only contributes its
// extension.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	ext := filepath.Ext(originalName)
	locator := filepath.Join(s.baseDir, uuid.New().String()+ext)
	if err := os.WriteFile(locator, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return locator, nil
}

func (s *Store) Read(locator string) ([]byte, error) {
	return os.ReadFile(locator)
}

// Hash streams the stored file through sha256 and returns the hex digest.
func (s *Store) Hash(locator string) (string, error) {
	f, err := os.Open(locator)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Exists reports whether the locator still points at a stored file.
func (s *Store) Exists(locator string) bool {
	_, err := os.Stat(locator)
	return err == nil
}
