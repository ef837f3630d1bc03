// Package storage keeps uploaded binaries on the local filesystem. Each save
// creates a new file; nothing is ever overwritten, matching the append-only
// document model. Paths handed back to callers are relative to the store root
// and are what the document rows persist as fileId.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStore struct {
	root    string
	maxSize int64
}

func NewFileStore(root string, maxSize int64) *FileStore {
	return &FileStore{
		root:    root,
		maxSize: maxSize,
	}
}

// Save writes the upload under users/{userID}/{category}/ with a
// timestamp+uuid name so repeated uploads of the same document type never
// collide. It returns the relative path for the metadata row.
func (fs *FileStore) Save(userID int64, category string, originalName string, r io.Reader) (string, error) {
	relDir := filepath.Join("users", fmt.Sprintf("%d", userID), category)
	if err := os.MkdirAll(filepath.Join(fs.root, relDir), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8], ext)
	relPath := filepath.Join(relDir, name)

	f, err := os.OpenFile(filepath.Join(fs.root, relPath), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, fs.maxSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > fs.maxSize {
		err = fmt.Errorf("file size exceeds the maximum of %d bytes", fs.maxSize)
	}
	if err != nil {
		_ = os.Remove(filepath.Join(fs.root, relPath))
		return "", err
	}

	return relPath, nil
}

// Open returns the stored file for a previously saved relative path.
func (fs *FileStore) Open(relPath string) (*os.File, error) {
	full, err := fs.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes a stored file. A missing file is not an error so that
// metadata cleanup can proceed after an earlier partial failure.
func (fs *FileStore) Delete(relPath string) error {
	full, err := fs.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve refuses paths that would escape the store root.
func (fs *FileStore) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid file path %q", relPath)
	}
	return filepath.Join(fs.root, cleaned), nil
}
