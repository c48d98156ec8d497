// Package storage keeps uploaded catalog images on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"bellezza-backend/apperror"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
)

const (
	DirEmployees  = "employees"
	DirCategories = "categories"
)

// sniffLen is how many leading bytes filetype needs to recognise an image.
const sniffLen = 512

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	ErrEmptyFile = apperror.Validation("file must not be empty")
	ErrNotImage  = apperror.Validation("only jpeg, png, gif and webp images are allowed")
)

// PhotoStorage stores images under root, one directory per entity kind.
// Paths handed out are relative and use forward slashes.
type PhotoStorage struct {
	root           string
	maxUploadBytes int64
	now            func() time.Time
}

func NewPhotoStorage(root string, maxUploadMB int64) (*PhotoStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create %s: %w", root, err)
	}
	return &PhotoStorage{
		root:           root,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		now:            time.Now,
	}, nil
}

func (s *PhotoStorage) Root() string {
	return s.root
}

func (s *PhotoStorage) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// Save sniffs r, rejects anything that is not an allowed image and writes it
// to dir. The extension comes from the detected type, never from the client.
func (s *PhotoStorage) Save(ctx context.Context, dir string, ownerID uuid.UUID, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("storage: read upload: %w", err)
	}
	if n == 0 {
		return "", ErrEmptyFile
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || !allowedMimeTypes[kind.MIME.Value] {
		return "", ErrNotImage
	}

	targetDir := filepath.Join(s.root, sanitizeDir(dir))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create %s: %w", targetDir, err)
	}

	fileName := fmt.Sprintf("%s_%d.%s", ownerID, s.now().UnixNano(), kind.Extension)
	targetPath := filepath.Join(targetDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	limited := &io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), r), N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, limited)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", apperror.Validation(fmt.Sprintf("file exceeds the %d MB limit", s.maxUploadBytes/(1024*1024)))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: close file: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: rename file: %w", err)
	}

	return path.Join(sanitizeDir(dir), fileName), nil
}

// Delete removes a file saved earlier. Missing files and paths outside the
// root are ignored.
func (s *PhotoStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if relativePath == "" {
		return nil
	}

	target := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+relativePath)))
	root, _ := filepath.Abs(s.root)
	abs, _ := filepath.Abs(target)
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return nil
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete file: %w", err)
	}
	return nil
}

func sanitizeDir(dir string) string {
	dir = filepath.Base(dir)
	dir = strings.ReplaceAll(dir, "..", "")
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return "misc"
	}
	return dir
}
