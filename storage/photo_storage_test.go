package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bellezza-backend/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for type detection.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func newStorage(t *testing.T) *PhotoStorage {
	t.Helper()
	s, err := NewPhotoStorage(t.TempDir(), 1)
	require.NoError(t, err)
	return s
}

func TestSave_StoresImageUnderEntityDir(t *testing.T) {
	s := newStorage(t)
	owner := uuid.New()

	rel, err := s.Save(context.Background(), DirEmployees, owner, bytes.NewReader(append(pngHeader, make([]byte, 1000)...)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "employees/"+owner.String()+"_"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	info, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.EqualValues(t, len(pngHeader)+1000, info.Size())
}

func TestSave_Rejects(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	_, err := s.Save(ctx, DirCategories, uuid.New(), bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = s.Save(ctx, DirCategories, uuid.New(), strings.NewReader("#!/bin/sh\necho owned\n"))
	assert.ErrorIs(t, err, ErrNotImage)

	big := append(append([]byte{}, pngHeader...), make([]byte, 1024*1024)...)
	_, err = s.Save(ctx, DirCategories, uuid.New(), bytes.NewReader(big))
	assert.True(t, apperror.IsValidation(err))

	entries, err := os.ReadDir(filepath.Join(s.Root(), DirCategories))
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave no files behind")
}

func TestDelete(t *testing.T) {
	s := newStorage(t)
	ctx := context.Background()

	rel, err := s.Save(ctx, DirCategories, uuid.New(), bytes.NewReader(pngHeader))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rel))
	_, err = os.Stat(filepath.Join(s.Root(), filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, rel), "deleting twice is fine")
	assert.NoError(t, s.Delete(ctx, ""))

	outside := filepath.Join(filepath.Dir(s.Root()), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))
	t.Cleanup(func() { _ = os.Remove(outside) })
	require.NoError(t, s.Delete(ctx, "../keep.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
