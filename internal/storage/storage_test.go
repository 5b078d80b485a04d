package storage

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("logo", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("logo")
	require.NoError(t, err)
	return fh
}

func TestLocalStorage_SaveNamesByContentHash(t *testing.T) {
	root := t.TempDir()
	ls := NewLocalStorage(root)

	content := []byte("not really a png")
	stored, err := ls.SaveFile(uploadedFile(t, "logo.png", content), "logos")
	require.NoError(t, err)

	want := fmt.Sprintf("logos/%x.png", sha256.Sum256(content))
	assert.Equal(t, want, stored)

	onDisk, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, content, onDisk)
}

func TestLocalStorage_SameContentSamePath(t *testing.T) {
	ls := NewLocalStorage(t.TempDir())

	content := []byte("logo bytes")
	first, err := ls.SaveFile(uploadedFile(t, "a.png", content), "logos")
	require.NoError(t, err)
	second, err := ls.SaveFile(uploadedFile(t, "b.png", content), "logos")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLocalStorage_Delete(t *testing.T) {
	root := t.TempDir()
	ls := NewLocalStorage(root)

	stored, err := ls.SaveFile(uploadedFile(t, "logo.png", []byte("bytes")), "logos")
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(stored))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(stored)))
	assert.True(t, os.IsNotExist(err))

	// deleting an already-missing file is not an error
	assert.NoError(t, ls.DeleteFile(stored))
}

func TestLocalStorage_PublicURL(t *testing.T) {
	ls := NewLocalStorage("uploads")
	assert.Equal(t, "/uploads/logos/abc.png", ls.PublicURL("logos/abc.png"))
}
