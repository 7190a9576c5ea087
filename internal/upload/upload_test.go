package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "blogapi/internal/errors"
)

func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

func TestStore_SaveImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	fh := makeFileHeader(t, "cat.png", "image/png", []byte("pretend-png-bytes"))
	logical, err := store.Save(fh)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(logical, "uploads/"), "logical path %q should carry the uploads prefix", logical)
	assert.True(t, strings.HasSuffix(logical, ".png"), "logical path %q should keep the original extension", logical)
	assert.True(t, strings.HasPrefix(filepath.Base(logical), "image-"))

	physical := filepath.Join(dir, filepath.Base(logical))
	data, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, "pretend-png-bytes", string(data))
}

func TestStore_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	fh := makeFileHeader(t, "notes.txt", "text/plain", []byte("hello"))
	_, err = store.Save(fh)
	assert.ErrorIs(t, err, apperrors.ErrNotImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not leave files behind")
}

func TestStore_UniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(makeFileHeader(t, "a.jpg", "image/jpeg", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(makeFileHeader(t, "a.jpg", "image/jpeg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	logical, err := store.Save(makeFileHeader(t, "b.gif", "image/gif", []byte("gif")))
	require.NoError(t, err)

	store.Remove(logical)
	_, err = os.Stat(filepath.Join(dir, filepath.Base(logical)))
	assert.True(t, os.IsNotExist(err))

	// Missing files and empty paths are fine.
	store.Remove(logical)
	store.Remove("")
}
