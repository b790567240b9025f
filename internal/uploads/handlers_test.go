package uploads

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(root string) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, root)
	return r
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func upload(t *testing.T, root, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	newRouter(root).ServeHTTP(rec, req)
	return rec
}

func TestUploadImage_StoresFile(t *testing.T) {
	root := t.TempDir()

	rec := upload(t, root, "/upload-image?folder=voters", "photo.jpg", "jpeg-bytes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/uploads/voters/photo.jpg"`)

	stored, err := os.ReadFile(filepath.Join(root, "voters", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(stored))
}

func TestUploadImage_OverwritesExisting(t *testing.T) {
	root := t.TempDir()

	rec := upload(t, root, "/upload-image?folder=voters", "photo.jpg", "first")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = upload(t, root, "/upload-image?folder=voters", "photo.jpg", "second")
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := os.ReadFile(filepath.Join(root, "voters", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(stored))
}

func TestUploadImage_MissingFolder(t *testing.T) {
	root := t.TempDir()

	rec := upload(t, root, "/upload-image", "photo.jpg", "data")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing folder parameter")
}

func TestUploadImage_MissingFile(t *testing.T) {
	root := t.TempDir()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-image?folder=voters", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newRouter(root).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing file field")
}

func TestFileServer_ServesStoredUploads(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "voters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "voters", "photo.jpg"), []byte("jpeg-bytes"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/uploads/voters/photo.jpg", nil)
	rec := httptest.NewRecorder()
	FileServer(root).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}
