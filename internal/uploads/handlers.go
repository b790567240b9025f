// Package uploads streams multipart image uploads into a per-folder
// directory tree served back under /uploads/.
package uploads

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// files spill to temp storage.
const maxUploadMemory = 10 << 20

// Handler serves the upload endpoint for one uploads root directory.
type Handler struct {
	Root string
}

// UploadImage handles POST /upload-image?folder=. The original filename is
// preserved and an existing file is overwritten silently.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		web.Error(w, http.StatusBadRequest, "Missing folder parameter")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	dir := filepath.Join(h.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.L().Error("create upload dir", zap.String("dir", dir), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	dst := filepath.Join(dir, filepath.Base(header.Filename))
	out, err := os.Create(dst)
	if err != nil {
		zap.L().Error("create upload file", zap.String("path", dst), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		zap.L().Error("write upload file", zap.String("path", dst), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	url := fmt.Sprintf("/uploads/%s/%s", folder, filepath.Base(header.Filename))
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "File uploaded successfully",
		"data":    url,
	})
}
