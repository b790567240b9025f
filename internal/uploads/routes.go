package uploads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, root string) {
	h := &Handler{Root: root}
	r.Post("/upload-image", h.UploadImage)
}

// FileServer serves the stored uploads read-only under the /uploads/ prefix.
func FileServer(root string) http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(root)))
}
