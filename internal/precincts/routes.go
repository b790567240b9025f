package precincts

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/clustered-precincts", ListClustered)
}
