package refdata

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/districts", ListDistricts)
	r.Get("/citymuns", ListCitymuns)
	r.Get("/barangays", ListBarangays)
}
