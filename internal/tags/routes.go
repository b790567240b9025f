package tags

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/tags", ListTags)
	r.Post("/tags", CreateTag)
	r.Post("/tag-voter", TagVoter)
}
