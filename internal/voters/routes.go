package voters

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router) {
	r.Get("/voters", ListVoters)
	r.Get("/voters/expected-participants", ExpectedParticipants)
	r.Get("/voters/{id}", GetVoter)
	r.Get("/voter-locations", VoterLocations)

	r.Post("/voters/upload-chunk", UploadChunk)
	r.Post("/voters/by-hashids", ByHashIDs)
	r.Post("/voters/event-participants", EventParticipants)
	r.Post("/voters/event-absentees", EventAbsentees)
	r.Post("/voters/attendance-report", AttendanceReport)
	r.Post("/voters/download-participants", DownloadParticipants)
	r.Post("/voters/download-absentees", DownloadAbsentees)
}
