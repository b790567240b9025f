package voters

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// pagedQuery runs the count query and the page query over one Filter, so both
// see the same predicate set.
func pagedQuery(ctx context.Context, f Filter, page, limit int) (Page, error) {
	page, limit = normalizePaging(page, limit)

	var total int64
	if err := f.Apply(db.DB.WithContext(ctx).Model(&Voter{})).Count(&total).Error; err != nil {
		return Page{}, err
	}

	var rows []Voter
	err := f.Apply(db.DB.WithContext(ctx).Model(&Voter{})).
		Order("id").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&rows).Error
	if err != nil {
		return Page{}, err
	}

	return NewPage(total, page, limit, len(rows), rows), nil
}

// splitCodes parses a comma-separated query value into a trimmed, non-empty
// code list.
func splitCodes(raw string) []string {
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

// ListVoters handles GET /voters?barangayCodes=&page=&limit=.
func ListVoters(w http.ResponseWriter, r *http.Request) {
	codes := splitCodes(r.URL.Query().Get("barangayCodes"))
	if len(codes) == 0 {
		web.Error(w, http.StatusBadRequest, "barangayCodes must be a non-empty array")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := pagedQuery(r.Context(), Filter{BarangayCodes: codes}, page, limit)
	if err != nil {
		zap.L().Error("fetch voters", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch voters")
		return
	}
	web.JSON(w, http.StatusOK, result)
}

// GetVoter handles GET /voters/{id}.
func GetVoter(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid voter id")
		return
	}

	var voter Voter
	if err := db.DB.WithContext(r.Context()).First(&voter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			web.Error(w, http.StatusNotFound, "Voter not found")
			return
		}
		zap.L().Error("fetch voter", zap.Uint64("id", id), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch voter")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{"data": voter})
}

// ByHashIDs handles POST /voters/by-hashids.
func ByHashIDs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		HashIDs   []int64 `json:"hashIds"`
		Search    string  `json:"search"`
		ImgIsNull bool    `json:"imgIsNull"`
		Page      int     `json:"page"`
		Limit     int     `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.HashIDs) == 0 {
		web.Error(w, http.StatusBadRequest, "hashIds must be a non-empty array")
		return
	}

	f := Filter{
		HashIDs: body.HashIDs,
		Search:  body.Search,
		NoImage: body.ImgIsNull,
	}
	result, err := pagedQuery(r.Context(), f, body.Page, body.Limit)
	if err != nil {
		zap.L().Error("fetch voters by hash ids", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch voters")
		return
	}
	web.JSON(w, http.StatusOK, result)
}

// eventRequest is the shared body of the event participant/absentee list and
// download endpoints.
type eventRequest struct {
	VoterIDs        []uint64 `json:"voterIds"`
	HashIDs         []int64  `json:"hashIds"`
	BarangayCodes   []string `json:"barangayCodes"`
	ParticipantType string   `json:"participantType"`
	Search          string   `json:"search"`
	ImgIsNull       bool     `json:"imgIsNull"`
	Cluster         *int     `json:"cluster"`
	Precinct        string   `json:"precinct"`
	Page            int      `json:"page"`
	Limit           int      `json:"limit"`
}

// filter turns the request into a roster Filter. exclude selects absentee
// mode: roster members NOT in the scanned id set.
func (req eventRequest) filter(exclude bool) (Filter, string) {
	if len(req.BarangayCodes) == 0 {
		return Filter{}, "barangayCodes must be a non-empty array"
	}
	if len(req.VoterIDs) == 0 && len(req.HashIDs) == 0 {
		return Filter{}, "voterIds or hashIds must be a non-empty array"
	}

	return Filter{
		BarangayCodes:    req.BarangayCodes,
		IDs:              req.VoterIDs,
		HashIDs:          req.HashIDs,
		ExcludeIDSet:     exclude,
		Search:           req.Search,
		ParticipantType:  req.ParticipantType,
		NoImage:          req.ImgIsNull,
		ParticipantsOnly: true,
		Cluster:          req.Cluster,
		Precinct:         req.Precinct,
	}, ""
}

// EventParticipants handles POST /voters/event-participants: roster voters
// found in the supplied id set.
func EventParticipants(w http.ResponseWriter, r *http.Request) {
	listEventVoters(w, r, false)
}

// EventAbsentees handles POST /voters/event-absentees: roster voters missing
// from the supplied id set.
func EventAbsentees(w http.ResponseWriter, r *http.Request) {
	listEventVoters(w, r, true)
}

func listEventVoters(w http.ResponseWriter, r *http.Request, exclude bool) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	f, msg := req.filter(exclude)
	if msg != "" {
		web.Error(w, http.StatusBadRequest, msg)
		return
	}

	result, err := pagedQuery(r.Context(), f, req.Page, req.Limit)
	if err != nil {
		zap.L().Error("fetch event voters", zap.Bool("absentees", exclude), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch voters")
		return
	}
	web.JSON(w, http.StatusOK, result)
}

// VoterLocations handles GET /voter-locations?brgy_code=&type=, returning the
// bare coordinates of every geotagged voter under a barangay code prefix.
func VoterLocations(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("brgy_code")
	if prefix == "" {
		web.Error(w, http.StatusBadRequest, "Missing brgy_code parameter")
		return
	}
	voterType, err := strconv.Atoi(r.URL.Query().Get("type"))
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid type parameter")
		return
	}

	var rows []Voter
	err = db.DB.WithContext(r.Context()).
		Select("location").
		Where("location IS NOT NULL").
		Where("brgy_code LIKE ?", prefix+"%").
		Where("type = ?", voterType).
		Find(&rows).Error
	if err != nil {
		zap.L().Error("fetch voter locations", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch voter locations")
		return
	}

	type point struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	points := make([]point, 0, len(rows))
	for _, row := range rows {
		if row.Location == nil {
			continue
		}
		points = append(points, point{
			Lat: row.Location.Coords.Latitude,
			Lng: row.Location.Coords.Longitude,
		})
	}
	web.JSON(w, http.StatusOK, points)
}
