package voters

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/refdata"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

// barangayNames resolves barangay codes to display names. A code with no
// reference row falls back to the code itself so responses always carry a
// label.
func barangayNames(ctx context.Context, codes []string) (map[string]string, error) {
	names := make(map[string]string, len(codes))
	for _, code := range codes {
		names[code] = code
	}

	var rows []refdata.Barangay
	if err := db.DB.WithContext(ctx).Where("code IN ?", codes).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.Code] = row.Name
	}
	return names, nil
}

// ExpectedParticipants handles GET /voters/expected-participants: the size of
// the event roster for one barangay plus its total voter count.
func ExpectedParticipants(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("barangayCode")
	if code == "" {
		web.Error(w, http.StatusBadRequest, "Missing barangayCode parameter")
		return
	}
	participantType := r.URL.Query().Get("participantType")

	roster := Filter{
		BarangayCodes:    []string{code},
		ParticipantType:  participantType,
		ParticipantsOnly: true,
	}
	var expected int64
	if err := roster.Apply(db.DB.WithContext(r.Context()).Model(&Voter{})).Count(&expected).Error; err != nil {
		zap.L().Error("count expected participants", zap.String("barangay", code), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch expected participants")
		return
	}

	var totalVoters int64
	if err := db.DB.WithContext(r.Context()).Model(&Voter{}).Where("brgy_code = ?", code).Count(&totalVoters).Error; err != nil {
		zap.L().Error("count voters", zap.String("barangay", code), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch expected participants")
		return
	}

	names, err := barangayNames(r.Context(), []string{code})
	if err != nil {
		zap.L().Error("resolve barangay name", zap.String("barangay", code), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch expected participants")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{
		"barangayCode": code,
		"barangay":     names[code],
		"expected":     expected,
		"totalVoters":  totalVoters,
	})
}

// AttendanceRow is one barangay line of the batch attendance report.
type AttendanceRow struct {
	BarangayCode string `json:"barangayCode"`
	Barangay     string `json:"barangay"`
	Expected     int64  `json:"expected"`
	Actual       int64  `json:"actual"`
	Absentees    int64  `json:"absentees"`
}

// AttendanceReport handles POST /voters/attendance-report. Expected and
// actual counts come from two independent grouped queries merged by barangay
// code; barangays missing from either result report zero.
func AttendanceReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BarangayCodes   []string `json:"barangayCodes"`
		HashIDs         []int64  `json:"hashIds"`
		ParticipantType string   `json:"participantType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.BarangayCodes) == 0 {
		web.Error(w, http.StatusBadRequest, "barangayCodes must be a non-empty array")
		return
	}
	if len(req.HashIDs) == 0 {
		web.Error(w, http.StatusBadRequest, "hashIds must be a non-empty array")
		return
	}

	roster := Filter{
		BarangayCodes:    req.BarangayCodes,
		ParticipantType:  req.ParticipantType,
		ParticipantsOnly: true,
	}
	expected, err := countByBarangay(r.Context(), roster)
	if err != nil {
		zap.L().Error("count expected by barangay", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to build attendance report")
		return
	}

	checkedIn := roster
	checkedIn.HashIDs = req.HashIDs
	actual, err := countByBarangay(r.Context(), checkedIn)
	if err != nil {
		zap.L().Error("count actual by barangay", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to build attendance report")
		return
	}

	names, err := barangayNames(r.Context(), req.BarangayCodes)
	if err != nil {
		zap.L().Error("resolve barangay names", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to build attendance report")
		return
	}

	report := make([]AttendanceRow, 0, len(req.BarangayCodes))
	for _, code := range req.BarangayCodes {
		row := AttendanceRow{
			BarangayCode: code,
			Barangay:     names[code],
			Expected:     expected[code],
			Actual:       actual[code],
		}
		// Absentees never go negative, even when more people scanned in
		// than the roster expected.
		if row.Expected > row.Actual {
			row.Absentees = row.Expected - row.Actual
		}
		report = append(report, row)
	}

	web.JSON(w, http.StatusOK, report)
}

// countByBarangay runs one grouped count over the filter and returns a
// barangay-code keyed map.
func countByBarangay(ctx context.Context, f Filter) (map[string]int64, error) {
	type countRow struct {
		BrgyCode string
		Total    int64
	}
	var rows []countRow
	err := f.Apply(db.DB.WithContext(ctx).Model(&Voter{})).
		Select("voters.brgy_code, COUNT(*) AS total").
		Group("voters.brgy_code").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.BrgyCode] = row.Total
	}
	return counts, nil
}
