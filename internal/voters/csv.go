package voters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

var csvHeader = []string{
	"id", "hash_id", "fullname", "type", "barangay",
	"cluster", "precinct", "leader", "contactnumber", "link",
}

// exportRow is one voter line of a CSV export, scanned from the export join.
type exportRow struct {
	ID            uint64
	HashID        *int64
	Fullname      string
	Type          *int
	BrgyName      string
	Cluster       *int
	Precinct      *string
	Leader        *string
	ContactNumber *string `gorm:"column:contactnumber"`
}

// typeCode maps the stored classification to its display letter. The mapping
// is a business convention, not alphabetical.
func typeCode(t *int) string {
	if t == nil {
		return ""
	}
	switch *t {
	case 0:
		return "B"
	case 1:
		return "A"
	case 2:
		return "C"
	default:
		return ""
	}
}

// escapeCSV quotes a field containing a comma, quote or newline, doubling
// internal quotes; anything else is emitted raw.
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// exportVoters runs the export query: the filtered voter set joined to each
// voter's group leader and barangay label. The leader self-join can fan out,
// so callers must de-duplicate by voter id.
func exportVoters(ctx context.Context, f Filter) ([]exportRow, error) {
	var rows []exportRow
	err := f.Apply(db.DB.WithContext(ctx).Model(&Voter{})).
		Select(`voters.id, voters.hash_id, voters.fullname, voters.type,
			voters.cluster, voters.precinct, voters.contactnumber,
			COALESCE(b.name, COALESCE(voters.brgy_code, '')) AS brgy_name,
			leaders.fullname AS leader`).
		Joins("LEFT JOIN voters AS leaders ON leaders.group_id = voters.group_id AND leaders.is_grpleader = ? AND voters.group_id != 0", true).
		Joins("LEFT JOIN voter_barangay AS b ON b.code = voters.brgy_code").
		Order("voters.id").
		Scan(&rows).Error
	return rows, err
}

// renderCSV produces the export document: fixed header, one line per unique
// voter id, first occurrence wins.
func renderCSV(rows []exportRow, publicBaseURL string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(csvHeader, ","))
	sb.WriteByte('\n')

	seen := make(map[uint64]bool, len(rows))
	for _, row := range rows {
		if seen[row.ID] {
			continue
		}
		seen[row.ID] = true

		hashID := ""
		if row.HashID != nil {
			hashID = strconv.FormatInt(*row.HashID, 10)
		}
		cluster := ""
		if row.Cluster != nil {
			cluster = strconv.Itoa(*row.Cluster)
		}

		fields := []string{
			strconv.FormatUint(row.ID, 10),
			hashID,
			row.Fullname,
			typeCode(row.Type),
			row.BrgyName,
			cluster,
			deref(row.Precinct),
			deref(row.Leader),
			deref(row.ContactNumber),
			fmt.Sprintf("%s/voters/%d", publicBaseURL, row.ID),
		}
		for i, field := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(escapeCSV(field))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PublicBaseURL is set at startup and prefixes the per-voter link column.
var PublicBaseURL string

// DownloadParticipants handles POST /voters/download-participants.
func DownloadParticipants(w http.ResponseWriter, r *http.Request) {
	downloadCSV(w, r, false, "participants")
}

// DownloadAbsentees handles POST /voters/download-absentees.
func DownloadAbsentees(w http.ResponseWriter, r *http.Request) {
	downloadCSV(w, r, true, "absentees")
}

func downloadCSV(w http.ResponseWriter, r *http.Request, exclude bool, name string) {
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

	rows, err := exportVoters(r.Context(), f)
	if err != nil {
		zap.L().Error("export voters", zap.String("report", name), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to export voters")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	_, _ = w.Write([]byte(renderCSV(rows, PublicBaseURL)))
}
