package precincts

import (
	"context"
	"net/http"
	"sort"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/voters"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

// PrecinctReport is one precinct line of the clustered report.
type PrecinctReport struct {
	Precinct    string `json:"precinct"`
	Expected    int64  `json:"expected"`
	TotalVoters int64  `json:"totalVoters"`
}

// ClusterReport groups the precincts of one cluster; its totals are sums of
// the member precincts, not independent queries.
type ClusterReport struct {
	Cluster       int              `json:"cluster"`
	TotalExpected int64            `json:"totalExpected"`
	TotalVoters   int64            `json:"totalVoters"`
	Precincts     []PrecinctReport `json:"precincts"`
}

// ListClustered handles GET /clustered-precincts?barangayCode=&participantType=.
// It merges three independent per-precinct aggregates in memory: the cluster
// assignment list, the expected-participant counts and the total voter
// counts. A precinct with no matching count row reports 0.
func ListClustered(w http.ResponseWriter, r *http.Request) {
	barangayCode := r.URL.Query().Get("barangayCode")
	if barangayCode == "" {
		web.Error(w, http.StatusBadRequest, "Missing barangayCode parameter")
		return
	}
	participantType := r.URL.Query().Get("participantType")

	var assignments []ClusteredPrecinct
	err := db.DB.WithContext(r.Context()).
		Where("brgy_code = ?", barangayCode).
		Order("cluster_id, precinct").
		Find(&assignments).Error
	if err != nil {
		zap.L().Error("fetch clustered precincts", zap.String("barangay", barangayCode), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch clustered precincts")
		return
	}

	expected, err := countByPrecinct(r.Context(), voters.Filter{
		BarangayCodes:    []string{barangayCode},
		ParticipantType:  participantType,
		ParticipantsOnly: true,
	})
	if err != nil {
		zap.L().Error("count expected by precinct", zap.String("barangay", barangayCode), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch clustered precincts")
		return
	}

	totals, err := countByPrecinct(r.Context(), voters.Filter{
		BarangayCodes: []string{barangayCode},
	})
	if err != nil {
		zap.L().Error("count voters by precinct", zap.String("barangay", barangayCode), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch clustered precincts")
		return
	}

	web.JSON(w, http.StatusOK, groupByCluster(assignments, expected, totals))
}

// countByPrecinct runs one grouped count over the voter filter, keyed by
// precinct.
func countByPrecinct(ctx context.Context, f voters.Filter) (map[string]int64, error) {
	type countRow struct {
		Precinct *string
		Total    int64
	}
	var rows []countRow
	err := f.Apply(db.DB.WithContext(ctx).Model(&voters.Voter{})).
		Select("voters.precinct, COUNT(*) AS total").
		Group("voters.precinct").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.Precinct != nil {
			counts[*row.Precinct] = row.Total
		}
	}
	return counts, nil
}

// groupByCluster de-duplicates assignment rows by exact (cluster, precinct)
// pair, attaches the per-precinct counts and nests precincts under their
// cluster, sorted by cluster number.
func groupByCluster(assignments []ClusteredPrecinct, expected, totals map[string]int64) []ClusterReport {
	type pair struct {
		cluster  int
		precinct string
	}
	seen := make(map[pair]bool, len(assignments))
	grouped := make(map[int][]PrecinctReport)

	for _, a := range assignments {
		key := pair{a.ClusterID, a.Precinct}
		if seen[key] {
			continue
		}
		seen[key] = true
		grouped[a.ClusterID] = append(grouped[a.ClusterID], PrecinctReport{
			Precinct:    a.Precinct,
			Expected:    expected[a.Precinct],
			TotalVoters: totals[a.Precinct],
		})
	}

	clusters := make([]int, 0, len(grouped))
	for cluster := range grouped {
		clusters = append(clusters, cluster)
	}
	sort.Ints(clusters)

	report := make([]ClusterReport, 0, len(clusters))
	for _, cluster := range clusters {
		entry := ClusterReport{Cluster: cluster, Precincts: grouped[cluster]}
		for _, p := range entry.Precincts {
			entry.TotalExpected += p.Expected
			entry.TotalVoters += p.TotalVoters
		}
		report = append(report, entry)
	}
	return report
}
