package voters

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"DELA CRUZ, JUAN"`, escapeCSV("DELA CRUZ, JUAN"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
	assert.Equal(t, "\"two\nlines\"", escapeCSV("two\nlines"))
	assert.Equal(t, "", escapeCSV(""))
}

func TestTypeCode(t *testing.T) {
	codes := map[int]string{0: "B", 1: "A", 2: "C", 3: "", -1: ""}
	for in, want := range codes {
		v := in
		assert.Equal(t, want, typeCode(&v))
	}
	assert.Equal(t, "", typeCode(nil))
}

func TestRenderCSV_DeduplicatesAndLinks(t *testing.T) {
	hash := int64(5000)
	first := "FIRST LEADER"
	second := "SECOND LEADER"
	typ := 1
	rows := []exportRow{
		{ID: 5, HashID: &hash, Fullname: "SANTOS, MARIA", Type: &typ, BrgyName: "Central", Leader: &first},
		{ID: 5, HashID: &hash, Fullname: "SANTOS, MARIA", Type: &typ, BrgyName: "Central", Leader: &second},
		{ID: 6, Fullname: "CRUZ, PEDRO", BrgyName: "Central"},
	}

	out := renderCSV(rows, "https://registry.example.com")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "id,hash_id,fullname,type,barangay,cluster,precinct,leader,contactnumber,link", lines[0])
	// Fan-out from the leader join collapses to the first row seen.
	assert.Equal(t, `5,5000,"SANTOS, MARIA",A,Central,,,FIRST LEADER,,https://registry.example.com/voters/5`, lines[1])
	assert.Equal(t, `6,,"CRUZ, PEDRO",,Central,,,,,https://registry.example.com/voters/6`, lines[2])
}

func TestDownloadParticipants_Headers(t *testing.T) {
	gdb := setupDB(t)
	seedVoter(t, gdb, 1, testBrgy, 7, false, 0)

	rec := doJSON(t, newRouter(), http.MethodPost, "/voters/download-participants", map[string]any{
		"voterIds":      []uint64{1},
		"barangayCodes": []string{testBrgy},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=participants.csv", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "id,hash_id,fullname"))
}

func TestDownloadAbsentees_RequiresRoster(t *testing.T) {
	setupDB(t)

	rec := doJSON(t, newRouter(), http.MethodPost, "/voters/download-absentees", map[string]any{
		"barangayCodes": []string{testBrgy},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, newRouter(), http.MethodPost, "/voters/download-absentees", map[string]any{
		"voterIds":      []uint64{999},
		"barangayCodes": []string{testBrgy},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=absentees.csv", rec.Header().Get("Content-Disposition"))
}
