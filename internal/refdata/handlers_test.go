package refdata

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pimsph/registry-backend/internal/db"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(&District{}, &Citymun{}, &Barangay{}))
	db.DB = gdb
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}

func get(t *testing.T, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestListDistricts(t *testing.T) {
	gdb := setupDB(t)
	require.NoError(t, gdb.Create(&District{Code: "AR1002", Name: "2nd District"}).Error)
	require.NoError(t, gdb.Create(&District{Code: "AR1001", Name: "1st District"}).Error)

	var districts []District
	rec := get(t, "/districts", &districts)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, districts, 2)
	assert.Equal(t, "AR1001", districts[0].Code)
	assert.Equal(t, "AR1002", districts[1].Code)
}

func TestListCitymuns_DistrictPrefix(t *testing.T) {
	gdb := setupDB(t)
	require.NoError(t, gdb.Create(&Citymun{Code: "MUN100001", Areacode: "AR1001", Name: "Dipolog"}).Error)
	require.NoError(t, gdb.Create(&Citymun{Code: "MUN100002", Areacode: "AR1002", Name: "Dapitan"}).Error)

	var citymuns []Citymun
	rec := get(t, "/citymuns?district_code=AR1001", &citymuns)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, citymuns, 1)
	assert.Equal(t, "Dipolog", citymuns[0].Name)

	rec = get(t, "/citymuns", &citymuns)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, citymuns, 2)
}

func TestListBarangays_CodePrefix(t *testing.T) {
	gdb := setupDB(t)
	require.NoError(t, gdb.Create(&Barangay{Code: "AR1001-MUN100001-BRGY10000001", Name: "Central"}).Error)
	require.NoError(t, gdb.Create(&Barangay{Code: "AR1001-MUN100001-BRGY10000002", Name: "Estaka"}).Error)
	require.NoError(t, gdb.Create(&Barangay{Code: "AR1001-MUN100002-BRGY10000003", Name: "Banonong"}).Error)

	var barangays []Barangay
	rec := get(t, "/barangays?brgy_code=AR1001-MUN100001", &barangays)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, barangays, 2)
	assert.Equal(t, "Central", barangays[0].Name)

	rec = get(t, "/barangays", &barangays)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, barangays, 3)
}
