package refdata

import (
	"net/http"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
)

// ListDistricts returns every district row.
func ListDistricts(w http.ResponseWriter, r *http.Request) {
	var districts []District
	if err := db.DB.WithContext(r.Context()).Order("code").Find(&districts).Error; err != nil {
		zap.L().Error("fetch districts", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch districts")
		return
	}
	web.JSON(w, http.StatusOK, districts)
}

// ListCitymuns returns city/municipality rows, optionally prefix-filtered by
// district code.
func ListCitymuns(w http.ResponseWriter, r *http.Request) {
	query := db.DB.WithContext(r.Context()).Model(&Citymun{}).Order("code")

	if prefix := r.URL.Query().Get("district_code"); prefix != "" {
		query = query.Where("areacode LIKE ?", prefix+"%")
	}

	var citymuns []Citymun
	if err := query.Find(&citymuns).Error; err != nil {
		zap.L().Error("fetch citymuns", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch citymuns")
		return
	}
	web.JSON(w, http.StatusOK, citymuns)
}

// ListBarangays returns barangay rows, optionally prefix-filtered by code.
func ListBarangays(w http.ResponseWriter, r *http.Request) {
	query := db.DB.WithContext(r.Context()).Model(&Barangay{}).Order("code")

	if prefix := r.URL.Query().Get("brgy_code"); prefix != "" {
		query = query.Where("code LIKE ?", prefix+"%")
	}

	var barangays []Barangay
	if err := query.Find(&barangays).Error; err != nil {
		zap.L().Error("fetch barangays", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch barangays")
		return
	}
	web.JSON(w, http.StatusOK, barangays)
}
