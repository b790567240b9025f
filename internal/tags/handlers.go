package tags

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListTags handles GET /tags?brgy=&is_global=.
func ListTags(w http.ResponseWriter, r *http.Request) {
	query := db.DB.WithContext(r.Context()).Model(&Tag{}).Order("name ASC")

	if brgy := r.URL.Query().Get("brgy"); brgy != "" {
		query = query.Where("brgy = ?", brgy)
	}
	if isGlobal := r.URL.Query().Get("is_global"); isGlobal != "" {
		query = query.Where("is_global = ?", isGlobal)
	}

	var rows []Tag
	if err := query.Find(&rows).Error; err != nil {
		zap.L().Error("fetch tags", zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to fetch tags")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"success": true, "data": rows})
}

// CreateTag handles POST /tags.
func CreateTag(w http.ResponseWriter, r *http.Request) {
	var tag Tag
	if err := json.NewDecoder(r.Body).Decode(&tag); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if tag.Name == "" {
		web.Error(w, http.StatusBadRequest, "Tag name is required")
		return
	}

	var existing Tag
	err := db.DB.WithContext(r.Context()).First(&existing, "name = ?", tag.Name).Error
	if err == nil {
		web.Error(w, http.StatusBadRequest, "Tag already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("lookup tag", zap.String("tag", tag.Name), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}

	if err := db.DB.WithContext(r.Context()).Create(&tag).Error; err != nil {
		zap.L().Error("create tag", zap.String("tag", tag.Name), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to create tag")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"success": true, "data": tag})
}

// TagVoter handles POST /tag-voter. Creating the same (voter, tag) pair twice
// is a no-op, not an error.
func TagVoter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VoterID uint64 `json:"voterId"`
		Tag     string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Tag == "" || body.VoterID == 0 {
		web.Error(w, http.StatusBadRequest, "Both tag and voterId are required")
		return
	}

	var existing VoterTag
	err := db.DB.WithContext(r.Context()).
		First(&existing, "voter_id = ? AND tag = ?", body.VoterID, body.Tag).Error
	if err == nil {
		web.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Voter tag already exists",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("lookup voter tag", zap.Uint64("voter", body.VoterID), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to create voter tag")
		return
	}

	record := VoterTag{VoterID: body.VoterID, Tag: body.Tag}
	if err := db.DB.WithContext(r.Context()).Create(&record).Error; err != nil {
		zap.L().Error("create voter tag", zap.Uint64("voter", body.VoterID), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to create voter tag")
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Voter tag created successfully",
	})
}
