package voters

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pimsph/registry-backend/internal/db"
	"github.com/pimsph/registry-backend/internal/web"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxChunkSize bounds one upload-chunk request. Larger batches are rejected
// outright, no partial processing.
const maxChunkSize = 50

// VoterUpdate carries the mutable fields of one voter record. Scalar fields
// left null in the payload are not touched; location and images are always
// written, with absent input stored as SQL NULL.
type VoterUpdate struct {
	ID            uint64     `json:"id"`
	ContactNumber *string    `json:"contactnumber"`
	Address       *string    `json:"address"`
	Sex           *string    `json:"sex"`
	Bdate         *string    `json:"bdate"`
	Img           *string    `json:"img"`
	ImgThumb      *string    `json:"img_thumb"`
	Location      *Location  `json:"location"`
	Images        StringList `json:"images"`
}

func (u VoterUpdate) changes() map[string]any {
	updates := map[string]any{
		"has_been_data_gathered": true,
	}
	if u.ContactNumber != nil {
		updates["contactnumber"] = *u.ContactNumber
	}
	if u.Address != nil {
		updates["address"] = *u.Address
	}
	if u.Sex != nil {
		updates["sex"] = *u.Sex
	}
	if u.Bdate != nil {
		updates["bdate"] = *u.Bdate
	}
	if u.Img != nil {
		updates["img"] = *u.Img
	}
	if u.ImgThumb != nil {
		updates["img_thumb"] = *u.ImgThumb
	}
	if u.Location != nil {
		updates["location"] = *u.Location
	} else {
		updates["location"] = nil
	}
	if u.Images != nil {
		updates["images"] = u.Images
	} else {
		updates["images"] = nil
	}
	return updates
}

// UploadChunk handles POST /voters/upload-chunk: a small batch of voter
// updates applied all-or-nothing inside one transaction.
func UploadChunk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Voters []VoterUpdate `json:"voters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.Voters) > maxChunkSize {
		web.Error(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot update more than %d voters at a time.", maxChunkSize))
		return
	}

	affected, err := applyChunk(r, body.Voters)
	if err != nil {
		zap.L().Error("update voter chunk", zap.Int("batch", len(body.Voters)), zap.Error(err))
		web.Error(w, http.StatusInternalServerError, "Failed to update voters")
		return
	}

	web.JSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"message":             fmt.Sprintf("%d voters updated successfully.", affected),
		"affectedVotersCount": affected,
	})
}

// applyChunk runs the batch in one transaction. gorm's Transaction helper
// guarantees commit-or-rollback on every exit path, including panics mid
// batch. A record whose id matches no row is skipped, not an error.
func applyChunk(r *http.Request, updates []VoterUpdate) (int64, error) {
	var affected int64
	err := db.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if u.ID == 0 {
				continue
			}
			res := tx.Model(&Voter{}).Where("id = ?", u.ID).Updates(u.changes())
			if res.Error != nil {
				return res.Error
			}
			affected += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
