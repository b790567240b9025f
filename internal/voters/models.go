package voters

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Coordinates mirrors the geolocation payload captured by the mobile client.
type Coordinates struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Altitude         *float64 `json:"altitude"`
	Accuracy         *float64 `json:"accuracy"`
	AltitudeAccuracy *float64 `json:"altitudeAccuracy"`
	Heading          *float64 `json:"heading"`
	Speed            *float64 `json:"speed"`
}

// Location is stored serialized as JSON in a text column. A nil *Location
// writes SQL NULL, never the string "null".
type Location struct {
	Coords    Coordinates `json:"coords"`
	Timestamp int64       `json:"timestamp"`
	Mocked    bool        `json:"mocked,omitempty"`
}

func (l Location) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Location) Scan(value any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into Location", value)
	}
}

// StringList is a JSON-encoded list of strings in a text column, used for the
// per-voter photo list.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Voter is one row of the registry. The layout mirrors the legacy voters
// table, so several flags are plain ints in storage.
type Voter struct {
	ID                  uint64     `gorm:"primaryKey" json:"id"`
	Pims22ID            *int       `gorm:"column:pims22_id" json:"pims22_id"`
	ComelecID           *string    `gorm:"column:comelec_id;size:65" json:"comelec_id"`
	Cluster             *int       `json:"cluster"`
	Precinct            *string    `gorm:"size:10" json:"precinct"`
	SeqNo               *int       `gorm:"column:seq_no" json:"seq_no"`
	VoterNo             int        `gorm:"column:voter_no" json:"voter_no"`
	Fullname            string     `gorm:"size:105" json:"fullname"`
	Address             *string    `json:"address"`
	ContactNumber       *string    `gorm:"column:contactnumber;size:45" json:"contactnumber"`
	Bdate               *string    `gorm:"size:45" json:"bdate"`
	Sex                 *string    `gorm:"size:6" json:"sex"`
	Type                *int       `json:"type"`
	Vtype               *string    `gorm:"size:50" json:"vtype"`
	DistrictCode        string     `gorm:"column:district_code;size:45" json:"district_code"`
	CityCode            *string    `gorm:"column:city_code;size:45" json:"city_code"`
	BrgyCode            *string    `gorm:"column:brgy_code;size:45;index" json:"brgy_code"`
	PurokCode           *string    `gorm:"column:purok_code;size:105" json:"purok_code"`
	Status              int        `json:"status"`
	Remarks             *string    `json:"remarks"`
	IsHouseleader       bool       `gorm:"column:is_houseleader" json:"is_houseleader"`
	IsGrpleader         bool       `gorm:"column:is_grpleader" json:"is_grpleader"`
	IsClusterleader     bool       `gorm:"column:is_clusterleader" json:"is_clusterleader"`
	IsCoordinator       bool       `gorm:"column:is_coordinator" json:"is_coordinator"`
	Deceased            bool       `json:"deceased"`
	GroupID             int        `gorm:"column:group_id;index" json:"group_id"`
	FamilyID            int        `gorm:"column:family_id" json:"family_id"`
	Img                 *string    `gorm:"size:255" json:"img"`
	ImgThumb            *string    `gorm:"column:img_thumb;size:255" json:"img_thumb"`
	CreatedAt           *time.Time `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
	IsDeleted           bool       `gorm:"column:is_deleted" json:"is_deleted"`
	IsXls               bool       `gorm:"column:is_xls" json:"is_xls"`
	NotVoter            *bool      `gorm:"column:not_voter" json:"not_voter"`
	Location            *Location  `gorm:"type:text" json:"location"`
	Images              StringList `gorm:"type:text" json:"images"`
	HasBeenDataGathered *bool      `gorm:"column:has_been_data_gathered" json:"has_been_data_gathered"`
	HashID              *int64     `gorm:"column:hash_id;index" json:"hash_id"`
}

func (Voter) TableName() string {
	return "voters"
}
