package refdata

// Reference tables for the three-level location hierarchy. All of them are
// small, static and read-only from this service's point of view.

type District struct {
	ID     uint64 `gorm:"primaryKey" json:"id"`
	Code   string `gorm:"uniqueIndex;size:45" json:"code"`
	Name   string `json:"name"`
	Status int    `json:"status"`
}

type Citymun struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"uniqueIndex;size:45" json:"code"`
	Areacode string `gorm:"size:45" json:"areacode"`
	Name     string `json:"name"`
	Status   int    `json:"status"`
}

type Barangay struct {
	ID       uint64  `gorm:"primaryKey" json:"id"`
	Code     string  `gorm:"uniqueIndex;size:45" json:"code"`
	Areacode string  `gorm:"size:45" json:"areacode"`
	Muncode  string  `gorm:"size:45" json:"muncode"`
	Name     string  `json:"name"`
	Status   int     `json:"status"`
	Ncode    *string `gorm:"size:45" json:"ncode"`
}

func (District) TableName() string {
	return "voter_district"
}

func (Citymun) TableName() string {
	return "voter_city"
}

func (Barangay) TableName() string {
	return "voter_barangay"
}
