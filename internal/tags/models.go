package tags

// Tag is a named label voters can be marked with, optionally scoped to one
// barangay or flagged global.
type Tag struct {
	Name     string  `gorm:"primaryKey" json:"name"`
	Color    *string `gorm:"size:45" json:"color"`
	Brgy     *string `gorm:"size:45" json:"brgy"`
	IsGlobal int     `gorm:"column:is_global" json:"is_global"`
	Count    int     `json:"count"`
}

// VoterTag joins one voter to one tag. The (voter_id, tag) pair is created
// idempotently.
type VoterTag struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	VoterID uint64 `gorm:"column:voter_id;index" json:"voter_id"`
	Tag     string `gorm:"index" json:"tag"`
}

func (Tag) TableName() string {
	return "tags"
}

func (VoterTag) TableName() string {
	return "voter_tags"
}
