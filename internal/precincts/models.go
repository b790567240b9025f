package precincts

// ClusteredPrecinct assigns a precinct to a numeric cluster within one
// barangay. Storage may carry duplicate (cluster, precinct) pairs; readers
// de-duplicate before aggregating.
type ClusteredPrecinct struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	BrgyCode  string `gorm:"column:brgy_code;size:45;index" json:"brgy_code"`
	ClusterID int    `gorm:"column:cluster_id" json:"cluster"`
	Precinct  string `gorm:"size:10" json:"precinct"`
}

func (ClusteredPrecinct) TableName() string {
	return "brgy_clustered_precincts_prec"
}
