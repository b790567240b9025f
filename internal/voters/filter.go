package voters

import (
	"strings"

	"gorm.io/gorm"
)

// Participant type filter values accepted by the report endpoints.
const (
	TypeLeaders = "leaders"
	TypeMembers = "members"
)

// eventTypes is the classification set counted by the participation reports.
// Revision history of the legacy service flip-flopped on this clause; the
// policy here is to always apply it (see DESIGN.md).
var eventTypes = []int{0, 1, 2}

// Filter collects the optional predicates of a voter query. Apply renders
// them onto a gorm query, so the count query and the page query of one
// request are guaranteed to share an identical filter set.
type Filter struct {
	BarangayCodes   []string
	HashIDs         []int64
	IDs             []uint64
	ExcludeIDSet    bool // id/hash-id set becomes a NOT IN predicate
	Search          string
	ParticipantType string
	NoImage         bool

	// ParticipantsOnly restricts to the event roster: voters enrolled in a
	// group (group_id != 0) with an eligible classification.
	ParticipantsOnly bool

	Cluster  *int
	Precinct string
}

// Apply appends every set predicate to q. All values are bound parameters;
// nothing from the request is ever spliced into the SQL text.
func (f Filter) Apply(q *gorm.DB) *gorm.DB {
	if len(f.BarangayCodes) > 0 {
		q = q.Where("voters.brgy_code IN ?", f.BarangayCodes)
	}
	if len(f.HashIDs) > 0 {
		if f.ExcludeIDSet {
			q = q.Where("(voters.hash_id IS NULL OR voters.hash_id NOT IN ?)", f.HashIDs)
		} else {
			q = q.Where("voters.hash_id IN ?", f.HashIDs)
		}
	}
	if len(f.IDs) > 0 {
		if f.ExcludeIDSet {
			q = q.Where("voters.id NOT IN ?", f.IDs)
		} else {
			q = q.Where("voters.id IN ?", f.IDs)
		}
	}
	if f.ParticipantsOnly {
		q = q.Where("voters.group_id != 0").Where("voters.type IN ?", eventTypes)
	}
	switch f.ParticipantType {
	case TypeLeaders:
		q = q.Where("voters.is_grpleader = ?", true)
	case TypeMembers:
		q = q.Where("voters.is_grpleader = ?", false)
	}
	if f.NoImage {
		q = q.Where("(voters.img IS NULL OR voters.img = '')")
	}
	if f.Search != "" {
		q = q.Where("LOWER(voters.fullname) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Cluster != nil {
		q = q.Where("voters.cluster = ?", *f.Cluster)
	}
	if f.Precinct != "" {
		q = q.Where("voters.precinct = ?", f.Precinct)
	}
	return q
}

// Page is the pagination envelope every list endpoint responds with.
type Page struct {
	Total        int64 `json:"total"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
	NextPage     *int  `json:"nextPage"`
	PrevPage     *int  `json:"prevPage"`
	NumberOfRows int   `json:"numberOfRows"`
	Data         any   `json:"data"`
}

// NewPage computes the page metadata for a total row count.
func NewPage(total int64, page, limit, rows int, data any) Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	p := Page{
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
		NumberOfRows: rows,
		Data:         data,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// normalizePaging clamps page/limit to sane values; limit falls back to the
// legacy default of 100 rows.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}
	return page, limit
}
