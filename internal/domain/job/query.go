package job

import (
	"math"
	"strings"
	"time"
)

// Sortable fields accepted by the ordering parameter.
const (
	OrderByCreatedAt = "created_at"
	OrderByTitle     = "title"
	OrderByCompany   = "company"
	OrderByMinSalary = "min_salary"
)

var sortableFields = map[string]struct{}{
	OrderByCreatedAt: {},
	OrderByTitle:     {},
	OrderByCompany:   {},
	OrderByMinSalary: {},
}

type OrderTerm struct {
	Field string
	Desc  bool
}

func (t OrderTerm) String() string {
	if t.Desc {
		return "-" + t.Field
	}
	return t.Field
}

func DefaultOrdering() []OrderTerm {
	return []OrderTerm{{Field: OrderByCreatedAt, Desc: true}}
}

// ParseOrdering reads a comma separated list such as "-min_salary,title".
// Unknown fields are dropped; an empty result falls back to DefaultOrdering.
func ParseOrdering(raw string) []OrderTerm {
	var terms []OrderTerm
	seen := make(map[string]struct{})

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")

		if _, ok := sortableFields[field]; !ok {
			continue
		}
		if _, dup := seen[field]; dup {
			continue
		}
		seen[field] = struct{}{}
		terms = append(terms, OrderTerm{Field: field, Desc: desc})
	}

	if len(terms) == 0 {
		return DefaultOrdering()
	}
	return terms
}

// Query is the validated form of a job search request. Zero values mean
// "no filter" for every predicate.
type Query struct {
	Category        Category
	JobType         JobType
	ExperienceLevel ExperienceLevel
	WorkMode        WorkMode
	MinSalary       *float64
	MaxSalary       *float64
	Keyword         string
	Location        string
	Ordering        []OrderTerm
	Page            int
	PageSize        int
}

// Offset is the number of rows to skip. It never goes negative, even for a
// page number large enough to overflow the multiplication.
func (q *Query) Offset() int {
	if q.Page <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// Terms returns the effective ordering, never empty.
func (q *Query) Terms() []OrderTerm {
	if len(q.Ordering) == 0 {
		return DefaultOrdering()
	}
	return q.Ordering
}

// Matches reports whether j satisfies every predicate of the query.
func (q *Query) Matches(j *Job) bool {
	if !j.IsActive {
		return false
	}
	if q.Category != "" && j.Category != q.Category {
		return false
	}
	if q.JobType != "" && j.JobType != q.JobType {
		return false
	}
	if q.ExperienceLevel != "" && j.ExperienceLevel != q.ExperienceLevel {
		return false
	}
	if q.WorkMode != "" && j.WorkMode != q.WorkMode {
		return false
	}
	if q.MinSalary != nil && (j.MinSalary == nil || *j.MinSalary < *q.MinSalary) {
		return false
	}
	if q.MaxSalary != nil && (j.MaxSalary == nil || *j.MaxSalary > *q.MaxSalary) {
		return false
	}
	if q.Keyword != "" &&
		!containsFold(j.Title, q.Keyword) &&
		!containsFold(j.Company, q.Keyword) &&
		!containsFold(j.Description, q.Keyword) {
		return false
	}
	if q.Location != "" && !containsFold(j.Location, q.Location) {
		return false
	}
	return true
}

// Less orders a before b. Ties are broken by ID in the direction of the
// first ordering term. Missing salaries sort as the largest value.
func (q *Query) Less(a, b *Job) bool {
	terms := q.Terms()
	for _, term := range terms {
		c := compareField(a, b, term.Field)
		if term.Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}

	c := strings.Compare(a.ID.String(), b.ID.String())
	if terms[0].Desc {
		c = -c
	}
	return c < 0
}

func compareField(a, b *Job, field string) int {
	switch field {
	case OrderByTitle:
		return strings.Compare(a.Title, b.Title)
	case OrderByCompany:
		return strings.Compare(a.Company, b.Company)
	case OrderByMinSalary:
		return compareNullable(a.MinSalary, b.MinSalary)
	default:
		return compareTime(a.CreatedAt, b.CreatedAt)
	}
}

func compareNullable(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
