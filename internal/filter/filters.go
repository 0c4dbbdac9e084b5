package filter

import "github.com/siahsang/news/internal/validator"

// Both the articles listing and the comments listing page with the same
// defaults: 10 rows per page, starting at page 1.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

type Filter struct {
	Limit int64
	Page  int64
}

type Metadata struct {
	TotalCount int64 `json:"total_count"`
}

func NewFilter(limit, page int64) Filter {
	return Filter{
		Limit: limit,
		Page:  page,
	}
}

func Default() Filter {
	return NewFilter(DefaultLimit, DefaultPage)
}

func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.Limit
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Limit > 0, "limit", "must be greater than 0")
	v.Check(filters.Limit <= 100, "limit", "must be a maximum of 100")
	v.Check(filters.Page > 0, "p", "must be greater than 0")
	v.Check(filters.Page <= 10_000_000, "p", "must be a maximum of 10_000_000")
}
