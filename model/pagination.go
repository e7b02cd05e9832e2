package model

// Pagination carries normalized page/limit values parsed from query
// parameters. Page and Limit are 1-based and never below 1.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Normalize clamps out-of-range values to the defaults.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	return p
}
