package usecase

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// PageRequest is the caller-supplied page selection. Zero or negative
// values fall back to the defaults.
type PageRequest struct {
	Page    int
	PerPage int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// LimitOffset converts the request into a SQL-style window.
func (p PageRequest) LimitOffset() (limit, offset int) {
	p = p.normalize()
	return p.PerPage, (p.Page - 1) * p.PerPage
}

// IsFirstDefaultPage reports whether the request resolves to the plain
// first page, the only window the list cache memoizes.
func (p PageRequest) IsFirstDefaultPage() bool {
	p = p.normalize()
	return p.Page == DefaultPage && p.PerPage == DefaultPerPage
}

// PageMeta describes the page actually served.
type PageMeta struct {
	Total     int `json:"total"`
	PerPage   int `json:"per_page"`
	Page      int `json:"page"`
	PageCount int `json:"page_count"`
}

// NewPageMeta derives meta from a normalized request and the total row
// count. An empty collection still reports one page so clients always
// have a valid last page to request.
func NewPageMeta(p PageRequest, total int) PageMeta {
	p = p.normalize()
	pageCount := 1
	if total > 0 {
		pageCount = (total + p.PerPage - 1) / p.PerPage
	}
	return PageMeta{
		Total:     total,
		PerPage:   p.PerPage,
		Page:      p.Page,
		PageCount: pageCount,
	}
}
