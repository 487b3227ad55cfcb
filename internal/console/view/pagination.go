package view

// Pager describes the position of an audit page.
type Pager struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewPager computes page navigation from an audit response.
func NewPager(page, limit, total int) Pager {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	pages := (total + limit - 1) / limit
	return Pager{Page: page, Limit: limit, Total: total, TotalPages: max(pages, 1)}
}

func (p Pager) HasPrev() bool { return p.Page > 1 }
func (p Pager) HasNext() bool { return p.Page < p.TotalPages }
