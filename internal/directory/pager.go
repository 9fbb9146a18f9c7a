package directory

// PageSize is the number of employees shown per page.
const PageSize = 10

// Pager is the page position over a record set of fixed length. Its methods
// never mutate the receiver; each transition returns the next Pager.
//
// CurrentPage always stays within [1, max(TotalPages(), 1)].
type Pager struct {
	CurrentPage int
	PageSize    int
	Total       int
}

func NewPager(total int) Pager {
	if total < 0 {
		total = 0
	}
	return Pager{CurrentPage: 1, PageSize: PageSize, Total: total}
}

func (p Pager) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Pager) lastPage() int {
	return max(p.TotalPages(), 1)
}

func (p Pager) Next() Pager {
	return p.GoTo(p.CurrentPage + 1)
}

func (p Pager) Previous() Pager {
	return p.GoTo(p.CurrentPage - 1)
}

// GoTo jumps to page n, clamped into range.
func (p Pager) GoTo(n int) Pager {
	p.CurrentPage = min(max(n, 1), p.lastPage())
	return p
}

func (p Pager) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Pager) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// Bounds returns the half-open index range [start, end) of the current page.
func (p Pager) Bounds() (start, end int) {
	start = min((p.CurrentPage-1)*p.PageSize, p.Total)
	end = min(start+p.PageSize, p.Total)
	return start, end
}

// PageNumbers lists every page for the direct navigation buttons.
func (p Pager) PageNumbers() []int {
	pages := make([]int, p.TotalPages())
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Visible returns the slice of records on the current page. records must
// have the length the pager was built with.
func Visible[T any](p Pager, records []T) []T {
	start, end := p.Bounds()
	if end > len(records) {
		end = len(records)
	}
	if start > end {
		start = end
	}
	return records[start:end]
}
