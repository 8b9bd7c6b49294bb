package viewer

// Pager tracks the current page while paging through a document. Moves
// past either end are clamped.
type Pager struct {
	current, total int
}

func NewPager(total int) *Pager {
	p := &Pager{total: total}
	if total > 0 {
		p.current = 1
	}
	return p
}

func (p *Pager) Current() int { return p.current }

func (p *Pager) Total() int { return p.total }

func (p *Pager) Next() int {
	if p.current < p.total {
		p.current++
	}
	return p.current
}

func (p *Pager) Prev() int {
	if p.current > 1 {
		p.current--
	}
	return p.current
}

// Go jumps to page n, clamped to the document.
func (p *Pager) Go(n int) int {
	switch {
	case p.total == 0:
		return 0
	case n < 1:
		p.current = 1
	case n > p.total:
		p.current = p.total
	default:
		p.current = n
	}
	return p.current
}
