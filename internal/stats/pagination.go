package stats

import (
	"fmt"

	"github.com/okami-ct/okami-dashboard/internal/models"
)

// PageWindow is the 1-based range of rows shown by a table footer.
type PageWindow struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Total int `json:"total"`
}

// PageRange derives the footer range from page, limit and total.
func PageRange(p models.Pagination) PageWindow {
	if p.Total <= 0 || p.Limit <= 0 {
		return PageWindow{Total: max0(p.Total)}
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	from := (page-1)*p.Limit + 1
	to := page * p.Limit
	if to > p.Total {
		to = p.Total
	}
	if from > p.Total {
		from = p.Total
	}
	return PageWindow{From: from, To: to, Total: p.Total}
}

// String renders the footer text.
func (w PageWindow) String() string {
	return fmt.Sprintf("Mostrando %d a %d de %d resultados", w.From, w.To, w.Total)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
