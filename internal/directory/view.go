package directory

import (
	"fmt"

	"admin-panel/internal/models"
)

const LoadingMessage = "Loading data..."

// View is everything the directory screen needs to draw one page.
type View struct {
	Status      Status            `json:"status"`
	Message     string            `json:"message,omitempty"`
	Employees   []models.Employee `json:"employees"`
	Page        int               `json:"page"`
	TotalPages  int               `json:"total_pages"`
	Total       int               `json:"total"`
	HasPrevious bool              `json:"has_previous"`
	HasNext     bool              `json:"has_next"`
	Pages       []int             `json:"pages"`
	Summary     string            `json:"summary,omitempty"`
}

// BuildView projects a loader snapshot onto the requested page. Only a ready
// state carries rows; loading and failed states render an empty table.
func BuildView(state State, page int) View {
	switch state.Status {
	case StatusReady:
	case StatusFailed:
		return emptyView(StatusFailed, state.Message)
	default:
		return emptyView(StatusLoading, LoadingMessage)
	}

	p := NewPager(len(state.Records)).GoTo(page)
	rows := Visible(p, state.Records)
	return View{
		Status:      StatusReady,
		Employees:   rows,
		Page:        p.CurrentPage,
		TotalPages:  p.TotalPages(),
		Total:       p.Total,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
		Pages:       p.PageNumbers(),
		Summary:     fmt.Sprintf("Displaying %d rows. Total employees: %d", len(rows), p.Total),
	}
}

func emptyView(status Status, message string) View {
	return View{
		Status:    status,
		Message:   message,
		Employees: []models.Employee{},
		Page:      1,
		Pages:     []int{},
	}
}
