package directory

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// EmployeesHandler serves one page of the directory. The page query parameter
// defaults to 1 and is clamped into range.
func EmployeesHandler(l *Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			page = 1
		}

		view := BuildView(l.State(), page)

		status := http.StatusOK
		switch view.Status {
		case StatusLoading:
			status = http.StatusServiceUnavailable
		case StatusFailed:
			status = http.StatusBadGateway
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(view)
	}
}
