package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"admin-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func employees(n int) []models.Employee {
	out := make([]models.Employee, n)
	for i := range out {
		id := fmt.Sprint(i + 1)
		out[i] = models.Employee{ID: id, Name: "user" + id, Email: "user" + id + "@example.com", Role: "member"}
	}
	return out
}

func TestPager_TotalPagesAndCoverage(t *testing.T) {
	for n := 0; n <= 45; n++ {
		p := NewPager(n)
		want := (n + PageSize - 1) / PageSize
		require.Equal(t, want, p.TotalPages(), "n=%d", n)

		records := employees(n)
		sum := 0
		for _, page := range p.PageNumbers() {
			sum += len(Visible(p.GoTo(page), records))
		}
		assert.Equal(t, n, sum, "n=%d", n)
	}
}

func TestPager_BoundaryNoOps(t *testing.T) {
	p := NewPager(25)

	assert.Equal(t, 1, p.Previous().CurrentPage)
	assert.False(t, p.HasPrevious())

	last := p.GoTo(3)
	assert.Equal(t, 3, last.Next().CurrentPage)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
}

func TestPager_EmptySetStaysOnFirstPage(t *testing.T) {
	p := NewPager(0)

	assert.Equal(t, 1, p.Next().CurrentPage)
	assert.Equal(t, 1, p.Previous().CurrentPage)
	assert.False(t, p.HasNext())
	assert.Empty(t, p.PageNumbers())
	assert.Empty(t, Visible(p, []models.Employee{}))
}

func TestPager_LastPagePartial(t *testing.T) {
	records := employees(25)
	p := NewPager(25).Next().Next()

	require.Equal(t, 3, p.CurrentPage)
	start, end := p.Bounds()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	rows := Visible(p, records)
	require.Len(t, rows, 5)
	assert.Equal(t, "21", rows[0].ID)
	assert.Equal(t, "25", rows[4].ID)
}

func TestPager_GoToClamps(t *testing.T) {
	p := NewPager(25)

	assert.Equal(t, 1, p.GoTo(0).CurrentPage)
	assert.Equal(t, 1, p.GoTo(-4).CurrentPage)
	assert.Equal(t, 3, p.GoTo(99).CurrentPage)
	assert.Equal(t, 1, p.CurrentPage)
}

func feedServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestLoader_Success(t *testing.T) {
	srv, hits := feedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(employees(25))
	})
	l := NewLoader(srv.Client(), srv.URL, zap.NewNop())

	assert.Equal(t, StatusLoading, l.State().Status)

	state := l.Load(context.Background())
	require.Equal(t, StatusReady, state.Status)
	assert.Len(t, state.Records, 25)
	assert.Empty(t, state.Message)

	l.Load(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestLoader_SingleFetchUnderConcurrency(t *testing.T) {
	srv, hits := feedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(employees(3))
	})
	l := NewLoader(srv.Client(), srv.URL, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, StatusReady, l.Load(context.Background()).Status)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestLoader_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := feedServer(t, tt.handler)
			l := NewLoader(srv.Client(), srv.URL, zap.NewNop())

			state := l.Load(context.Background())
			assert.Equal(t, StatusFailed, state.Status)
			assert.Equal(t, FetchErrorMessage, state.Message)
			assert.Empty(t, state.Records)

			// failure is terminal, no retry
			l.Load(context.Background())
			assert.Equal(t, int32(1), atomic.LoadInt32(hits))
		})
	}
}

func TestLoader_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	l := NewLoader(nil, url, zap.NewNop())
	state := l.Load(context.Background())

	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, FetchErrorMessage, state.Message)
}

func TestBuildView(t *testing.T) {
	state := State{Status: StatusReady, Records: employees(25)}

	v := BuildView(state, 3)
	assert.Equal(t, StatusReady, v.Status)
	assert.Equal(t, 3, v.Page)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 25, v.Total)
	assert.Len(t, v.Employees, 5)
	assert.True(t, v.HasPrevious)
	assert.False(t, v.HasNext)
	assert.Equal(t, []int{1, 2, 3}, v.Pages)
	assert.Equal(t, "Displaying 5 rows. Total employees: 25", v.Summary)

	failed := BuildView(State{Status: StatusFailed, Message: FetchErrorMessage}, 1)
	assert.Equal(t, FetchErrorMessage, failed.Message)
	assert.Empty(t, failed.Employees)

	loading := BuildView(State{Status: StatusLoading}, 1)
	assert.Equal(t, LoadingMessage, loading.Message)
}

func TestEmployeesHandler(t *testing.T) {
	srv, _ := feedServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(employees(25))
	})
	l := NewLoader(srv.Client(), srv.URL, zap.NewNop())
	handler := EmployeesHandler(l)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	l.Load(context.Background())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/employees?page=2", nil)
	w = httptest.NewRecorder()
	handler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var v View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	assert.Equal(t, 2, v.Page)
	require.Len(t, v.Employees, 10)
	assert.Equal(t, "11", v.Employees[0].ID)
}

func TestEmployeesHandler_Failed(t *testing.T) {
	srv, _ := feedServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	l := NewLoader(srv.Client(), srv.URL, zap.NewNop())
	l.Load(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?page=x", nil)
	w := httptest.NewRecorder()
	EmployeesHandler(l)(w, req)

	require.Equal(t, http.StatusBadGateway, w.Code)
	var v View
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	assert.Equal(t, FetchErrorMessage, v.Message)
	assert.Empty(t, v.Employees)
}
