package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"admin-panel/internal/models"

	"go.uber.org/zap"
)

// FetchErrorMessage is what the directory shows when the feed cannot be read.
const FetchErrorMessage = "failed to fetch data"

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// State is a snapshot of the startup fetch. Records is non-nil only when
// Status is StatusReady; Message is set only when it is StatusFailed.
type State struct {
	Status  Status
	Records []models.Employee
	Message string
}

// Loader reads the employee feed exactly once. Every caller of Load, however
// many and however concurrent, observes the result of that single request.
type Loader struct {
	client *http.Client
	url    string
	logger *zap.Logger

	once  sync.Once
	mu    sync.RWMutex
	state State
}

func NewLoader(client *http.Client, url string, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{
		client: client,
		url:    url,
		logger: logger,
		state:  State{Status: StatusLoading},
	}
}

// Load performs the fetch on first call and blocks until it finishes. Later
// calls return the stored result without touching the network.
func (l *Loader) Load(ctx context.Context) State {
	l.once.Do(func() {
		next := State{Status: StatusFailed, Message: FetchErrorMessage}
		records, err := l.fetch(ctx)
		if err != nil {
			l.logger.Error("fetching error", zap.String("url", l.url), zap.Error(err))
		} else {
			next = State{Status: StatusReady, Records: records}
			l.logger.Info("employee directory loaded", zap.Int("records", len(records)))
		}

		l.mu.Lock()
		l.state = next
		l.mu.Unlock()
	})
	return l.State()
}

// State returns the current snapshot without waiting for the fetch.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loader) fetch(ctx context.Context) ([]models.Employee, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("network response was not ok: %s", resp.Status)
	}

	records := make([]models.Employee, 0)
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if records == nil {
		records = []models.Employee{}
	}
	return records, nil
}
