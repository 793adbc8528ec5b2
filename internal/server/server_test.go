package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/server/ratelimit"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// mockStore is an in-memory RunStore
type mockStore struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]*types.RankingRun
	saveErr error
	getErr  error
}

func newMockStore() *mockStore {
	return &mockStore{runs: make(map[uuid.UUID]*types.RankingRun)}
}

func (m *mockStore) SaveRankingRun(_ context.Context, run *types.RankingRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *mockStore) GetRankingRun(_ context.Context, id uuid.UUID) (*types.RankingRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.runs[id], nil
}

func testEvaluator(t *testing.T) *ranking.Evaluator {
	t.Helper()
	tax, err := skills.Default()
	require.NoError(t, err)
	evaluator := ranking.NewEvaluator(tax)
	evaluator.Now = func() time.Time { return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC) }
	return evaluator
}

// newTestServer builds a server; a nil store is passed through as an untyped nil
func newTestServer(t *testing.T, store RunStore, limits *ratelimit.Config) *Server {
	t.Helper()
	if limits == nil {
		limits = &ratelimit.Config{Enabled: false}
	}
	s := New(Options{Port: 0, Workers: 2, MinResumeChars: 20, RateLimit: limits}, testEvaluator(t), store, zap.NewNop())
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, s.evaluator.Taxonomy.Version(), body["taxonomy_version"])
}

// pingStore is a mockStore that reports connectivity
type pingStore struct {
	*mockStore
	pingErr error
}

func (p *pingStore) Ping(context.Context) error {
	return p.pingErr
}

func TestHealth_Database(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		wantStatus   string
		wantDatabase string
	}{
		{"reachable", nil, "ok", "ok"},
		{"unreachable", errors.New("connection refused"), "degraded", "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &pingStore{mockStore: newMockStore(), pingErr: tt.pingErr}, nil)
			w := doRequest(t, s.Handler(), http.MethodGet, "/health", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantDatabase, body["database"])
		})
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w := doRequest(t, s.Handler(), http.MethodOptions, "/rank", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil, nil)
	w := doRequest(t, s.Handler(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s.Handler(), http.MethodGet, "/evaluate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit(t *testing.T) {
	limits := &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []ratelimit.EndpointConfig{
			{Path: "/taxonomy/", Method: http.MethodGet, Limit: 2, Window: time.Minute, Burst: 2},
		},
	}
	s := newTestServer(t, nil, limits)
	handler := s.Handler()

	for i := range 2 {
		w := doRequest(t, handler, http.MethodGet, "/taxonomy/go", nil)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(t, handler, http.MethodGet, "/taxonomy/python", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	assert.EqualValues(t, 30, body["retry_after"])

	t.Run("Health is never limited", func(t *testing.T) {
		for range 5 {
			assert.Equal(t, http.StatusOK, doRequest(t, handler, http.MethodGet, "/health", nil).Code)
		}
	})
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ErrValidation{Field: "job", Message: "is required"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "ranking run", ID: "x"}, http.StatusNotFound},
		{"store", &ErrStoreUnavailable{}, http.StatusServiceUnavailable},
		{"wrapped validation", errors.Join(errors.New("ctx"), &ErrValidation{Message: "bad"}), http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: job - is required", (&ErrValidation{Field: "job", Message: "is required"}).Error())
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
	assert.Equal(t, "ranking run not found: abc", (&ErrNotFound{Resource: "ranking run", ID: "abc"}).Error())
}

func TestJSONFieldPath(t *testing.T) {
	assert.Equal(t, "Job.MinExperience", jsonFieldPath("RankRequest.Job.MinExperience"))
	assert.Equal(t, "Resumes", jsonFieldPath("Resumes"))
}

func TestStart_Shutdown(t *testing.T) {
	s := New(Options{Port: 0}, testEvaluator(t), nil, zap.NewNop())
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
