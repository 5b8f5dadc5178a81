package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
)

type recordedRequest struct {
	Method  string
	Path    string
	RawPath string
	Query   map[string]string
	Body   map[string]interface{}
}

type fakeBackend struct {
	mu        sync.Mutex
	requests  []recordedRequest
	status    int
	responses map[string]string
}

func newFakeBackend(t *testing.T, responses map[string]string) (*fakeBackend, *apiclient.Client) {
	t.Helper()
	backend := &fakeBackend{responses: responses, status: http.StatusOK}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api", Tokens: apiclient.StaticToken("token")})
	require.NoError(t, err)
	return backend, client
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, RawPath: r.URL.EscapedPath(), Query: map[string]string{}}
	for k := range r.URL.Query() {
		rec.Query[k] = r.URL.Query().Get(k)
	}
	if r.Body != nil && r.Header.Get("Content-Type") == "application/json" {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &rec.Body)
	}
	b.mu.Lock()
	b.requests = append(b.requests, rec)
	status := b.status
	body, ok := b.responses[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (b *fakeBackend) last() recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return recordedRequest{}
	}
	return b.requests[len(b.requests)-1]
}

func (b *fakeBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}
