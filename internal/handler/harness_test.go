package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/okami-ct/okami-dashboard/internal/dto"
	"github.com/okami-ct/okami-dashboard/internal/middleware"
	"github.com/okami-ct/okami-dashboard/internal/models"
	"github.com/okami-ct/okami-dashboard/internal/repository"
	"github.com/okami-ct/okami-dashboard/internal/service"
	"github.com/okami-ct/okami-dashboard/internal/store"
	"github.com/okami-ct/okami-dashboard/pkg/apiclient"
	"github.com/okami-ct/okami-dashboard/pkg/storage"
)

// backend fakes the academy REST API. Routes are keyed by "METHOD /path" relative to /api.
type backend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
}

func (b *backend) handle(key string, fn http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = fn
}

func (b *backend) json(key string, status int, body string) {
	b.handle(key, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *backend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
	b.mu.Lock()
	b.calls = append(b.calls, key)
	fn, ok := b.routes[key]
	b.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Rota não encontrada"}`)
		return
	}
	fn(w, r)
}

type harness struct {
	router  *gin.Engine
	backend *backend
	hub     *store.Hub
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	be := &backend{t: t, routes: map[string]http.HandlerFunc{}}
	be.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		role := strings.SplitN(req.Email, "@", 2)[0]
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "token-" + role,
			"user":  map[string]string{"id": "u-" + role, "email": req.Email, "role": role, "student_id": "st-1"},
		})
	})
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second})
	require.NoError(t, err)

	hub := store.NewHub(func(token string) *store.Registry {
		return store.NewRegistry(service.NewServices(client.WithTokens(apiclient.StaticToken(token))), store.Options{})
	}, nil)

	repo := repository.NewSessionRepository(nil, "test:", nil)
	sessions := service.NewSessionService(repo, service.NewAuthService(client), dto.NewValidator(), time.Hour, nil)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	reports := service.NewReportService(files, storage.NewSignedURLSigner("secret", time.Hour), time.Hour, nil)

	r := gin.New()
	Register(r, Dependencies{
		Sessions:       sessions,
		SessionBackend: repo,
		Hub:            hub,
		Reports:        reports,
		Metrics:        service.NewMetricsService(),
	})
	return &harness{router: r, backend: be, hub: hub}
}

// login opens a session for role and returns its id.
func (h *harness) login(t *testing.T, role models.UserRole) string {
	t.Helper()
	rec := h.do(http.MethodPost, "/auth/login", "", `{"email":"`+string(role)+`@okami.test","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Data SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.SessionID)
	return body.Data.SessionID
}

func (h *harness) do(method, path, session, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *errorBody             `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeState[T any](t *testing.T, rec *httptest.ResponseRecorder) store.State[T] {
	t.Helper()
	var state store.State[T]
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &state))
	return state
}
