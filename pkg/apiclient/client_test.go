package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/okami-ct/okami-dashboard/pkg/errors"
)

type recordingObserver struct {
	mu    sync.Mutex
	paths []string
	codes []int
}

func (o *recordingObserver) ObserveUpstreamRequest(method, path string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths = append(o.paths, method+" "+path)
	o.codes = append(o.codes, status)
}

func TestClientDoSendsTokenQueryAndBody(t *testing.T) {
	var got *http.Request
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"p1"},"success":true}`))
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	client, err := New(Options{BaseURL: srv.URL + "/api/", Tokens: StaticToken("tok-1"), Observer: observer})
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	raw, err := client.Do(ctx, http.MethodPost, "/payments/15/pay", url.Values{"x": {"1"}}, map[string]string{"payment_method": "pix"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":"p1"},"success":true}`, string(raw))

	require.NotNil(t, got)
	assert.Equal(t, "/api/payments/15/pay", got.URL.Path)
	assert.Equal(t, "1", got.URL.Query().Get("x"))
	assert.Equal(t, "Bearer tok-1", got.Header.Get("Authorization"))
	assert.Equal(t, "req-42", got.Header.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "pix", body["payment_method"])
	assert.Equal(t, []string{"POST /payments/:id/pay"}, observer.paths)
	assert.Equal(t, []int{http.StatusOK}, observer.codes)
}

func TestClientDoMapsErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"CPF já cadastrado"}`))
	}))
	defer srv.Close()

	client, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), http.MethodPost, "students", nil, map[string]string{"name": "A"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Equal(t, "CPF já cadastrado", appErr.Message)
}

func TestClientDoNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	client, err := New(Options{BaseURL: base})
	require.NoError(t, err)

	_, err = client.Do(context.Background(), http.MethodGet, "students", nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)
}

func TestClientUploadMultipart(t *testing.T) {
	var title, filename, content string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		title = r.FormValue("title")
		file, header, err := r.FormFile("video")
		require.NoError(t, err)
		defer file.Close()
		filename = header.Filename
		data, _ := io.ReadAll(file)
		content = string(data)
		_, _ = w.Write([]byte(`{"id":"v1","title":"Passagem de guarda"}`))
	}))
	defer srv.Close()

	client, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "videos/upload", map[string]string{"title": "Passagem de guarda"}, File{
		Field:       "video",
		Filename:    "guarda.mp4",
		ContentType: "video/mp4",
		Content:     strings.NewReader("binary"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Passagem de guarda", title)
	assert.Equal(t, "guarda.mp4", filename)
	assert.Equal(t, "binary", content)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New(Options{BaseURL: "/api"})
	require.Error(t, err)
}

func TestClientDoKeepsEscapedSegmentsAndContextToken(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := New(Options{BaseURL: srv.URL + "/api", Tokens: StaticToken("shared")})
	require.NoError(t, err)

	ctx := ContextWithToken(context.Background(), "fresh")
	_, err = client.Do(ctx, http.MethodGet, "students/"+url.PathEscape("a/b")+"/classes", nil, nil)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/students/a%2Fb/classes", got.URL.EscapedPath())
	assert.Equal(t, "Bearer fresh", got.Header.Get("Authorization"))
}
