package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"chatbotd/internal/config"
	"chatbotd/internal/manager"
	"chatbotd/pkg/types"
)

type mockService struct {
	ready      bool
	reply      string
	err        error
	status     types.StatusResponse
	gotMessage string
}

func (m *mockService) Chat(ctx context.Context, message string) (string, error) {
	m.gotMessage = message
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockService) Status() types.StatusResponse { return m.status }
func (m *mockService) Ready() bool                  { return m.ready }

func postChat(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chatbot", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeField(t *testing.T, w *httptest.ResponseRecorder, key string) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return body[key]
}

func TestChatbotUnavailableRegardlessOfBody(t *testing.T) {
	h := NewMux(&mockService{ready: false})
	for _, body := range []string{`{"message":"Hello"}`, "not-json", "", `{}`} {
		w := postChat(t, h, body)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("body %q: status=%d", body, w.Code)
		}
		if got := decodeField(t, w, "response"); got != msgUnavailable {
			t.Fatalf("body %q: response=%q", body, got)
		}
	}
}

func TestChatbotInvalidJSON(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	for _, body := range []string{"not-json", "", "{"} {
		w := postChat(t, h, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status=%d", body, w.Code)
		}
		if got := decodeField(t, w, "error"); got != msgInvalidJSON {
			t.Fatalf("body %q: error=%q", body, got)
		}
	}
}

func TestChatbotNoMessage(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   \n\t "}`} {
		w := postChat(t, h, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status=%d", body, w.Code)
		}
		if got := decodeField(t, w, "error"); got != msgNoMessage {
			t.Fatalf("body %q: error=%q", body, got)
		}
	}
}

func TestChatbotSuccess(t *testing.T) {
	svc := &mockService{ready: true, reply: "2+2 equals 4."}
	h := NewMux(svc)
	w := postChat(t, h, `{"message":"  What is 2+2?  "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := decodeField(t, w, "response"); got != "2+2 equals 4." {
		t.Fatalf("response=%q", got)
	}
	if svc.gotMessage != "What is 2+2?" {
		t.Fatalf("message not trimmed before Chat: %q", svc.gotMessage)
	}
}

func TestChatbotInferenceFailureHidesDetail(t *testing.T) {
	h := NewMux(&mockService{ready: true, err: errors.New("cuda device exploded")})
	w := postChat(t, h, `{"message":"Hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decodeField(t, w, "response"); got != msgInternal {
		t.Fatalf("response=%q", got)
	}
	if strings.Contains(w.Body.String(), "cuda") {
		t.Fatalf("engine error leaked to client: %s", w.Body.String())
	}
}

func TestChatbotUnavailableErrorMapsTo503(t *testing.T) {
	// An unavailable error surfacing from the service maps to 503 even when
	// Ready was answered optimistically.
	mgr := manager.New(config.Config{ModelPath: "/m/x.gguf"}, manager.Unavailable("no model"), zerolog.New(io.Discard))
	_, unavailErr := mgr.Chat(context.Background(), "hi")
	h := NewMux(&mockService{ready: true, err: unavailErr})
	w := postChat(t, h, `{"message":"Hello"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decodeField(t, w, "response"); got != msgUnavailable {
		t.Fatalf("response=%q", got)
	}
}

func TestChatbotShutdownStillWritesJSONError(t *testing.T) {
	// Graceful shutdown cancels the base context while a request is in
	// flight; the still-connected client must get the fixed JSON error
	// payload, not an empty 200.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	SetBaseContext(ctx)
	defer SetBaseContext(context.Background())

	h := NewMux(&mockService{ready: true, err: context.Canceled})
	w := postChat(t, h, `{"message":"Hello"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if got := decodeField(t, w, "response"); got != msgInternal {
		t.Fatalf("response=%q", got)
	}
}

func TestChatbotOversizeBody(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	big := `{"message":"` + strings.Repeat("a", int(maxBodyBytes)+1) + `"}`
	w := postChat(t, h, big)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decodeField(t, w, "error"); got != msgInvalidJSON {
		t.Fatalf("error=%q", got)
	}
}

func TestChatbotLogsWithZerolog(t *testing.T) {
	SetLogger(zerolog.New(io.Discard))
	defer func() { zlog = nil }()
	h := NewMux(&mockService{ready: true, reply: "ok"})
	if w := postChat(t, h, `{"message":"Hello"}`); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestIndexPage(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("content-type=%s", ct)
	}
	if !strings.Contains(w.Body.String(), "/chatbot") {
		t.Fatalf("page does not reference the chat endpoint")
	}
}

func TestCORSAndSecurityHeaders(t *testing.T) {
	h := NewMux(&mockService{ready: true})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Access-Control-Allow-Origin=%q", got)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options=%q", got)
	}
}

func TestHealthz(t *testing.T) {
	h := NewMux(&mockService{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{ready: true}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready: status=%d", w.Code)
	}
	w = httptest.NewRecorder()
	NewMux(&mockService{ready: false}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unavailable: status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unavailable") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "ready", ContextSize: 4096}}
	h := NewMux(svc)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.State != "ready" || body.ContextSize != 4096 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := NewMux(&mockService{})
	// Generate one request first so the counter vec has samples.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "chatbotd_http_requests_total") {
		t.Fatalf("metrics missing request counter")
	}
}
