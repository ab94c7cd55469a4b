package kit

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("1.2.3.4") || !l.Allow("1.2.3.4") {
		t.Fatalf("first two hits must pass")
	}
	if l.Allow("1.2.3.4") {
		t.Fatalf("third hit inside window must be limited")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatalf("other ip must not be limited")
	}

	now = now.Add(61 * time.Second)
	if !l.Allow("1.2.3.4") {
		t.Fatalf("hit after window must pass")
	}
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	l.TrustForwarded = true
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(); rec.Code != http.StatusNoContent {
		t.Fatalf("status=%d", rec.Code)
	}
	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status=%d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("retry-after=%q", rec.Header().Get("Retry-After"))
	}
}

func TestMetricsAuth(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	cases := []struct {
		token, header string
		want          int
	}{
		{"secret", "Bearer secret", http.StatusOK},
		{"secret", "Bearer wrong", http.StatusForbidden},
		{"secret", "secret", http.StatusForbidden},
		{"", "Bearer ", http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("Authorization", tc.header)
		rec := httptest.NewRecorder()

		MetricsAuth(tc.token)(ok).ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("token=%q header=%q status=%d want=%d", tc.token, tc.header, rec.Code, tc.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Query string `json:"query"`
	}

	cases := []struct {
		in      string
		wantErr bool
	}{
		{`{"query":"phone"}`, false},
		{`{"query":"phone","extra":1}`, true},
		{`{"query":"a"}{"query":"b"}`, true},
		{`not json`, true},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(tc.in))
		var b body
		err := DecodeJSON(httptest.NewRecorder(), req, &b)
		if (err != nil) != tc.wantErr {
			t.Fatalf("in=%s err=%v", tc.in, err)
		}
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := NewLogger("showcase", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	l, err := NewLogger("showcase", "debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	_ = l.Sync()
}

func TestNewFileLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.log")

	l, err := NewFileLogger("showcase-tui", "info", path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	l.Info("hello")
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"service":"showcase-tui"`) || !strings.Contains(string(raw), `"msg":"hello"`) {
		t.Fatalf("unexpected log output: %s", raw)
	}
}

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware("showcase", ChiRoutePatternOrPath))
	r.Get("/api/sessions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/sessions/a", "/api/sessions/b", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.Requests.WithLabelValues("showcase", "GET", "/api/sessions/{id}", "404")); got != 2 {
		t.Fatalf("session route count=%v want 2", got)
	}
	if got := testutil.ToFloat64(m.Requests.WithLabelValues("showcase", "GET", "/ok", "200")); got != 1 {
		t.Fatalf("ok route count=%v want 1", got)
	}
	if got := testutil.ToFloat64(m.InFlight.WithLabelValues("showcase")); got != 0 {
		t.Fatalf("in flight=%v want 0", got)
	}
}

func TestIPRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		req.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	if codes[http.StatusNoContent] != 1 || codes[http.StatusTooManyRequests] != 4 {
		t.Fatalf("rotating X-Forwarded-For must not reset the limit: %v", codes)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")

	if got := clientIP(req, false); got != "192.0.2.7" {
		t.Fatalf("untrusted: got %q", got)
	}
	if got := clientIP(req, true); got != "9.9.9.9" {
		t.Fatalf("trusted: got %q", got)
	}
}
