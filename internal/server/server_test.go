package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"molten-core/internal/core"
	"molten-core/internal/sims/molten"
	"molten-core/pkg/cache"
)

func newTestServer(t *testing.T, c cache.Cache) (*httptest.Server, *Server) {
	t.Helper()
	s := New(Options{
		Cache:  c,
		Logger: log.New(io.Discard),
		Params: map[string]string{"embers": "10", "blobs": "2"},
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

func get(t *testing.T, ts *httptest.Server, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := get(t, ts, "/healthz", nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRequestsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	s := New(Options{Logger: log.New(&logs)})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	out := logs.String()
	for _, want := range []string{"/healthz", "status=200", rec.Header().Get(RequestIDHeader)} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestRequestIDEcho(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	const id = "3f8e2c1a-5b7d-4e9f-8a6c-2d1b0e9f7a5c"
	resp, _ := get(t, ts, "/healthz", http.Header{RequestIDHeader: {id}})
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Fatalf("request id = %q, want %q", got, id)
	}
	resp, _ = get(t, ts, "/healthz", http.Header{RequestIDHeader: {"not-a-uuid"}})
	if got := resp.Header.Get(RequestIDHeader); got == "not-a-uuid" || got == "" {
		t.Fatalf("invalid request id should be replaced, got %q", got)
	}
}

func TestFramePNGAndCache(t *testing.T) {
	ts, _ := newTestServer(t, cache.NewMemoryCache(8))

	resp, body := get(t, ts, "/frame.png?w=64&h=48&frame=5&seed=9", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "miss" {
		t.Errorf("first request X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("png size = %v", b)
	}

	resp, again := get(t, ts, "/frame.png?w=64&h=48&frame=5&seed=9", nil)
	if resp.Header.Get("X-Cache") != "hit" {
		t.Errorf("second request X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	if !bytes.Equal(body, again) {
		t.Error("cached frame differs from rendered frame")
	}
}

func TestFrameDeterministicWithoutCache(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	_, a := get(t, ts, "/frame.png?w=32&h=32&frame=3", nil)
	_, b := get(t, ts, "/frame.png?w=32&h=32&frame=3", nil)
	if !bytes.Equal(a, b) {
		t.Fatal("same query should render identical frames")
	}
}

func TestFrameBadQuery(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	for _, q := range []string{"w=8", "h=4000", "frame=-1", "frame=3601", "w=abc", "seed=x"} {
		resp, body := get(t, ts, "/frame.png?"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
		if !strings.Contains(string(body), ErrBadQuery.Error()) {
			t.Errorf("%s: body %q should explain the error", q, body)
		}
	}
}

func TestFrameUnknownPreset(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, _ := get(t, ts, "/frame.png?preset=nope", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestParamsJSON(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	resp, body := get(t, ts, "/params?preset=calm", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var snap core.ParameterSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := snap.Lookup("embers")
	if !ok || p.Value != "10" {
		t.Fatalf("embers = %+v (%v), want server override 10", p, ok)
	}
	if _, ok := snap.Lookup("cracks"); !ok {
		t.Fatal("cracks missing from snapshot")
	}
}

func TestPresets(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	_, body := get(t, ts, "/presets", nil)
	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != len(molten.Presets()) {
		t.Fatalf("presets = %v", names)
	}
}

func TestParseFrameQueryDefaults(t *testing.T) {
	q, err := parseFrameQuery(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q != defaultFrameQuery() {
		t.Fatalf("defaults = %+v", q)
	}
	_, err = parseFrameQuery(url.Values{"w": {"1921"}})
	if !errors.Is(err, ErrBadQuery) {
		t.Fatalf("err = %v, want ErrBadQuery", err)
	}
	q, err = parseFrameQuery(url.Values{"w": {"16"}, "h": {"1920"}, "frame": {"0"}})
	if err != nil || q.W != 16 || q.H != 1920 || q.Frame != 0 {
		t.Fatalf("limits should be inclusive: %+v %v", q, err)
	}
}

func TestRenderFrameHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scene := molten.New(32, 32)
	if _, err := RenderFrame(ctx, scene, 10); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	img, err := RenderFrame(context.Background(), scene, 0)
	if err != nil || img.Bounds().Dx() != 32 {
		t.Fatalf("render: %v", err)
	}
}

func TestSharedRenderSurvivesFirstClientLeaving(t *testing.T) {
	s := New(Options{Logger: log.New(io.Discard), MaxRenders: 1})
	h := s.Handler()
	if err := s.renders.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("hold render slot: %v", err)
	}

	const path = "/frame.png?w=32&h=32&frame=5"
	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	recA, recB := httptest.NewRecorder(), httptest.NewRecorder()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		h.ServeHTTP(recA, httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctxA))
	}()
	time.Sleep(50 * time.Millisecond)
	go func() {
		defer wg.Done()
		h.ServeHTTP(recB, httptest.NewRequest(http.MethodGet, path, nil))
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	time.Sleep(50 * time.Millisecond)
	s.renders.Release(1)
	wg.Wait()

	if recA.Code != http.StatusServiceUnavailable {
		t.Errorf("departed client status = %d, want 503", recA.Code)
	}
	if recB.Code != http.StatusOK {
		t.Fatalf("waiting client status = %d, want 200: %s", recB.Code, recB.Body.String())
	}
	if _, err := png.Decode(recB.Body); err != nil {
		t.Fatalf("decode png: %v", err)
	}
}
