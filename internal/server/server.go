// Package server serves rendered frames of the molten scene over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"molten-core/internal/render"
	"molten-core/internal/sims/molten"
	"molten-core/pkg/cache"
)

// ErrUnknownPreset is returned when a request names a preset that does
// not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Options configures a Server.
type Options struct {
	Cache    cache.Cache
	TTL      time.Duration
	Logger   *log.Logger
	LowPower bool
	// Params are scene parameter overrides applied to every request.
	Params map[string]string
	// MaxRenders bounds concurrent frame renders. Zero means GOMAXPROCS.
	MaxRenders int
	// RenderTimeout bounds a shared render once started. Zero means
	// DefaultRenderTimeout.
	RenderTimeout time.Duration
}

// DefaultRenderTimeout bounds a render that no request is waiting on any more.
const DefaultRenderTimeout = 30 * time.Second

// Server renders frames on demand. Every request builds its own scene.
type Server struct {
	cache    cache.Cache
	ttl      time.Duration
	logger   *log.Logger
	lowPower bool
	params   map[string]string
	renders  *semaphore.Weighted
	timeout  time.Duration
	group    singleflight.Group
	router   chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxRenders <= 0 {
		opts.MaxRenders = runtime.GOMAXPROCS(0)
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = DefaultRenderTimeout
	}
	s := &Server{
		cache:    opts.Cache,
		ttl:      opts.TTL,
		logger:   opts.Logger,
		lowPower: opts.LowPower,
		params:   opts.Params,
		renders:  semaphore.NewWeighted(int64(opts.MaxRenders)),
		timeout:  opts.RenderTimeout,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/frame.png", s.handleFrame)
	r.Get("/params", s.handleParams)
	r.Get("/presets", s.handlePresets)
	s.router = r
	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	q, err := parseFrameQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key := cache.Key("frame", q, s.lowPower, s.params)
	ctx := r.Context()

	data, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache get", "err", err)
	}
	if !hit {
		data, err = s.sharedRender(ctx, key, q)
		if err != nil {
			s.frameError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheStatus(hit))
	_, _ = w.Write(data)
}

func (s *Server) frameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownPreset):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "render cancelled", http.StatusServiceUnavailable)
	default:
		s.logger.Error("render frame", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// sharedRender collapses identical renders into one. The render is
// detached from the request that started it so other waiters still get
// the frame when that client goes away; each caller stops waiting when
// its own ctx is done.
func (s *Server) sharedRender(ctx context.Context, key string, q frameQuery) ([]byte, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		data, err := s.renderPNG(rctx, q)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(rctx, key, data, s.ttl); err != nil {
			s.logger.Warn("cache set", "err", err)
		}
		return data, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// renderPNG steps a fresh scene to q.Frame and encodes the composite.
func (s *Server) renderPNG(ctx context.Context, q frameQuery) ([]byte, error) {
	if err := s.renders.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.renders.Release(1)

	scene, err := s.scene(q.Preset, q.W, q.H, q.Seed)
	if err != nil {
		return nil, err
	}
	img, err := RenderFrame(ctx, scene, q.Frame)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Server) scene(preset string, w, h int, seed int64) (*molten.Animator, error) {
	opts := make(map[string]string, len(s.params)+4)
	for k, v := range s.params {
		opts[k] = v
	}
	opts["w"] = strconv.Itoa(w)
	opts["h"] = strconv.Itoa(h)
	opts["seed"] = strconv.FormatInt(seed, 10)
	opts["low_power"] = strconv.FormatBool(s.lowPower)
	scene, ok := molten.NewPreset(preset, opts)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, preset)
	}
	return scene, nil
}

// RenderFrame advances scene by frames steps and composites the result.
// It checks ctx between steps.
func RenderFrame(ctx context.Context, scene *molten.Animator, frames int) (*image.RGBA, error) {
	size := scene.Size()
	raster, err := render.NewRaster(size.W, size.H)
	if err != nil {
		return nil, err
	}
	for i := 0; i < frames; i++ {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		scene.Step()
	}
	scene.Draw(raster)
	return raster.Image(), nil
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	preset := r.URL.Query().Get("preset")
	if preset == "" {
		preset = molten.DefaultPreset
	}
	d := defaultFrameQuery()
	scene, err := s.scene(preset, d.W, d.H, d.Seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, scene.Parameters())
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, molten.Presets())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
