// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/filamentenespanol/sitegen/pkg/build"
	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/metrics"
	"github.com/filamentenespanol/sitegen/pkg/theme"
	"github.com/filamentenespanol/sitegen/pkg/util/files"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

const (
	shutdownTimeout = 5 * time.Second
	// MetricsPath is served under the base URL when a Gatherer is set.
	// Sources starting with "_" are never pages, so it cannot shadow one.
	MetricsPath = "_metrics"
)

// Server serves the last successfully built site. Pages are wrapped per
// request according to the visitor's consent cookie.
type Server struct {
	// StaticDir is served for paths that are not pages
	StaticDir string
	// Gatherer, when set, is exposed at MetricsPath
	Gatherer  prometheus.Gatherer
	mux       sync.RWMutex
	site      *build.Site
	base      string
}

// New creates a Server for site
func New(site *build.Site, staticDir string) *Server {
	metrics.ObserveSite(len(site.Pages))
	return &Server{
		StaticDir: staticDir,
		site:      site,
		base:      site.Config.Route(""),
	}
}

// Site returns the site currently served
func (s *Server) Site() *build.Site {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.site
}

// Swap replaces the served site
func (s *Server) Swap(site *build.Site) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if b := site.Config.Route(""); b != s.base {
		klog.Warningf("baseUrl changed from %s to %s, restart the server to apply it", s.base, b)
	}
	s.site = site
	metrics.ObserveSite(len(site.Pages))
}

// Handler returns the router of the server
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(noCache)
	r.Use(metrics.InstrumentHandler)

	if s.Gatherer != nil {
		r.Handle(s.base+MetricsPath, metrics.Handler(s.Gatherer))
	}
	r.Handle(s.base+consent.Route, &consent.Handler{CookiePath: s.base})
	r.Handle(s.base+theme.AssetsDir+"/*", http.StripPrefix(s.base+theme.AssetsDir+"/", http.FileServer(http.FS(theme.Assets()))))
	r.Get("/*", s.serve)
	r.Head("/*", s.serve)
	return r
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	site := s.Site()
	state := consent.StateFromRequest(r)
	if p, ok := site.Page(r.URL.Path); ok {
		s.render(w, site, p, state, http.StatusOK)
		return
	}
	if f, ok := s.staticFile(r.URL.Path); ok {
		http.ServeFile(w, r, f)
		return
	}
	if site.NotFound != nil {
		s.render(w, site, site.NotFound, state, http.StatusNotFound)
		return
	}
	http.NotFound(w, r)
}

func (s *Server) render(w http.ResponseWriter, site *build.Site, p *build.Page, state consent.State, status int) {
	var b bytes.Buffer
	if err := site.Render(&b, p, state); err != nil {
		klog.Errorf("rendering %s failed: %v", p.File, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b.Bytes())
}

// staticFile maps a URL path to an existing regular file of the static directory
func (s *Server) staticFile(urlPath string) (string, bool) {
	if s.StaticDir == "" || !strings.HasPrefix(urlPath, s.base) {
		return "", false
	}
	rel := path.Clean("/" + strings.TrimPrefix(urlPath, s.base))
	f := filepath.Join(s.StaticDir, filepath.FromSlash(rel))
	fi, err := os.Stat(f)
	if err != nil || fi.IsDir() {
		return "", false
	}
	return f, true
}

// Run serves until ctx is done
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	klog.Infof("serving %s at http://localhost%s%s", s.Site().Config.Title, addr, s.base)
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		klog.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

// Watch rebuilds the site when files under paths change, until ctx is done.
// A failed rebuild keeps the previous site.
func (s *Server) Watch(ctx context.Context, paths []string, rebuild func(context.Context) (*build.Site, error)) error {
	var existing []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	w := files.NewFileWatcher()
	if err := w.AddToWatch(existing...); err != nil {
		return err
	}
	return w.Watch(ctx.Done(), func() error {
		klog.Info("changes detected, rebuilding")
		site, err := rebuild(ctx)
		metrics.ObserveRebuild(err)
		if err != nil {
			return err
		}
		s.Swap(site)
		klog.Infof("rebuilt %d pages", len(site.Pages))
		return nil
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with klog
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		klog.V(2).Infof("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
