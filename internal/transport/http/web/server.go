// Package webhttp serves the stroke-risk pages and JSON API over gin.
package webhttp

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"strokerisk/internal/logger"
	"strokerisk/internal/model"
	"strokerisk/internal/store"
	webassets "strokerisk/internal/transport/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultAddr         = ":5000"
	defaultMaxBodyBytes = 1 << 20
	traceIDKey          = "trace_id"
	traceIDHeader       = "X-Trace-Id"
)

// Server hosts the prediction pages and API.
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig lists the dependencies of the HTTP server.
type ServerConfig struct {
	Addr       string
	Classifier model.Classifier
	// ModelInfo feeds /healthz. Optional.
	ModelInfo func() model.Info
	// Predictions enables the audit log when non-nil.
	Predictions      store.PredictionRepository
	TemplateDir      string
	StaticDir        string
	LegacyFieldOrder bool
	MaxBodyBytes     int64
}

// NewServer builds the gin engine and registers every route.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Classifier == nil {
		return nil, errors.New("web server requires a classifier")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	if err := loadTemplates(router, cfg.TemplateDir); err != nil {
		return nil, err
	}
	if err := serveStatic(router, cfg.StaticDir); err != nil {
		return nil, err
	}

	h := &Handlers{
		classifier:   cfg.Classifier,
		modelInfo:    cfg.ModelInfo,
		predictions:  cfg.Predictions,
		legacyOrder:  cfg.LegacyFieldOrder,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
	h.Register(router)

	return &Server{addr: cfg.Addr, router: router}, nil
}

func loadTemplates(router *gin.Engine, dir string) error {
	if dir = strings.TrimSpace(dir); dir != "" {
		stat, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("template dir: %w", err)
		}
		if !stat.IsDir() {
			return fmt.Errorf("template dir %s is not a directory", dir)
		}
		files, _ := filepath.Glob(filepath.Join(dir, "*.html"))
		if len(files) == 0 {
			return fmt.Errorf("no templates found in %s", dir)
		}
		router.LoadHTMLFiles(files...)
		return nil
	}
	const embeddedTplBase = "templates"
	files, err := fs.Glob(webassets.Templates, embeddedTplBase+"/*.html")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no templates found in embedded FS")
	}
	tmpl, err := template.New("pages").ParseFS(webassets.Templates, files...)
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)
	return nil
}

func serveStatic(router *gin.Engine, dir string) error {
	if dir = strings.TrimSpace(dir); dir != "" {
		stat, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("static dir: %w", err)
		}
		if !stat.IsDir() {
			return fmt.Errorf("static dir %s is not a directory", dir)
		}
		router.Static("/static", dir)
		return nil
	}
	const embeddedStaticBase = "static"
	sub, err := fs.Sub(webassets.Static, embeddedStaticBase)
	if err != nil {
		return err
	}
	router.StaticFS("/static", http.FS(sub))
	return nil
}

// requestLogger tags each request with a trace id and logs it once served.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := uuid.NewString()
		c.Set(traceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		client := c.ClientIP()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()
		fullPath := path
		if query != "" {
			fullPath = path + "?" + query
		}
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s trace=%s", method, fullPath, status, client, dur, traceID)
	}
}

func traceID(c *gin.Context) string {
	if v := c.GetString(traceIDKey); v != "" {
		return v
	}
	return uuid.NewString()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
