package model

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"strokerisk/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Info describes the forest currently served by a Registry.
type Info struct {
	Name       string    `json:"name"`
	Version    int       `json:"version"`
	Generation int64     `json:"generation"`
	LoadedAt   time.Time `json:"loaded_at"`
	Path       string    `json:"path"`
}

// ChangeListener is called after a successful reload.
type ChangeListener func(Info)

// Registry owns the active forest and can swap it when the artifact changes.
// Readers keep whichever forest they obtained for the rest of their request.
type Registry struct {
	path         string
	featureCount int

	mu         sync.RWMutex
	forest     *Forest
	generation int64
	loadedAt   time.Time
	listeners  []ChangeListener
}

// NewRegistry loads the artifact at path. When featureCount is positive every
// loaded artifact must declare exactly that many features.
func NewRegistry(path string, featureCount int) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("model registry requires path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	r := &Registry{path: abs, featureCount: featureCount}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewStaticRegistry serves a prebuilt forest and never reloads.
func NewStaticRegistry(f *Forest) *Registry {
	return &Registry{forest: f, generation: 1, loadedAt: time.Now()}
}

// Reload re-reads the artifact. On failure the previous forest stays active.
func (r *Registry) Reload() error {
	if r.path == "" {
		return fmt.Errorf("model registry has no artifact path")
	}
	forest, err := LoadFile(r.path)
	if err != nil {
		return err
	}
	if r.featureCount > 0 && forest.FeatureCount() != r.featureCount {
		return fmt.Errorf("model %s expects %d features, want %d", forest.Name(), forest.FeatureCount(), r.featureCount)
	}
	r.mu.Lock()
	r.forest = forest
	r.generation++
	r.loadedAt = time.Now()
	r.mu.Unlock()
	logger.Infof("model %s v%d loaded from %s", forest.Name(), forest.Version(), filepath.Base(r.path))
	return nil
}

// Current returns the active forest.
func (r *Registry) Current() *Forest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forest
}

func (r *Registry) Info() Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info := Info{Generation: r.generation, LoadedAt: r.loadedAt, Path: r.path}
	if r.forest != nil {
		info.Name = r.forest.Name()
		info.Version = r.forest.Version()
	}
	return info
}

// OnChange registers fn to run after each successful reload.
func (r *Registry) OnChange(fn ChangeListener) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Classify implements Classifier using the active forest.
func (r *Registry) Classify(ctx context.Context, features []float64) (RiskClass, error) {
	forest := r.Current()
	if forest == nil {
		return RiskLow, ErrNoModel
	}
	return forest.Classify(ctx, features)
}

// Watch reloads the artifact whenever it is written, created or renamed into
// place, until ctx is cancelled. The parent directory is watched so editors
// and deploy tools that replace the file atomically are picked up.
func (r *Registry) Watch(ctx context.Context) error {
	if r.path == "" {
		return fmt.Errorf("model registry has no artifact path")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create model watcher failed: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s failed: %w", filepath.Dir(r.path), err)
	}
	logger.Infof("watching model artifact %s", r.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != r.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			if err := r.Reload(); err != nil {
				logger.Errorf("model reload failed, keeping previous model: %v", err)
				continue
			}
			r.notifyListeners()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("model watcher error: %v", err)
		}
	}
}

func (r *Registry) notifyListeners() {
	info := r.Info()
	r.mu.RLock()
	listeners := append([]ChangeListener(nil), r.listeners...)
	r.mu.RUnlock()
	for _, fn := range listeners {
		go func(cb ChangeListener) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf("model change listener panic: %v", rec)
				}
			}()
			cb(info)
		}(fn)
	}
}
