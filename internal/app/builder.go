package app

import (
	"context"
	"fmt"

	"strokerisk/internal/config"
	"strokerisk/internal/features"
	"strokerisk/internal/logger"
	"strokerisk/internal/model"
	"strokerisk/internal/store"
	"strokerisk/internal/store/sqlite"
	webhttp "strokerisk/internal/transport/http/web"
)

type AppBuilder struct {
	cfg *config.Config

	registryFn func(config.ModelConfig) (*model.Registry, error)
	storeFn    func(config.StoreConfig) (store.Store, error)
	httpFn     func(webhttp.ServerConfig) (*webhttp.Server, error)
}

type AppBuilderOption func(*AppBuilder)

// WithRegistry replaces model loading, mainly for tests.
func WithRegistry(fn func(config.ModelConfig) (*model.Registry, error)) AppBuilderOption {
	return func(b *AppBuilder) {
		if fn != nil {
			b.registryFn = fn
		}
	}
}

// WithStore replaces the audit store factory.
func WithStore(fn func(config.StoreConfig) (store.Store, error)) AppBuilderOption {
	return func(b *AppBuilder) {
		if fn != nil {
			b.storeFn = fn
		}
	}
}

func NewAppBuilder(cfg *config.Config, opts ...AppBuilderOption) *AppBuilder {
	b := &AppBuilder{
		cfg:        cfg,
		registryFn: buildRegistry,
		storeFn:    buildStore,
		httpFn:     webhttp.NewServer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if b == nil || b.cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	cfg := b.cfg

	registry, err := b.registryFn(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if forest := registry.Current(); forest != nil && forest.FeatureCount() != features.Len {
		return nil, fmt.Errorf("model %s expects %d features, encoder produces %d", forest.Name(), forest.FeatureCount(), features.Len)
	}
	registry.OnChange(func(info model.Info) {
		logger.Infof("model swapped to %s v%d (generation %d)", info.Name, info.Version, info.Generation)
	})

	st, err := b.storeFn(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	var predictions store.PredictionRepository
	if st != nil {
		predictions = st.Predictions()
	}

	server, err := b.httpFn(webhttp.ServerConfig{
		Addr:             cfg.App.HTTPAddr,
		Classifier:       registry,
		ModelInfo:        registry.Info,
		Predictions:      predictions,
		TemplateDir:      cfg.Web.TemplateDir,
		StaticDir:        cfg.Web.StaticDir,
		LegacyFieldOrder: cfg.API.LegacyFieldOrder,
		MaxBodyBytes:     cfg.API.MaxBodyBytes,
	})
	if err != nil {
		if st != nil {
			_ = st.Close()
		}
		return nil, fmt.Errorf("build http server: %w", err)
	}

	return &App{
		cfg:      cfg,
		registry: registry,
		store:    st,
		http:     server,
		Summary:  newStartupSummary(cfg, registry.Info()),
	}, nil
}

func buildRegistry(cfg config.ModelConfig) (*model.Registry, error) {
	return model.NewRegistry(cfg.Path, features.Len)
}

func buildStore(cfg config.StoreConfig) (store.Store, error) {
	if !cfg.Enabled() {
		logger.Infof("prediction audit log disabled")
		return nil, nil
	}
	st, err := sqlite.NewSqliteStore(cfg.Path)
	if err != nil {
		return nil, err
	}
	logger.Infof("prediction audit log at %s", cfg.Path)
	return st, nil
}
