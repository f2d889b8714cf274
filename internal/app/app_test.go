package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"strokerisk/internal/config"
	"strokerisk/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifactPath = "../../configs/model/stroke_forest.json"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App:   config.AppConfig{Env: "test", LogLevel: "info", HTTPAddr: "127.0.0.1:0"},
		Model: config.ModelConfig{Path: artifactPath},
		API:   config.APIConfig{MaxBodyBytes: 1 << 20},
		Store: config.StoreConfig{Path: filepath.Join(t.TempDir(), "predictions.db")},
	}
}

func TestNewApp_ServesPredictions(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Registry())
	assert.Equal(t, "stroke-forest", app.Registry().Info().Name)

	body := `{"data":{"gender":"Female","age":80,"hypertension":"Yes","heart_disease":"No","ever_married":"Yes",` +
		`"work_type":"Private","Residence_type":"Urban","avg_glucose_level":150.5,"bmi":25.0,"smoking_status":"smokes"}}`
	req := httptest.NewRequest(http.MethodPost, "/predict_api", strings.NewReader(body))
	w := httptest.NewRecorder()
	app.Server().Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, []string{`{"result":0}`, `{"result":1}`}, w.Body.String())

	w = httptest.NewRecorder()
	app.Server().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/predictions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestBuild_WithoutStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Path = ""
	app, err := NewAppBuilder(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Nil(t, app.store)

	w := httptest.NewRecorder()
	app.Server().Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/predictions", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBuild_RejectsFeatureCountMismatch(t *testing.T) {
	forest, err := model.NewForest(model.Artifact{
		Name:         "tiny",
		Version:      1,
		FeatureCount: 3,
		Trees:        []model.Tree{{Nodes: []model.Node{{IsLeaf: true}}}},
	})
	require.NoError(t, err)

	b := NewAppBuilder(testConfig(t), WithRegistry(func(config.ModelConfig) (*model.Registry, error) {
		return model.NewStaticRegistry(forest), nil
	}))
	_, err = b.Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 3 features")
}

func TestBuild_MissingArtifact(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Path = filepath.Join(t.TempDir(), "missing.json")
	_, err := NewAppBuilder(cfg).Build(context.Background())
	assert.Error(t, err)
}

func TestNewApp_NilConfig(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.Watch = true
	app, err := NewApp(cfg)
	require.NoError(t, err)
	app.Summary = nil

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestStartupSummary_Print(t *testing.T) {
	cfg := testConfig(t)
	s := newStartupSummary(cfg, model.Info{Name: "stroke-forest", Version: 2})
	var buf bytes.Buffer
	s.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, "STARTUP SUMMARY")
	assert.Contains(t, out, "stroke-forest v2")
	assert.Contains(t, out, "(embedded)")
	assert.Contains(t, out, "legacy field order: off")
}
