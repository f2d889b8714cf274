package webhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"strokerisk/internal/features"
	"strokerisk/internal/logger"
	"strokerisk/internal/model"
	"strokerisk/internal/store"
	storemodel "strokerisk/internal/store/model"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// Handlers carries the dependencies shared by every route.
type Handlers struct {
	classifier   model.Classifier
	modelInfo    func() model.Info
	predictions  store.PredictionRepository
	legacyOrder  bool
	maxBodyBytes int64
}

// Register mounts the page, API and health routes.
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/", h.page("index.html", "Home"))
	router.GET("/causes", h.page("causes.html", "Causes"))
	router.GET("/prevention", h.page("prevention.html", "Prevention"))
	router.GET("/stayInformed", h.page("stayInformed.html", "Stay informed"))

	router.GET("/predict", h.handlePredictForm)
	router.POST("/predict", h.handlePredictSubmit)
	router.POST("/predict_api", h.handlePredictAPI)

	router.GET("/healthz", h.handleHealth)
	router.GET("/api/predictions", h.handleListPredictions)
}

type pageData struct {
	Title string
}

func (h *Handlers) page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, pageData{Title: title})
	}
}

// formOptions holds the labels offered by each select box.
type formOptions struct {
	Gender        []string
	Hypertension  []string
	HeartDisease  []string
	EverMarried   []string
	WorkType      []string
	ResidenceType []string
	SmokingStatus []string
}

var predictOptions = formOptions{
	Gender:        features.Genders.Labels(),
	Hypertension:  features.Hypertensions.Labels(),
	HeartDisease:  features.HeartDiseases.Labels(),
	EverMarried:   features.EverMarrieds.Labels(),
	WorkType:      features.WorkTypes.Labels(),
	ResidenceType: features.ResidenceTypes.Labels(),
	SmokingStatus: features.SmokingStatuses.Labels(),
}

type predictPage struct {
	Title         string
	Options       formOptions
	Form          url.Values
	Error         string
	PredictedText string
	Risk          string
}

func newPredictPage(form url.Values) predictPage {
	if form == nil {
		form = url.Values{}
	}
	return predictPage{Title: "Check your risk", Options: predictOptions, Form: form}
}

func (h *Handlers) handlePredictForm(c *gin.Context) {
	c.HTML(http.StatusOK, "predict.html", newPredictPage(nil))
}

func (h *Handlers) handlePredictSubmit(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		data := newPredictPage(nil)
		data.Error = "Could not read the submitted form."
		c.HTML(http.StatusBadRequest, "predict.html", data)
		return
	}
	form := c.Request.PostForm
	data := newPredictPage(form)
	logger.Debugf("predict form trace=%s values=%v", traceID(c), form)

	patient, err := features.FromForm(form)
	if err != nil {
		data.Error = "Please check your input: " + err.Error() + "."
		c.HTML(http.StatusBadRequest, "predict.html", data)
		return
	}
	vec := patient.Vector().Slice()
	class, err := h.classify(c.Request.Context(), traceID(c), storemodel.SourceForm, vec)
	if err != nil {
		data.Error = "The prediction could not be computed. Please try again later."
		c.HTML(http.StatusInternalServerError, "predict.html", data)
		return
	}
	data.PredictedText = class.Advice()
	data.Risk = class.String()
	c.HTML(http.StatusOK, "predict.html", data)
}

// ErrorResponse is the JSON error body of the API routes.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PredictResponse is the JSON body of a successful /predict_api call.
type PredictResponse struct {
	Result int `json:"result"`
}

func (h *Handlers) handlePredictAPI(c *gin.Context) {
	body, err := readBody(c, h.maxBodyBytes)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request too large", Details: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	data, err := dataObject(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	var vec []float64
	if h.legacyOrder {
		vec, err = features.FromAPIOrdered(data)
	} else {
		var patient features.Patient
		patient, err = features.FromAPI(data)
		vec = patient.Vector().Slice()
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid features", Details: err.Error()})
		return
	}

	class, err := h.classify(c.Request.Context(), traceID(c), storemodel.SourceAPI, vec)
	if err != nil {
		if errors.Is(err, model.ErrFeatureLength) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid features", Details: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "prediction failed", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, PredictResponse{Result: int(class)})
}

// classify runs the model and records the outcome. Audit failures are logged
// and do not fail the request.
func (h *Handlers) classify(ctx context.Context, trace, source string, vec []float64) (model.RiskClass, error) {
	class, err := h.classifier.Classify(ctx, vec)
	if err != nil {
		logger.Errorf("prediction failed trace=%s source=%s: %v", trace, source, err)
		return model.RiskLow, err
	}
	logger.Infof("prediction trace=%s source=%s features=%v result=%d", trace, source, vec, int(class))
	if h.predictions != nil {
		if err := h.record(ctx, trace, source, vec, class); err != nil {
			logger.Warnf("prediction audit failed trace=%s: %v", trace, err)
		}
	}
	return class, nil
}

func (h *Handlers) record(ctx context.Context, trace, source string, vec []float64, class model.RiskClass) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	rec := &storemodel.PredictionModel{
		TraceID:   trace,
		Source:    source,
		Features:  datatypes.JSON(raw),
		Result:    int(class),
		CreatedAt: time.Now().UTC(),
	}
	if h.modelInfo != nil {
		info := h.modelInfo()
		rec.ModelName = info.Name
		rec.ModelVersion = info.Version
	}
	return h.predictions.Insert(ctx, rec)
}

func (h *Handlers) handleHealth(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if h.modelInfo != nil {
		info := h.modelInfo()
		resp["model"] = info.Name
		resp["version"] = info.Version
		resp["generation"] = info.Generation
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) handleListPredictions(c *gin.Context) {
	if h.predictions == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "prediction audit log is disabled"})
		return
	}
	limit := defaultListLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Details: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	recs, err := h.predictions.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Errorf("list predictions failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "list predictions failed", Details: err.Error()})
		return
	}
	if recs == nil {
		recs = []storemodel.PredictionModel{}
	}
	c.JSON(http.StatusOK, gin.H{"predictions": recs, "count": len(recs)})
}
