package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"oeminv/internal/analysis"
	"oeminv/internal/config"
	"oeminv/internal/dataload"
	apierrors "oeminv/internal/errors"
	"oeminv/internal/exporter"
	"oeminv/pkg/contracts/domain"
)

// AnalysisHandler serves the analysis endpoints. It holds the most recently
// analyzed dataset so projection queries can run against it; the core engine
// stays lock-free, so the handler owns the only mutex.
type AnalysisHandler struct {
	pipeline *analysis.Pipeline
	cfg      config.AnalysisConfig
	maxBytes int64
	logger   *slog.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	current *analysis.Result
}

// NewAnalysisHandler creates the handler with the given pipeline and
// analysis configuration.
func NewAnalysisHandler(pipeline *analysis.Pipeline, cfg config.AnalysisConfig, maxBytes int64, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		pipeline: pipeline,
		cfg:      cfg,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("handler", "analysis")),
		validate: validator.New(),
	}
}

// AnalyzeResponse is the result of a dataset upload: the derived display
// table plus extraction counts.
type AnalyzeResponse struct {
	Success     bool                  `json:"success"`
	Items       int                   `json:"items"`
	YearColumns []analysis.YearColumn `json:"year_columns"`
	Table       exporter.UsageTable   `json:"table"`
}

// Analyze accepts a multipart upload ("file", .xlsx or .csv), runs the
// dataset pipeline, and retains the result for subsequent queries.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError("file field is required"))
		return
	}
	defer file.Close()

	table, err := h.loadUpload(file, header.Filename)
	if err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	result, err := h.pipeline.Process(table, h.cfg.NameColumn, h.cfg.PriceColumn)
	if err != nil {
		h.logger.WarnContext(r.Context(), "dataset rejected",
			slog.String("file", header.Filename),
			slog.String("error", err.Error()))
		apierrors.WriteError(w, apierrors.UnprocessableDatasetError(err))
		return
	}

	h.mu.Lock()
	h.current = result
	h.mu.Unlock()

	h.logger.InfoContext(r.Context(), "dataset analyzed",
		slog.String("file", header.Filename),
		slog.Int("items", len(result.Items)))

	render.JSON(w, r, AnalyzeResponse{
		Success:     true,
		Items:       len(result.Items),
		YearColumns: result.YearColumns,
		Table:       exporter.BuildUsageTable(result.Items, result.YearColumns),
	})
}

// loadUpload spools the upload to a temp file so the loaders can dispatch
// on extension, and parses it into a raw table.
func (h *AnalysisHandler) loadUpload(file io.Reader, filename string) (analysis.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".csv" {
		return analysis.Table{}, fmt.Errorf("unsupported file format %q: expected .xlsx or .csv", ext)
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return analysis.Table{}, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		return analysis.Table{}, fmt.Errorf("spool upload: %w", err)
	}
	return dataload.Load(tmp.Name())
}

// PricePredictionRequest queries a single item/year price projection.
type PricePredictionRequest struct {
	Material   string `json:"material" validate:"required"`
	TargetYear int    `json:"target_year" validate:"required,min=1900,max=2100"`
}

// PredictPrice answers one price projection query against the current
// dataset. Invalid ranges and unknown items are per-query failures; they
// never invalidate the dataset.
func (h *AnalysisHandler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	var req PricePredictionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	items, ok := h.snapshot(w)
	if !ok {
		return
	}

	prediction, err := h.pipeline.PredictPrice(items, req.Material, req.TargetYear)
	switch {
	case errors.Is(err, analysis.ErrItemNotFound):
		apierrors.WriteError(w, apierrors.NotFoundError(req.Material))
		return
	case errors.Is(err, analysis.ErrInvalidPredictionRange):
		apierrors.WriteError(w, apierrors.InvalidRangeAPIError(err))
		return
	case err != nil:
		apierrors.WriteError(w, apierrors.ErrInternalServer)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":    true,
		"prediction": prediction,
		"display":    exporter.FormatIndianNumber(prediction.PredictedPrice),
	})
}

// ReplenishmentRequest queries predicted replenishment events up to a year.
type ReplenishmentRequest struct {
	TargetYear int `json:"target_year" validate:"required,min=1900,max=2100"`
}

// PredictReplenishments projects replenishment events for every item in the
// current dataset. An empty event list is a valid outcome, not an error.
func (h *AnalysisHandler) PredictReplenishments(w http.ResponseWriter, r *http.Request) {
	var req ReplenishmentRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	items, ok := h.snapshot(w)
	if !ok {
		return
	}

	events := analysis.PredictReplenishments(items, req.TargetYear)
	render.JSON(w, r, map[string]interface{}{
		"success": true,
		"events":  events,
		"counts":  exporter.EventCounts(events),
	})
}

func (h *AnalysisHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		apierrors.WriteError(w, apierrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

// snapshot returns the items of the current dataset, or writes a conflict
// error when nothing has been analyzed yet.
func (h *AnalysisHandler) snapshot(w http.ResponseWriter) ([]domain.ItemHistory, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		apierrors.WriteError(w, apierrors.ErrNoDataset)
		return nil, false
	}
	return h.current.Items, true
}
