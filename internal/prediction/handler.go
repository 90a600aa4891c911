package prediction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"health-risk-predictor/internal/assessment"
	"health-risk-predictor/internal/inference"
	"health-risk-predictor/internal/report"
)

const maxBodyBytes = 1 << 20

// Reporter renders and shares PDF reports.
type Reporter interface {
	Render(res assessment.PredictionResult) ([]byte, error)
	Share(ctx context.Context, res assessment.PredictionResult) error
}

type Handler struct {
	svc      Service
	reports  Reporter
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(svc Service, reports Reporter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:      svc,
		reports:  reports,
		validate: newValidator(),
		logger:   logger,
	}
}

// Predict handles POST /prediction/predict/{model}. The path segment decides
// the model regardless of the body.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error(), nil)
		return
	}
	if m := chi.URLParam(r, "model"); m != "" {
		req.Model = m
	}

	if err := h.validate.Struct(req); err != nil {
		fields := fieldMessages(err)
		writeError(w, http.StatusBadRequest, "validation failed", strings.Join(fields, "; "), fields)
		return
	}

	res, err := h.svc.Predict(r.Context(), req.Input())
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, res)
	case errors.Is(err, inference.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "inference timed out", err.Error(), nil)
	default:
		writeError(w, http.StatusBadGateway, "inference service error", err.Error(), nil)
	}
}

func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assessment.Benchmarks)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	res, ok := h.decodeResult(w, r)
	if !ok {
		return
	}

	data, err := h.reports.Render(res)
	if err != nil {
		h.logger.Error("render report failed", "error", err)
		writeError(w, http.StatusInternalServerError, "report generation failed", err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(res, time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	res, ok := h.decodeResult(w, r)
	if !ok {
		return
	}

	err := h.reports.Share(r.Context(), res)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	case errors.Is(err, report.ErrSharingDisabled):
		writeError(w, http.StatusServiceUnavailable, "sharing is not configured", "", nil)
	default:
		writeError(w, http.StatusBadGateway, "failed to share report", err.Error(), nil)
	}
}

func (h *Handler) decodeResult(w http.ResponseWriter, r *http.Request) (assessment.PredictionResult, bool) {
	var res assessment.PredictionResult
	if err := decodeJSON(w, r, &res); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error(), nil)
		return res, false
	}
	if err := h.validate.Struct(res); err != nil {
		fields := fieldMessages(err)
		writeError(w, http.StatusBadRequest, "validation failed", strings.Join(fields, "; "), fields)
		return res, false
	}
	return res, true
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/prediction", func(r chi.Router) {
		r.Post("/predict/{model}", h.Predict)
		r.Get("/models", h.Models)
		r.Post("/report", h.Report)
		r.Post("/share", h.Share)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string, fields []string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details, Fields: fields})
}
