package handler

import (
	"context"
	"errors"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"injury-estimator/internal/analytics"
	"injury-estimator/internal/engine"
	"injury-estimator/internal/factors"
	"injury-estimator/internal/logger"
	"injury-estimator/internal/model"
	"injury-estimator/internal/validator"
)

const (
	pathEstimates = "/api/v1/estimates"
	pathCompare   = "/api/v1/estimates/compare"
	pathCaseTypes = "/api/v1/case-types"
	pathEvents    = "/api/v1/events"
	pathHealth    = "/healthz"
	pathMetrics   = "/metrics"
)

type Handler struct {
	engine  *engine.Engine
	tracker *analytics.Tracker
	log     logger.Logger
	metrics fasthttp.RequestHandler
}

// New builds the HTTP surface. enableMetrics exposes the prometheus registry
// on /metrics.
func New(e *engine.Engine, tracker *analytics.Tracker, log logger.Logger, enableMetrics bool) *Handler {
	h := &Handler{engine: e, tracker: tracker, log: log}
	if enableMetrics {
		h.metrics = fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	}
	return h
}

// Handle routes one request.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == pathEstimates:
		h.post(ctx, h.handleEstimate)
	case path == pathCompare:
		h.post(ctx, h.handleCompare)
	case path == pathEvents:
		h.post(ctx, h.handleEvent)
	case path == pathCaseTypes:
		h.get(ctx, h.handleCaseTypes)
	case strings.HasPrefix(path, pathCaseTypes+"/") && strings.HasSuffix(path, "/schema"):
		h.get(ctx, h.handleSchema)
	case path == pathHealth:
		h.get(ctx, func(ctx *fasthttp.RequestCtx) {
			writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
		})
	case path == pathMetrics && h.metrics != nil:
		h.get(ctx, h.metrics)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) post(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) get(ctx *fasthttp.RequestCtx, next fasthttp.RequestHandler) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

func (h *Handler) handleEstimate(ctx *fasthttp.RequestCtx) {
	var req model.EstimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.CaseType) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "case_type is required")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(context.Background(), &req))
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	var req model.CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.CaseType) == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "case_type is required")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Compare(context.Background(), &req))
}

func (h *Handler) handleEvent(ctx *fasthttp.RequestCtx) {
	var ev model.CalculatorEvent
	if err := json.Unmarshal(ctx.PostBody(), &ev); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.tracker.Track(context.Background(), ev)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidEvent) {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).Error("Failed to track event", nil)
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to track event")
		return
	}
	writeJSON(ctx, fasthttp.StatusAccepted, receipt)
}

func (h *Handler) handleCaseTypes(ctx *fasthttp.RequestCtx) {
	tables := h.engine.Registry().Tables()
	out := make([]model.CaseTypeSummary, 0, len(tables))
	for _, t := range tables {
		out = append(out, model.CaseTypeSummary{CaseType: t.CaseType, Label: t.Label, Version: t.Version})
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func (h *Handler) handleSchema(ctx *fasthttp.RequestCtx) {
	name := strings.TrimSuffix(strings.TrimPrefix(string(ctx.Path()), pathCaseTypes+"/"), "/schema")
	t, ok := h.engine.Registry().Get(factors.Normalize(name))
	if !ok {
		writeError(ctx, fasthttp.StatusNotFound, "Unknown case type: "+name)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, validator.Schema(t))
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
