package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/format"
	"injury-estimator/internal/jsonpatch"
	"injury-estimator/internal/logger"
	"injury-estimator/internal/metrics"
	"injury-estimator/internal/model"
	"injury-estimator/internal/validator"
)

const tracerName = "injury-estimator/engine"

// Engine wraps Estimate in a calculation run: it resolves the factor table,
// validates the form, formats the result and records metrics.
type Engine struct {
	registry  *factors.Registry
	formatter *format.Formatter
	log       logger.Logger
	tracer    trace.Tracer
	strict    bool
}

// New creates an Engine. strict makes schema findings block every request,
// not only those that ask for strict validation.
func New(registry *factors.Registry, formatter *format.Formatter, log logger.Logger, strict bool) *Engine {
	return &Engine{
		registry:  registry,
		formatter: formatter,
		log:       log,
		tracer:    otel.Tracer(tracerName),
		strict:    strict,
	}
}

func (e *Engine) Registry() *factors.Registry {
	return e.registry
}

func (e *Engine) Process(ctx context.Context, req *model.EstimateRequest) *model.EstimateResponse {
	ctx, span := e.tracer.Start(ctx, "engine.Process", trace.WithAttributes(
		attribute.String("case_type", req.CaseType),
		attribute.Bool("strict", req.Strict || e.strict),
	))
	defer span.End()

	resp := e.process(ctx, req)

	meta := resp.CalculationMetadata
	span.SetAttributes(attribute.String("outcome", meta.CalculationOutcome))
	if meta.CalculationOutcome == model.OutcomeFailure {
		span.SetStatus(codes.Error, "estimate failed")
	}
	return resp
}

func (e *Engine) process(_ context.Context, req *model.EstimateRequest) *model.EstimateResponse {
	start := time.Now()
	calculationID := uuid.New().String()
	caseType := factors.Normalize(req.CaseType)

	var allMessages []model.CalculationMessage
	outcome := model.OutcomeSuccess
	addMessage := func(m model.CalculationMessage) {
		m.ID = len(allMessages)
		allMessages = append(allMessages, m)
		if m.Level == model.LevelCritical {
			outcome = model.OutcomeFailure
		}
	}

	var (
		result  *model.EstimateResult
		display *model.DisplayModel
		version string
	)

	t, ok := e.registry.Get(caseType)
	if !ok {
		addMessage(model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "UNKNOWN_CASE_TYPE",
			Field:   "case_type",
			Message: fmt.Sprintf("Unknown case type: %s", req.CaseType),
		})
	} else {
		version = t.Version
		strict := req.Strict || e.strict

		for _, f := range validator.Check(req.Fields, t) {
			metrics.ValidationIssues.WithLabelValues(caseType, f.Code).Inc()
			level := model.LevelWarning
			if strict {
				level = model.LevelCritical
			}
			addMessage(model.CalculationMessage{
				Level:   level,
				Code:    f.Code,
				Field:   f.Field,
				Message: f.Reason,
			})
		}

		if outcome == model.OutcomeSuccess {
			in := validator.Validate(req.Fields, t)
			r := Estimate(in, t)
			for _, n := range r.Notes {
				addMessage(n)
			}
			d := e.formatter.Format(&r, req.Locale)
			result, display = &r, &d
			metrics.EstimateAdjustedTotal.WithLabelValues(caseType).Observe(r.AdjustedTotal)
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	// Unknown case types share one label.
	label := caseType
	if version == "" {
		label = "unknown"
	}
	metrics.EstimatesTotal.WithLabelValues(label, outcome).Inc()
	metrics.EstimateDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	fields := map[string]interface{}{
		"calculation_id": calculationID,
		"case_type":      caseType,
		"outcome":        outcome,
		"messages":       len(allMessages),
		"duration_ms":    elapsed.Milliseconds(),
	}
	if result != nil {
		fields["adjusted_total"] = result.AdjustedTotal
	}
	if outcome == model.OutcomeFailure {
		e.log.Warn("Estimate failed", fields)
	} else {
		e.log.Debug("Estimate completed", fields)
	}

	return &model.EstimateResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calculationID,
			CaseType:               caseType,
			TableVersion:           version,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		Messages: allMessages,
		Result:   result,
		Display:  display,
	}
}

// Compare estimates a baseline and a variant form for the same case type and
// reports how the variant's display differs from the baseline's.
func (e *Engine) Compare(ctx context.Context, req *model.CompareRequest) *model.CompareResponse {
	ctx, span := e.tracer.Start(ctx, "engine.Compare", trace.WithAttributes(
		attribute.String("case_type", req.CaseType),
	))
	defer span.End()

	baseline := e.Process(ctx, &model.EstimateRequest{CaseType: req.CaseType, Locale: req.Locale, Fields: req.Baseline})
	variant := e.Process(ctx, &model.EstimateRequest{CaseType: req.CaseType, Locale: req.Locale, Fields: req.Variant})

	resp := &model.CompareResponse{
		Baseline: baseline,
		Variant:  variant,
		Changes:  []model.PatchOperation{},
	}
	if baseline.Display == nil || variant.Display == nil {
		return resp
	}

	changes, err := jsonpatch.Between(baseline.Display, variant.Display)
	if err != nil {
		span.RecordError(err)
		e.log.WithError(err).Error("Failed to diff estimates", map[string]interface{}{"case_type": req.CaseType})
		return resp
	}
	resp.Changes = changes
	return resp
}
