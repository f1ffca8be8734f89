package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/logger"
	"injury-estimator/internal/metrics"
	"injury-estimator/internal/model"
)

const (
	ActionStarted       = "started"
	ActionStepCompleted = "step_completed"
	ActionCalculated    = "calculated"
	ActionAbandoned     = "abandoned"
)

var ErrInvalidEvent = errors.New("invalid calculator event")

var actions = map[string]bool{
	ActionStarted:       true,
	ActionStepCompleted: true,
	ActionCalculated:    true,
	ActionAbandoned:     true,
}

// unknownCalculator labels events from calculators without a factor table.
const unknownCalculator = "unknown"

// Tracker records calculator funnel events. Events are counted and logged,
// never stored; form data is reduced to the number of answered fields.
type Tracker struct {
	registry *factors.Registry
	log      logger.Logger
}

func NewTracker(registry *factors.Registry, log logger.Logger) *Tracker {
	return &Tracker{registry: registry, log: log}
}

// label maps a calculator type onto a known case type, or "unknown".
func (t *Tracker) label(calculatorType string) string {
	if tbl, ok := t.registry.Get(calculatorType); ok {
		return tbl.CaseType
	}
	return unknownCalculator
}

// Track validates and records one event, returning the session it was
// attributed to. A missing session id is generated.
func (t *Tracker) Track(ctx context.Context, ev model.CalculatorEvent) (model.EventReceipt, error) {
	ev.CalculatorType = strings.TrimSpace(ev.CalculatorType)
	ev.Action = strings.ToLower(strings.TrimSpace(ev.Action))

	if ev.CalculatorType == "" {
		return model.EventReceipt{}, fmt.Errorf("%w: calculator_type is required", ErrInvalidEvent)
	}
	if !actions[ev.Action] {
		return model.EventReceipt{}, fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, ev.Action)
	}
	if ev.Step < 0 {
		return model.EventReceipt{}, fmt.Errorf("%w: step must not be negative", ErrInvalidEvent)
	}
	if ev.EstimatedValue < 0 {
		return model.EventReceipt{}, fmt.Errorf("%w: estimated_value must not be negative", ErrInvalidEvent)
	}
	if ev.SessionID == "" {
		ev.SessionID = uuid.New().String()
	}

	label := t.label(ev.CalculatorType)
	metrics.CalculatorEvents.WithLabelValues(label, ev.Action).Inc()
	if ev.Action == ActionCalculated && ev.EstimatedValue > 0 {
		metrics.CalculatorEstimatedValue.WithLabelValues(label).Observe(ev.EstimatedValue)
	}

	fields := map[string]interface{}{
		"calculator_type": ev.CalculatorType,
		"case_type":       label,
		"session_id":      ev.SessionID,
		"step":            ev.Step,
		"action":          ev.Action,
		"answered_fields": len(ev.FormData),
	}
	if ev.EstimatedValue > 0 {
		fields["estimated_value"] = ev.EstimatedValue
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		fields["trace_id"] = sc.TraceID().String()
	}
	t.log.Info("Calculator event", fields)

	return model.EventReceipt{SessionID: ev.SessionID, Accepted: true}, nil
}
