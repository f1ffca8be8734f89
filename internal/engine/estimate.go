package engine

import (
	"math"

	"injury-estimator/internal/damages"
	"injury-estimator/internal/factors"
	"injury-estimator/internal/model"
)

// Estimate runs the damage pipeline for one input. It is pure: the same
// input and table always produce the same result, and any input, including
// the zero value, produces one.
func Estimate(in model.EstimateInput, t *factors.Table) model.EstimateResult {
	w := damages.NewWorksheet(in, t)

	var notes []model.CalculationMessage
	for _, c := range damages.Pipeline() {
		notes = append(notes, c.Validate(w)...)
		notes = append(notes, c.Apply(w)...)
	}
	for i := range notes {
		notes[i].ID = i
	}

	flagFactor := 1.0
	for _, key := range t.FlagKeys() {
		if w.Input.FlagSet(key) {
			flagFactor *= t.FlagMultiplier(key)
		}
	}

	// Liability scales the total linearly; an unanswered question is neutral.
	liability := 1.0
	if w.Input.LiabilityStrength > 0 {
		liability = float64(w.Input.LiabilityStrength) / 10
	}

	subtotal := w.Subtotal()
	adjusted := subtotal * flagFactor * liability

	lines := make([]model.DamageLine, len(w.Lines))
	for i, l := range w.Lines {
		l.Amount = round(l.Amount)
		lines[i] = l
	}

	return model.EstimateResult{
		CaseType:          t.CaseType,
		TableVersion:      t.Version,
		Medical:           round(w.Medical),
		LostWages:         round(w.LostWages),
		NonEconomic:       round(w.NonEconomic),
		Additional:        round(w.Additional()),
		Lines:             lines,
		Subtotal:          round(subtotal),
		FlagFactor:        flagFactor,
		LiabilityFactor:   liability,
		AdjustedTotal:     round(adjusted),
		Low:               round(adjusted * t.Range.Low),
		High:              round(adjusted * t.Range.High),
		NonEconomicCapped: w.Capped,
		Notes:             notes,
	}
}

func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Round(v)
}
