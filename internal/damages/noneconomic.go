package damages

import (
	"fmt"

	"injury-estimator/internal/model"
)

// NonEconomicComponent prices pain and suffering (or loss of companionship)
// from the economic damages and the severity, category, pain, age and
// disability multipliers, then applies any statutory cap.
type NonEconomicComponent struct{}

func (c *NonEconomicComponent) Validate(w *Worksheet) []model.CalculationMessage {
	var msgs []model.CalculationMessage
	if cat := w.Input.Category; cat != "" && !containsKey(w.Table.CategoryKeys(), cat) {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelInfo,
			Code:    "UNKNOWN_CATEGORY",
			Field:   "category",
			Message: fmt.Sprintf("Category %q is not rated for %s, using a neutral multiplier", cat, w.Table.CaseType),
		})
	}
	for _, d := range w.Table.Dimensions {
		choice := w.Input.Choice(d.Key)
		if choice == "" || optionExists(d.Options, choice) {
			continue
		}
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelInfo,
			Code:    "UNKNOWN_CHOICE",
			Field:   d.Key,
			Message: fmt.Sprintf("%s %q is not rated, using a neutral multiplier", d.Label, choice),
		})
	}
	return msgs
}

// dimensionFactor is the product of the multipliers of every answered
// dimension.
func dimensionFactor(w *Worksheet) float64 {
	f := 1.0
	for _, d := range w.Table.Dimensions {
		f *= w.Table.ChoiceMultiplier(d.Key, w.Input.Choice(d.Key))
	}
	return f
}

func (c *NonEconomicComponent) Apply(w *Worksheet) []model.CalculationMessage {
	in := w.Input
	t := w.Table

	pain := 1.0
	if in.PainLevel > 0 {
		pain = float64(in.PainLevel) / t.PainMidpoint
	}

	amount := (t.NonEconomic.Base + t.NonEconomic.EconomicMultiple*(w.Medical+w.LostWages)) *
		t.SeverityMultiplier(in.Severity) *
		t.CategoryMultiplier(in.Category) *
		dimensionFactor(w) *
		pain *
		t.AgeFactor(in.SubjectAge) *
		t.DisabilityLevel(in.PermanentDisability).Multiplier

	var msgs []model.CalculationMessage
	if ceiling, ok := t.NonEconomicCeiling(in.Category, in.Jurisdiction); ok && amount > ceiling {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelInfo,
			Code:    "NON_ECONOMIC_CAPPED",
			Field:   "category",
			Message: fmt.Sprintf("Non-economic damages limited to the statutory cap of %.0f", ceiling),
		})
		amount = ceiling
		w.Capped = true
	}

	w.NonEconomic = amount
	w.addLine(model.ComponentNonEconomic, "Non-economic damages", amount)
	return msgs
}
