package damages

import (
	"injury-estimator/internal/model"
)

// AdditionsComponent adds the fixed amounts a table attaches to the case:
// dependents, lifetime and catastrophic care, and flat add-ons such as
// funeral costs.
type AdditionsComponent struct{}

func (c *AdditionsComponent) Validate(w *Worksheet) []model.CalculationMessage {
	return nil
}

func (c *AdditionsComponent) Apply(w *Worksheet) []model.CalculationMessage {
	in := w.Input
	t := w.Table

	if t.PerDependent > 0 && in.Dependents > 0 {
		w.addLine(model.ComponentDependents, "Dependents", float64(in.Dependents)*t.PerDependent)
	}

	w.addLine(model.ComponentLifetime, "Lifetime care", t.DisabilityLevel(in.PermanentDisability).LifetimeCare)

	if t.CatastrophicCare > 0 && t.CatastrophicSeverity != "" &&
		in.PermanentDisability == model.DisabilityYes && in.Severity == t.CatastrophicSeverity {
		w.addLine(model.ComponentCatastrophe, "Catastrophic injury care", t.CatastrophicCare)
	}

	for _, add := range t.FlatAdditions {
		amount := add.Amount
		if add.UserAmount {
			if v, ok := in.Amounts[add.Key]; ok && v > 0 {
				amount = v
			}
		}
		w.addLine(add.Key, add.Label, amount)
	}
	return nil
}
