package damages

import (
	"fmt"

	"injury-estimator/internal/model"
)

// SurvivalComponent adds the decedent's own claim for suffering before
// death. Causes listed in disabled_by leave no survival claim.
type SurvivalComponent struct{}

func (c *SurvivalComponent) Validate(w *Worksheet) []model.CalculationMessage {
	sa := w.Table.SurvivalAction
	if sa == nil || !containsKey(sa.DisabledBy, w.Input.Category) {
		return nil
	}
	return []model.CalculationMessage{{
		Level:   model.LevelInfo,
		Code:    "SURVIVAL_ACTION_EXCLUDED",
		Field:   "category",
		Message: fmt.Sprintf("No survival action applies when the cause is %q", w.Input.Category),
	}}
}

func (c *SurvivalComponent) Apply(w *Worksheet) []model.CalculationMessage {
	sa := w.Table.SurvivalAction
	if sa == nil || sa.Base <= 0 || containsKey(sa.DisabledBy, w.Input.Category) {
		return nil
	}
	mult := 1.0
	if m, ok := sa.CauseMultipliers[w.Input.Category]; ok && m > 0 {
		mult = m
	}
	w.addLine(model.ComponentSurvival, "Survival action", sa.Base*mult)
	return nil
}
