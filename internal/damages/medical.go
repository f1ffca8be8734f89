package damages

import (
	"fmt"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/model"
)

// MedicalComponent adds expenses to date plus projected future care, which
// scales with severity.
type MedicalComponent struct{}

func (c *MedicalComponent) Validate(w *Worksheet) []model.CalculationMessage {
	sev := w.Input.Severity
	if sev == "" || containsKey(w.Table.SeverityKeys(), sev) {
		return nil
	}
	return []model.CalculationMessage{{
		Level:   model.LevelInfo,
		Code:    "UNKNOWN_SEVERITY",
		Field:   "severity",
		Message: fmt.Sprintf("Severity %q is not rated for %s, using a neutral multiplier", sev, w.Table.CaseType),
	}}
}

func (c *MedicalComponent) Apply(w *Worksheet) []model.CalculationMessage {
	exp := w.Input.MedicalExpenses
	future := w.Table.SeverityMultiplier(w.Input.Severity) * w.Table.FutureMedicalRate * exp
	w.Medical = exp + future
	w.addLine(model.ComponentMedical, "Medical expenses", w.Medical)
	return nil
}

func containsKey(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func optionExists(options []factors.Factor, key string) bool {
	for _, o := range options {
		if o.Key == key {
			return true
		}
	}
	return false
}
