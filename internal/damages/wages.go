package damages

import (
	"injury-estimator/internal/model"
)

const daysPerYear = 364

// WagesComponent covers income lost while off work, lost earning capacity
// from a permanent disability and, where the table sets a fraction, lost
// future financial support.
type WagesComponent struct{}

func (c *WagesComponent) Validate(w *Worksheet) []model.CalculationMessage {
	lvl := w.Table.DisabilityLevel(w.Input.PermanentDisability)
	if lvl.CapacityLoss > 0 && w.Input.SubjectAge == 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelInfo,
			Code:    "AGE_NOT_PROVIDED",
			Field:   "subject_age",
			Message: "Age not provided, future earning capacity is not included",
		}}
	}
	return nil
}

func (c *WagesComponent) Apply(w *Worksheet) []model.CalculationMessage {
	in := w.Input
	t := w.Table

	wages := in.AnnualIncome / daysPerYear * in.TimeOffDays

	years := t.YearsToRetirement(in.SubjectAge)
	if lvl := t.DisabilityLevel(in.PermanentDisability); lvl.CapacityLoss > 0 {
		wages += in.AnnualIncome * lvl.CapacityLoss * years
	}
	if t.FutureEarningsFraction > 0 {
		wages += in.AnnualIncome * t.FutureEarningsFraction * years
	}

	w.LostWages = wages
	w.addLine(model.ComponentLostWages, "Lost wages", wages)
	return nil
}
