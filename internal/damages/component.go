package damages

import (
	"injury-estimator/internal/factors"
	"injury-estimator/internal/model"
	"injury-estimator/internal/validator"
)

// Component defines the contract for one damage category. Validate reports
// answers the component will treat neutrally; Apply adds its amount to the
// worksheet. Neither may fail.
type Component interface {
	Validate(w *Worksheet) []model.CalculationMessage
	Apply(w *Worksheet) []model.CalculationMessage
}

// Worksheet carries the sanitized input and running amounts through the
// component pipeline.
type Worksheet struct {
	Input model.EstimateInput
	Table *factors.Table

	Medical     float64
	LostWages   float64
	NonEconomic float64
	Capped      bool

	Lines []model.DamageLine
}

// NewWorksheet copies in and pins every numeric answer into its valid range,
// so components never see negative amounts or out-of-scale answers.
func NewWorksheet(in model.EstimateInput, t *factors.Table) *Worksheet {
	in.AnnualIncome = floor0(in.AnnualIncome)
	in.MedicalExpenses = floor0(in.MedicalExpenses)
	in.TimeOffDays = floor0(in.TimeOffDays)
	if in.SubjectAge < 0 {
		in.SubjectAge = 0
	}
	if in.Dependents < 0 {
		in.Dependents = 0
	}
	if in.PainLevel != 0 {
		in.PainLevel = validator.ClampScale(in.PainLevel)
	}
	if in.LiabilityStrength != 0 {
		in.LiabilityStrength = validator.ClampScale(in.LiabilityStrength)
	}
	return &Worksheet{Input: in, Table: t}
}

func (w *Worksheet) addLine(key, label string, amount float64) {
	if amount <= 0 {
		return
	}
	w.Lines = append(w.Lines, model.DamageLine{
		Key:    key,
		Label:  w.Table.LineLabel(key, label),
		Amount: amount,
	})
}

// Subtotal is the unrounded sum of every line.
func (w *Worksheet) Subtotal() float64 {
	var sum float64
	for _, l := range w.Lines {
		sum += l.Amount
	}
	return sum
}

// Additional sums the lines beyond medical, wages and non-economic damages.
func (w *Worksheet) Additional() float64 {
	var sum float64
	for _, l := range w.Lines {
		switch l.Key {
		case model.ComponentMedical, model.ComponentLostWages, model.ComponentNonEconomic:
		default:
			sum += l.Amount
		}
	}
	return sum
}

func floor0(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}
