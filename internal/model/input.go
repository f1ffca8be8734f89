package model

// Disability is the tri-state permanent disability answer.
type Disability string

const (
	DisabilityUnset   Disability = ""
	DisabilityNo      Disability = "no"
	DisabilityPartial Disability = "partial"
	DisabilityYes     Disability = "yes"
)

// EstimateInput is the typed form state handed to the estimation engine.
// The zero value is a valid input: every unset field resolves to a neutral
// multiplier or a zero amount.
type EstimateInput struct {
	SubjectAge          int                `json:"subject_age"`
	AnnualIncome        float64            `json:"annual_income"`
	MedicalExpenses     float64            `json:"medical_expenses"`
	TimeOffDays         float64            `json:"time_off_days"`
	Severity            string             `json:"severity"`
	Category            string             `json:"category"`
	PainLevel           int                `json:"pain_level"`
	LiabilityStrength   int                `json:"liability_strength"`
	PermanentDisability Disability         `json:"permanent_disability"`
	Dependents          int                `json:"dependents"`
	Jurisdiction        string             `json:"jurisdiction,omitempty"`
	Flags               map[string]bool    `json:"flags,omitempty"`
	Choices             map[string]string  `json:"choices,omitempty"`
	Amounts             map[string]float64 `json:"amounts,omitempty"`
}

// Choice returns the answer to a table dimension, "" when unanswered.
func (in *EstimateInput) Choice(dimension string) string {
	return in.Choices[dimension]
}

// FlagSet reports whether the case-specific flag is present and true.
func (in *EstimateInput) FlagSet(key string) bool {
	return in.Flags[key]
}
