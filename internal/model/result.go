package model

// Component keys used in EstimateResult lines and display breakdowns.
const (
	ComponentMedical     = "medical"
	ComponentLostWages   = "lost_wages"
	ComponentNonEconomic = "non_economic"
	ComponentDependents  = "dependents"
	ComponentLifetime    = "lifetime_care"
	ComponentCatastrophe = "catastrophic_care"
	ComponentSurvival    = "survival_action"
)

type DamageLine struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// EstimateResult is the engine output. Monetary fields are whole currency
// units. It lives only as long as the caller keeps it.
type EstimateResult struct {
	CaseType          string               `json:"case_type"`
	TableVersion      string               `json:"table_version"`
	Medical           float64              `json:"medical"`
	LostWages         float64              `json:"lost_wages"`
	NonEconomic       float64              `json:"non_economic"`
	Additional        float64              `json:"additional"`
	Lines             []DamageLine         `json:"lines"`
	Subtotal          float64              `json:"subtotal"`
	FlagFactor        float64              `json:"flag_factor"`
	LiabilityFactor   float64              `json:"liability_factor"`
	AdjustedTotal     float64              `json:"adjusted_total"`
	Low               float64              `json:"low"`
	High              float64              `json:"high"`
	NonEconomicCapped bool                 `json:"non_economic_capped"`
	Notes             []CalculationMessage `json:"notes,omitempty"`
}
