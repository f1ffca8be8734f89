package model

// RawFormState is the form controller's field map as submitted. Values are
// whatever the browser produced: strings, numbers, booleans or nothing.
type RawFormState map[string]interface{}

type EstimateRequest struct {
	CaseType string       `json:"case_type"`
	Locale   string       `json:"locale,omitempty"`
	Strict   bool         `json:"strict,omitempty"`
	Fields   RawFormState `json:"fields"`
}

type CompareRequest struct {
	CaseType string       `json:"case_type"`
	Locale   string       `json:"locale,omitempty"`
	Baseline RawFormState `json:"baseline"`
	Variant  RawFormState `json:"variant"`
}

type CalculatorEvent struct {
	CalculatorType string                 `json:"calculator_type"`
	SessionID      string                 `json:"session_id,omitempty"`
	Step           int                    `json:"step"`
	Action         string                 `json:"action"`
	EstimatedValue float64                `json:"estimated_value,omitempty"`
	FormData       map[string]interface{} `json:"form_data,omitempty"`
}
