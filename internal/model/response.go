package model

type EstimateResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Messages            []CalculationMessage `json:"messages"`
	Result              *EstimateResult      `json:"result,omitempty"`
	Display             *DisplayModel        `json:"display,omitempty"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CaseType               string `json:"case_type"`
	TableVersion           string `json:"table_version,omitempty"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CompareResponse struct {
	Baseline *EstimateResponse `json:"baseline"`
	Variant  *EstimateResponse `json:"variant"`
	Changes  []PatchOperation  `json:"changes"`
}

// PatchOperation is one RFC 6902 operation describing how the baseline
// display turns into the variant display.
type PatchOperation struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

type CaseTypeSummary struct {
	CaseType string `json:"case_type"`
	Label    string `json:"label"`
	Version  string `json:"version"`
}

type EventReceipt struct {
	SessionID string `json:"session_id"`
	Accepted  bool   `json:"accepted"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
