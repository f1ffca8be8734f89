package model

type BreakdownLine struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// DisplayModel is what the form controller renders after a calculation.
type DisplayModel struct {
	CaseType  string          `json:"case_type"`
	Locale    string          `json:"locale"`
	Currency  string          `json:"currency"`
	Total     string          `json:"total"`
	Low       string          `json:"low"`
	High      string          `json:"high"`
	Range     string          `json:"range"`
	Breakdown []BreakdownLine `json:"breakdown"`
}
