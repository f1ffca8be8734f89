package factors

import (
	"fmt"
	"strings"

	"injury-estimator/internal/model"
)

const (
	UnitDays  = "days"
	UnitWeeks = "weeks"

	defaultRetirementAge = 65
	defaultPainMidpoint  = 5
)

// Form fields the engine reads directly; a dimension cannot reuse them.
var reservedKeys = map[string]bool{
	"subject_age": true, "annual_income": true, "medical_expenses": true,
	"time_off_work": true, "severity": true, "category": true,
	"pain_level": true, "liability_strength": true, "permanent_disability": true,
	"dependents": true, "jurisdiction": true,
}

// Factor maps one categorical answer to a multiplier.
type Factor struct {
	Key        string  `yaml:"key" json:"key"`
	Label      string  `yaml:"label" json:"label"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// AgeBand applies Factor to every age >= From until the next band starts.
type AgeBand struct {
	From   int     `yaml:"from" json:"from"`
	Factor float64 `yaml:"factor" json:"factor"`
}

type DisabilityLevel struct {
	Multiplier   float64 `yaml:"multiplier" json:"multiplier"`
	CapacityLoss float64 `yaml:"capacity_loss" json:"capacity_loss"`
	LifetimeCare float64 `yaml:"lifetime_care" json:"lifetime_care"`
}

type NonEconomic struct {
	Base             float64 `yaml:"base" json:"base"`
	EconomicMultiple float64 `yaml:"economic_multiple" json:"economic_multiple"`
}

// Cap is a statutory ceiling on non-economic damages. An empty Jurisdiction
// applies everywhere a more specific cap does not.
type Cap struct {
	Category     string  `yaml:"category" json:"category"`
	Jurisdiction string  `yaml:"jurisdiction" json:"jurisdiction,omitempty"`
	Ceiling      float64 `yaml:"ceiling" json:"ceiling"`
}

type FlatAddition struct {
	Key        string  `yaml:"key" json:"key"`
	Label      string  `yaml:"label" json:"label"`
	Amount     float64 `yaml:"amount" json:"amount"`
	UserAmount bool    `yaml:"user_amount" json:"user_amount"`
}

type SurvivalAction struct {
	Base             float64            `yaml:"base" json:"base"`
	DisabledBy       []string           `yaml:"disabled_by" json:"disabled_by"`
	CauseMultipliers map[string]float64 `yaml:"cause_multipliers" json:"cause_multipliers,omitempty"`
}

// Dimension is an extra categorical question, such as a rideshare driver's
// app status. Its option multiplier scales non-economic damages alongside
// severity and category.
type Dimension struct {
	Key     string   `yaml:"key" json:"key"`
	Label   string   `yaml:"label" json:"label"`
	Options []Factor `yaml:"options" json:"options"`
}

type Range struct {
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Table is the factor configuration of one case type. Tables are shared by
// every request once loaded and must be treated as read-only.
type Table struct {
	CaseType               string                     `yaml:"case_type" json:"case_type"`
	Version                string                     `yaml:"version" json:"version"`
	Label                  string                     `yaml:"label" json:"label"`
	TimeOffUnit            string                     `yaml:"time_off_unit" json:"time_off_unit"`
	RetirementAge          int                        `yaml:"retirement_age" json:"retirement_age"`
	PainMidpoint           float64                    `yaml:"pain_midpoint" json:"pain_midpoint"`
	FutureMedicalRate      float64                    `yaml:"future_medical_rate" json:"future_medical_rate"`
	FutureEarningsFraction float64                    `yaml:"future_earnings_fraction" json:"future_earnings_fraction"`
	NonEconomic            NonEconomic                `yaml:"non_economic" json:"non_economic"`
	Severity               []Factor                   `yaml:"severity" json:"severity"`
	Categories             []Factor                   `yaml:"categories" json:"categories"`
	Flags                  []Factor                   `yaml:"flags" json:"flags"`
	Dimensions             []Dimension                `yaml:"dimensions" json:"dimensions,omitempty"`
	AgeBands               []AgeBand                  `yaml:"age_bands" json:"age_bands"`
	Disability             map[string]DisabilityLevel `yaml:"disability" json:"disability"`
	PerDependent           float64                    `yaml:"per_dependent" json:"per_dependent"`
	CatastrophicSeverity   string                     `yaml:"catastrophic_severity" json:"catastrophic_severity,omitempty"`
	CatastrophicCare       float64                    `yaml:"catastrophic_care" json:"catastrophic_care"`
	FlatAdditions          []FlatAddition             `yaml:"flat_additions" json:"flat_additions"`
	SurvivalAction         *SurvivalAction            `yaml:"survival_action" json:"survival_action,omitempty"`
	Caps                   []Cap                      `yaml:"non_economic_caps" json:"non_economic_caps"`
	Range                  Range                      `yaml:"range" json:"range"`
	Labels                 map[string]string          `yaml:"labels" json:"labels,omitempty"`
}

func lookup(factors []Factor, key string) float64 {
	if key == "" {
		return 1.0
	}
	for _, f := range factors {
		if f.Key == key {
			return f.Multiplier
		}
	}
	return 1.0
}

func keys(factors []Factor) []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.Key
	}
	return out
}

// SeverityMultiplier returns 1.0 for unset or unknown severities.
func (t *Table) SeverityMultiplier(key string) float64 { return lookup(t.Severity, key) }

// CategoryMultiplier returns 1.0 for unset or unknown categories.
func (t *Table) CategoryMultiplier(key string) float64 { return lookup(t.Categories, key) }

func (t *Table) FlagMultiplier(key string) float64 { return lookup(t.Flags, key) }

func (t *Table) SeverityKeys() []string { return keys(t.Severity) }
func (t *Table) CategoryKeys() []string { return keys(t.Categories) }
func (t *Table) FlagKeys() []string     { return keys(t.Flags) }

func (t *Table) DimensionKeys() []string {
	out := make([]string, len(t.Dimensions))
	for i, d := range t.Dimensions {
		out[i] = d.Key
	}
	return out
}

// Dimension looks up a dimension by key.
func (t *Table) Dimension(key string) (*Dimension, bool) {
	for i := range t.Dimensions {
		if t.Dimensions[i].Key == key {
			return &t.Dimensions[i], true
		}
	}
	return nil, false
}

// ChoiceMultiplier is 1.0 for unknown dimensions and unknown options.
func (t *Table) ChoiceMultiplier(dimension, option string) float64 {
	d, ok := t.Dimension(dimension)
	if !ok {
		return 1.0
	}
	return lookup(d.Options, option)
}

// AgeFactor is a step function over the table's age bands. Unknown age (0 or
// less) and ages below the first band are neutral.
func (t *Table) AgeFactor(age int) float64 {
	if age <= 0 {
		return 1.0
	}
	factor := 1.0
	for _, b := range t.AgeBands {
		if age >= b.From {
			factor = b.Factor
		}
	}
	return factor
}

func (t *Table) YearsToRetirement(age int) float64 {
	if age <= 0 {
		return 0
	}
	years := t.RetirementAge - age
	if years < 0 {
		return 0
	}
	return float64(years)
}

// DisabilityLevel returns the configured level, or a neutral level when the
// answer is unset, "no", or not configured for this case type.
func (t *Table) DisabilityLevel(d model.Disability) DisabilityLevel {
	if lvl, ok := t.Disability[string(d)]; ok {
		return lvl
	}
	return DisabilityLevel{Multiplier: 1.0}
}

// NonEconomicCeiling finds the cap for a category. A jurisdiction-specific cap
// takes precedence over the general one.
func (t *Table) NonEconomicCeiling(category, jurisdiction string) (float64, bool) {
	if category == "" {
		return 0, false
	}
	var general *Cap
	for i := range t.Caps {
		c := &t.Caps[i]
		if c.Category != category {
			continue
		}
		if c.Jurisdiction == "" {
			general = c
			continue
		}
		if jurisdiction != "" && strings.EqualFold(c.Jurisdiction, jurisdiction) {
			return c.Ceiling, true
		}
	}
	if general != nil {
		return general.Ceiling, true
	}
	return 0, false
}

// TimeOffToDays normalizes the form's time-off answer to days.
func (t *Table) TimeOffToDays(v float64) float64 {
	if t.TimeOffUnit == UnitWeeks {
		return v * 7
	}
	return v
}

// LineLabel returns the table's display label for a breakdown line, or
// fallback when the table does not rename it.
func (t *Table) LineLabel(key, fallback string) string {
	if l, ok := t.Labels[key]; ok && l != "" {
		return l
	}
	return fallback
}

func (t *Table) applyDefaults() {
	if t.RetirementAge == 0 {
		t.RetirementAge = defaultRetirementAge
	}
	if t.PainMidpoint == 0 {
		t.PainMidpoint = defaultPainMidpoint
	}
	if t.TimeOffUnit == "" {
		t.TimeOffUnit = UnitDays
	}
}

func (t *Table) validate() error {
	if t.CaseType == "" {
		return fmt.Errorf("case_type is required")
	}
	if t.Version == "" {
		return fmt.Errorf("%s: version is required", t.CaseType)
	}
	if t.TimeOffUnit != UnitDays && t.TimeOffUnit != UnitWeeks {
		return fmt.Errorf("%s: time_off_unit must be %q or %q", t.CaseType, UnitDays, UnitWeeks)
	}
	if t.PainMidpoint <= 0 {
		return fmt.Errorf("%s: pain_midpoint must be positive", t.CaseType)
	}
	if t.FutureMedicalRate < 0 || t.FutureEarningsFraction < 0 || t.PerDependent < 0 || t.CatastrophicCare < 0 {
		return fmt.Errorf("%s: rates and amounts must not be negative", t.CaseType)
	}
	if t.NonEconomic.Base < 0 || t.NonEconomic.EconomicMultiple < 0 {
		return fmt.Errorf("%s: non_economic terms must not be negative", t.CaseType)
	}

	prev := 0.0
	for _, f := range t.Severity {
		if f.Multiplier <= prev {
			return fmt.Errorf("%s: severity %q multiplier %.2f must exceed the previous band", t.CaseType, f.Key, f.Multiplier)
		}
		prev = f.Multiplier
	}
	for _, group := range [][]Factor{t.Categories, t.Flags} {
		for _, f := range group {
			if f.Multiplier <= 0 {
				return fmt.Errorf("%s: multiplier for %q must be positive", t.CaseType, f.Key)
			}
		}
	}
	seen := make(map[string]bool, len(t.Dimensions))
	for _, d := range t.Dimensions {
		if d.Key == "" || reservedKeys[d.Key] || seen[d.Key] {
			return fmt.Errorf("%s: dimension key %q is empty, reserved or repeated", t.CaseType, d.Key)
		}
		seen[d.Key] = true
		if len(d.Options) == 0 {
			return fmt.Errorf("%s: dimension %q has no options", t.CaseType, d.Key)
		}
		for _, f := range d.Options {
			if f.Multiplier <= 0 {
				return fmt.Errorf("%s: dimension %q option %q multiplier must be positive", t.CaseType, d.Key, f.Key)
			}
		}
	}
	for _, b := range t.AgeBands {
		if b.Factor <= 0 {
			return fmt.Errorf("%s: age band from %d must have a positive factor", t.CaseType, b.From)
		}
	}
	for k, lvl := range t.Disability {
		switch model.Disability(k) {
		case model.DisabilityPartial, model.DisabilityYes:
		default:
			return fmt.Errorf("%s: unknown disability level %q", t.CaseType, k)
		}
		if lvl.Multiplier <= 0 || lvl.CapacityLoss < 0 || lvl.CapacityLoss > 1 || lvl.LifetimeCare < 0 {
			return fmt.Errorf("%s: disability level %q out of range", t.CaseType, k)
		}
	}
	for _, c := range t.Caps {
		if c.Ceiling <= 0 {
			return fmt.Errorf("%s: cap for %q must be positive", t.CaseType, c.Category)
		}
	}
	for _, a := range t.FlatAdditions {
		if a.Amount < 0 {
			return fmt.Errorf("%s: flat addition %q must not be negative", t.CaseType, a.Key)
		}
	}
	if sa := t.SurvivalAction; sa != nil {
		if sa.Base < 0 {
			return fmt.Errorf("%s: survival_action base must not be negative", t.CaseType)
		}
		for k, m := range sa.CauseMultipliers {
			if m <= 0 {
				return fmt.Errorf("%s: survival multiplier for %q must be positive", t.CaseType, k)
			}
		}
	}
	if t.Range.Low <= 0 || t.Range.Low > 1 || t.Range.High < 1 {
		return fmt.Errorf("%s: range must satisfy 0 < low <= 1 <= high", t.CaseType)
	}
	return nil
}
