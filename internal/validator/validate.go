package validator

import (
	"math"
	"strings"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/model"
)

// Ceilings shared with the form schema.
const (
	maxAge        = 120
	maxDependents = 30
)

// Validate coerces raw form state into an EstimateInput. It never fails:
// unparsable or missing amounts become 0, missing enums stay unset, and
// pain/liability answers are clamped to 1..10.
func Validate(raw model.RawFormState, t *factors.Table) model.EstimateInput {
	fields := normalize(raw, dimensionSet(t))

	in := model.EstimateInput{
		SubjectAge:          count(fields[FieldSubjectAge], maxAge),
		AnnualIncome:        nonNegative(fields[FieldAnnualIncome]),
		MedicalExpenses:     nonNegative(fields[FieldMedicalExpenses]),
		TimeOffDays:         t.TimeOffToDays(nonNegative(fields[FieldTimeOffWork])),
		Dependents:          count(fields[FieldDependents], maxDependents),
		PainLevel:           scale(fields[FieldPainLevel]),
		LiabilityStrength:   scale(fields[FieldLiabilityStrength]),
		PermanentDisability: disability(fields[FieldPermanentDisability]),
	}

	if s, ok := enumValue(fields[FieldSeverity]); ok {
		in.Severity = s
	}
	if s, ok := enumValue(fields[FieldCategory]); ok {
		in.Category = s
	}
	if s, ok := fields[FieldJurisdiction].(string); ok {
		in.Jurisdiction = strings.ToUpper(strings.TrimSpace(s))
	}

	for _, d := range t.Dimensions {
		if s, ok := enumValue(fields[d.Key]); ok && s != "" {
			if in.Choices == nil {
				in.Choices = make(map[string]string)
			}
			in.Choices[d.Key] = s
		}
	}

	for _, key := range t.FlagKeys() {
		if b, ok := parseBool(fields[key]); ok && b {
			if in.Flags == nil {
				in.Flags = make(map[string]bool)
			}
			in.Flags[key] = true
		}
	}

	for _, add := range t.FlatAdditions {
		if !add.UserAmount {
			continue
		}
		if v := nonNegative(fields[add.Key]); v > 0 {
			if in.Amounts == nil {
				in.Amounts = make(map[string]float64)
			}
			in.Amounts[add.Key] = v
		}
	}

	return in
}

func nonNegative(v interface{}) float64 {
	f, ok := parseNumber(v)
	if !ok || f < 0 {
		return 0
	}
	return math.Floor(f*100+0.5) / 100
}

// count parses a whole-number answer and pins it into 0..max before the
// integer conversion, so "1e20" cannot overflow.
func count(v interface{}, max float64) int {
	return int(math.Min(nonNegative(v), max))
}

// scale parses a 1..10 answer. Absent answers return 0, the unset sentinel.
func scale(v interface{}) int {
	f, ok := parseNumber(v)
	if !ok {
		return 0
	}
	return int(math.Max(1, math.Min(10, math.Round(f))))
}

// ClampScale pins a pain or liability answer into 1..10.
func ClampScale(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

func disability(v interface{}) model.Disability {
	if b, ok := v.(bool); ok {
		if b {
			return model.DisabilityYes
		}
		return model.DisabilityNo
	}
	s, ok := enumValue(v)
	if !ok {
		return model.DisabilityUnset
	}
	switch s {
	case "partial":
		return model.DisabilityPartial
	case "total", "full", "permanent":
		return model.DisabilityYes
	}
	if b, ok := parseBool(s); ok {
		if b {
			return model.DisabilityYes
		}
		return model.DisabilityNo
	}
	return model.DisabilityUnset
}
