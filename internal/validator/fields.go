package validator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Canonical raw form keys.
const (
	FieldSubjectAge          = "subject_age"
	FieldAnnualIncome        = "annual_income"
	FieldMedicalExpenses     = "medical_expenses"
	FieldTimeOffWork         = "time_off_work"
	FieldSeverity            = "severity"
	FieldCategory            = "category"
	FieldPainLevel           = "pain_level"
	FieldLiabilityStrength   = "liability_strength"
	FieldPermanentDisability = "permanent_disability"
	FieldDependents          = "dependents"
	FieldJurisdiction        = "jurisdiction"
)

// aliases maps field names used by the individual calculator pages onto the
// canonical keys.
var aliases = map[string]string{
	"age":                      FieldSubjectAge,
	"deceased_age":             FieldSubjectAge,
	"income":                   FieldAnnualIncome,
	"medical_expenses_to_date": FieldMedicalExpenses,
	"medical_costs":            FieldMedicalExpenses,
	"time_off_work_units":      FieldTimeOffWork,
	"time_off":                 FieldTimeOffWork,
	"injury_severity":          FieldSeverity,
	"accident_type":            FieldCategory,
	"product_type":             FieldCategory,
	"vessel_type":              FieldCategory,
	"incident_type":            FieldCategory,
	"cause_of_death":           FieldCategory,
	"victim_role":              FieldCategory,
	"dependents_count":         FieldDependents,
	"state":                    FieldJurisdiction,
}

// canonicalKey turns "annualIncome", "annual-income" and "income" into
// "annual_income". Keys in own are never aliased; a table's own dimension
// keys win over the shared aliases.
func canonicalKey(k string, own map[string]bool) string {
	var b strings.Builder
	prevLower := false
	for _, r := range strings.TrimSpace(k) {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	s := b.String()
	if own[s] {
		return s
	}
	if a, ok := aliases[s]; ok {
		return a
	}
	return s
}

// normalize re-keys the form state. When a canonical key and an alias both
// appear, the canonical key wins. Blank strings count as absent.
func normalize(raw map[string]interface{}, own map[string]bool) map[string]interface{} {
	out := make(map[string]interface{}, len(raw))
	exact := make(map[string]bool, len(raw))
	ks := make([]string, 0, len(raw))
	for k := range raw {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	for _, k := range ks {
		v := raw[k]
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		if v == nil {
			continue
		}
		ck := canonicalKey(k, own)
		isExact := ck == k
		if _, seen := out[ck]; seen && exact[ck] && !isExact {
			continue
		}
		out[ck] = v
		exact[ck] = isExact
	}
	return out
}

// parseNumber accepts JSON numbers and numeric strings; "$12,500" parses as
// 12500. Anything else reports false.
func parseNumber(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case bool:
		return 0, false
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(n)
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		parsed, err := strconv.ParseFloat(fmt.Sprint(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case float64:
		return b != 0, true
	case int:
		return b != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "true", "on", "1", "y":
			return true, true
		case "no", "false", "off", "0", "n":
			return false, true
		}
	}
	return false, false
}

func enumValue(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(s)), true
}
