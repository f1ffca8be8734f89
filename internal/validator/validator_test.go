package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"injury-estimator/internal/factors"
	"injury-estimator/internal/model"
)

func loadTable(t *testing.T, caseType string) *factors.Table {
	t.Helper()
	reg, err := factors.Default()
	require.NoError(t, err)
	tbl, ok := reg.Get(caseType)
	require.True(t, ok)
	return tbl
}

func TestCanonicalKey(t *testing.T) {
	tests := map[string]string{
		"annualIncome":     FieldAnnualIncome,
		"annual-income":    FieldAnnualIncome,
		"income":           FieldAnnualIncome,
		"age":              FieldSubjectAge,
		"injurySeverity":   FieldSeverity,
		"accidentType":     FieldCategory,
		"vessel_type":      FieldCategory,
		"oshaViolations":   "osha_violations",
		" pain_level ":     FieldPainLevel,
		"state":            FieldJurisdiction,
		"medicalExpenses2": "medical_expenses2",
	}
	for in, want := range tests {
		assert.Equal(t, want, canonicalKey(in, nil), in)
	}
}

func TestNormalizePrefersCanonicalKey(t *testing.T) {
	got := normalize(map[string]interface{}{
		"income":        "1",
		"annual_income": "2",
		"age":           "",
		"severity":      nil,
	}, nil)
	assert.Equal(t, map[string]interface{}{"annual_income": "2"}, got)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
		ok   bool
	}{
		{"$12,500", 12500, true},
		{" 42.5 ", 42.5, true},
		{7, 7, true},
		{3.25, 3.25, true},
		{"abc", 0, false},
		{"", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestValidateConstructionForm(t *testing.T) {
	tbl := loadTable(t, "construction")

	in := Validate(model.RawFormState{
		"age":                 "28",
		"annualIncome":        "$60,000",
		"medicalExpenses":     10000,
		"timeOffWork":         "8",
		"severity":            " Serious ",
		"accidentType":        "crane-accident",
		"oshaViolations":      "yes",
		"multipleParties":     "yes",
		"painLevel":           "6",
		"liabilityStrength":   8.4,
		"permanentDisability": "partial",
	}, tbl)

	assert.Equal(t, 28, in.SubjectAge)
	assert.Equal(t, 60000.0, in.AnnualIncome)
	assert.Equal(t, 10000.0, in.MedicalExpenses)
	assert.Equal(t, 56.0, in.TimeOffDays)
	assert.Equal(t, "serious", in.Severity)
	assert.Equal(t, "crane-accident", in.Category)
	assert.Equal(t, 6, in.PainLevel)
	assert.Equal(t, 8, in.LiabilityStrength)
	assert.Equal(t, model.DisabilityPartial, in.PermanentDisability)
	assert.Equal(t, map[string]bool{"osha_violations": true}, in.Flags)
}

func TestValidateParseOrDefault(t *testing.T) {
	tbl := loadTable(t, "rideshare")

	in := Validate(model.RawFormState{
		"age":                "unknown",
		"annual_income":      "-5000",
		"medical_expenses":   "lots",
		"pain_level":         "15",
		"liability_strength": "-2",
		"severity":           42,
	}, tbl)

	assert.Zero(t, in.SubjectAge)
	assert.Zero(t, in.AnnualIncome)
	assert.Zero(t, in.MedicalExpenses)
	assert.Equal(t, 10, in.PainLevel)
	assert.Equal(t, 1, in.LiabilityStrength)
	assert.Empty(t, in.Severity)

	assert.Equal(t, model.EstimateInput{}, Validate(nil, tbl))
}

func TestValidateDisability(t *testing.T) {
	tests := []struct {
		in   interface{}
		want model.Disability
	}{
		{true, model.DisabilityYes},
		{false, model.DisabilityNo},
		{"Partial", model.DisabilityPartial},
		{"total", model.DisabilityYes},
		{"no", model.DisabilityNo},
		{"maybe", model.DisabilityUnset},
		{nil, model.DisabilityUnset},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, disability(tt.in), "%v", tt.in)
	}
}

func TestValidateWrongfulDeathAmounts(t *testing.T) {
	tbl := loadTable(t, "wrongful_death")

	in := Validate(model.RawFormState{
		"deceasedAge":  45,
		"causeOfDeath": "medical-malpractice",
		"funeralCosts": "22,000",
		"state":        "ca",
		"dependents":   "2",
		"timeOffWork":  "10",
	}, tbl)

	assert.Equal(t, 45, in.SubjectAge)
	assert.Equal(t, "medical-malpractice", in.Category)
	assert.Equal(t, "CA", in.Jurisdiction)
	assert.Equal(t, 2, in.Dependents)
	assert.Equal(t, 10.0, in.TimeOffDays)
	assert.Equal(t, map[string]float64{"funeral_costs": 22000}, in.Amounts)
}

func TestCheckValidForm(t *testing.T) {
	tbl := loadTable(t, "construction")

	errs := Check(map[string]interface{}{
		"age":                "28",
		"severity":           "serious",
		"accident_type":      "crane-accident",
		"osha_violations":    "yes",
		"pain_level":         6,
		"liability_strength": "8",
		"annual_income":      "$60,000",
		"unrelated_field":    "ignored",
	}, tbl)
	assert.Empty(t, errs)
}

func TestCheckReportsFindings(t *testing.T) {
	tbl := loadTable(t, "wrongful_death")

	errs := Check(map[string]interface{}{
		"severity":             "eternal",
		"pain_level":           0,
		"liability_strength":   11,
		"annual_income":        "a lot",
		"state":                "California",
		"permanent_disability": "sometimes",
	}, tbl)

	got := map[string]string{}
	for _, e := range errs {
		got[e.Field] = e.Code
		assert.NotEmpty(t, e.Reason)
	}
	assert.Equal(t, map[string]string{
		FieldAnnualIncome:        CodeInvalidType,
		FieldCategory:            CodeRequired,
		FieldJurisdiction:        CodePattern,
		FieldLiabilityStrength:   CodeMaximum,
		FieldPainLevel:           CodeMinimum,
		FieldPermanentDisability: CodeInvalidEnum,
		FieldSeverity:            CodeInvalidEnum,
	}, got)

	for i := 1; i < len(errs); i++ {
		assert.LessOrEqual(t, errs[i-1].Field, errs[i].Field)
	}
}

func TestSchema(t *testing.T) {
	tbl := loadTable(t, "wrongful_death")
	s := Schema(tbl)

	assert.Equal(t, "object", s["type"])
	assert.Equal(t, []string{FieldSeverity, FieldCategory}, s["required"])

	props := s["properties"].(map[string]interface{})
	sev := props[FieldSeverity].(map[string]interface{})
	assert.Equal(t, tbl.SeverityKeys(), sev["enum"])

	funeral := props["funeral_costs"].(map[string]interface{})
	assert.Equal(t, 15000.0, funeral["default"])
	assert.NotContains(t, props, "household_services")
}

func TestValidateHugeAndExponentNumbers(t *testing.T) {
	tbl := loadTable(t, "wrongful_death")

	in := Validate(model.RawFormState{
		"pain_level":         "1e30",
		"liability_strength": 1e19,
		"age":                "1e20",
		"dependents":         1e25,
		"annual_income":      "6.5e4",
	}, tbl)

	assert.Equal(t, 10, in.PainLevel)
	assert.Equal(t, 10, in.LiabilityStrength)
	assert.Equal(t, maxAge, in.SubjectAge)
	assert.Equal(t, maxDependents, in.Dependents)
	assert.Equal(t, 65000.0, in.AnnualIncome)

	in = Validate(model.RawFormState{"pain_level": "-1e30", "age": "-1e20", "dependents": "1e400"}, tbl)
	assert.Equal(t, 1, in.PainLevel)
	assert.Zero(t, in.SubjectAge)
	assert.Zero(t, in.Dependents)
}

func TestValidateRideshareDimensions(t *testing.T) {
	tbl := loadTable(t, "rideshare")

	in := Validate(model.RawFormState{
		"rideService":      "Uber",
		"driverStatus":     "passenger-onboard",
		"victimRole":       "passenger-rideshare",
		"accidentType":     "head-on",
		"injuryType":       "fractures",
		"driverBackground": "",
	}, tbl)

	assert.Equal(t, "passenger-rideshare", in.Category)
	assert.Equal(t, map[string]string{
		"ride_service":  "uber",
		"driver_status": "passenger-onboard",
		"accident_type": "head-on",
		"injury_type":   "fractures",
	}, in.Choices)

	construction := loadTable(t, "construction")
	in = Validate(model.RawFormState{"accidentType": "crane-accident"}, construction)
	assert.Equal(t, "crane-accident", in.Category)
	assert.Nil(t, in.Choices)
}

func TestCheckRideshareDimensions(t *testing.T) {
	tbl := loadTable(t, "rideshare")

	s := Schema(tbl)
	props := s["properties"].(map[string]interface{})
	status := props["driver_status"].(map[string]interface{})
	assert.Contains(t, status["enum"], "app-off")

	errs := Check(map[string]interface{}{
		"severity":      "minor",
		"victim_role":   "cyclist",
		"driver_status": "Teleporting",
		"injury_type":   "Fractures",
	}, tbl)
	require.Len(t, errs, 1)
	assert.Equal(t, "driver_status", errs[0].Field)
	assert.Equal(t, CodeInvalidEnum, errs[0].Code)
}
