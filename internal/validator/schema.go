package validator

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"injury-estimator/internal/factors"
)

// ValidationError describes one field the strict contract rejects.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
	Code   string `json:"code"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const (
	CodeRequired     = "REQUIRED_FIELD_MISSING"
	CodeInvalidType  = "INVALID_TYPE"
	CodeInvalidEnum  = "INVALID_ENUM_VALUE"
	CodeMinimum      = "MINIMUM_VIOLATION"
	CodeMaximum      = "MAXIMUM_VIOLATION"
	CodePattern      = "PATTERN_MISMATCH"
	CodeInvalidValue = "INVALID_VALUE"
)

var disabilityAnswers = []string{"no", "partial", "yes"}

// Schema builds the JSON Schema of a case type's form. Severity and category
// are required when the table defines options for them.
func Schema(t *factors.Table) map[string]interface{} {
	props := map[string]interface{}{
		FieldSubjectAge:          integer(0, maxAge),
		FieldAnnualIncome:        amount(),
		FieldMedicalExpenses:     amount(),
		FieldTimeOffWork:         amount(),
		FieldPainLevel:           integer(1, 10),
		FieldLiabilityStrength:   integer(1, 10),
		FieldDependents:          integer(0, maxDependents),
		FieldPermanentDisability: map[string]interface{}{"type": "string", "enum": disabilityAnswers},
		FieldJurisdiction:        map[string]interface{}{"type": "string", "pattern": "^[A-Za-z]{2}$"},
	}

	var required []string
	if keys := t.SeverityKeys(); len(keys) > 0 {
		props[FieldSeverity] = map[string]interface{}{"type": "string", "enum": keys}
		required = append(required, FieldSeverity)
	}
	if keys := t.CategoryKeys(); len(keys) > 0 {
		props[FieldCategory] = map[string]interface{}{"type": "string", "enum": keys}
		required = append(required, FieldCategory)
	}
	for _, f := range t.Flags {
		props[f.Key] = map[string]interface{}{"type": "boolean", "description": f.Label}
	}
	for _, d := range t.Dimensions {
		props[d.Key] = map[string]interface{}{"type": "string", "enum": keysOf(d.Options), "description": d.Label}
	}
	for _, a := range t.FlatAdditions {
		if a.UserAmount {
			p := amount()
			p["description"] = a.Label
			p["default"] = a.Amount
			props[a.Key] = p
		}
	}

	schema := map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                t.Label,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": true,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func amount() map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": 0}
}

func integer(min, max int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": min, "maximum": max}
}

// Check validates raw form state against the case type's schema. Numeric
// strings are coerced first, so "28" is a valid age but "twenty" is not.
// An empty result means the form satisfies the strict contract.
func Check(raw map[string]interface{}, t *factors.Table) []ValidationError {
	doc := coerce(normalize(raw, dimensionSet(t)), t)

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(Schema(t)),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return []ValidationError{{Field: "(root)", Reason: err.Error(), Code: CodeInvalidValue}}
	}
	if result.Valid() {
		return nil
	}

	out := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if p, ok := re.Details()["property"].(string); ok {
				field = p
			}
		}
		out = append(out, ValidationError{
			Field:  field,
			Reason: re.Description(),
			Code:   codeFor(re.Type()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// coerce converts the form's strings into the JSON types the schema expects,
// leaving anything unparsable as-is so the schema reports it.
func coerce(fields map[string]interface{}, t *factors.Table) map[string]interface{} {
	numeric := map[string]bool{
		FieldSubjectAge: true, FieldAnnualIncome: true, FieldMedicalExpenses: true,
		FieldTimeOffWork: true, FieldPainLevel: true, FieldLiabilityStrength: true,
		FieldDependents: true,
	}
	for _, a := range t.FlatAdditions {
		if a.UserAmount {
			numeric[a.Key] = true
		}
	}
	dims := dimensionSet(t)
	flags := make(map[string]bool, len(t.Flags))
	for _, f := range t.Flags {
		flags[f.Key] = true
	}

	doc := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch {
		case numeric[k]:
			if f, ok := parseNumber(v); ok {
				doc[k] = f
				continue
			}
		case flags[k]:
			if b, ok := parseBool(v); ok {
				doc[k] = b
				continue
			}
		case k == FieldSeverity || k == FieldCategory || dims[k]:
			if s, ok := enumValue(v); ok {
				doc[k] = s
				continue
			}
		case k == FieldPermanentDisability:
			if d := disability(v); d != "" {
				doc[k] = string(d)
				continue
			}
		}
		doc[k] = v
	}
	return doc
}

func dimensionSet(t *factors.Table) map[string]bool {
	if len(t.Dimensions) == 0 {
		return nil
	}
	set := make(map[string]bool, len(t.Dimensions))
	for _, d := range t.Dimensions {
		set[d.Key] = true
	}
	return set
}

func keysOf(options []factors.Factor) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Key
	}
	return out
}

func codeFor(errType string) string {
	switch errType {
	case "required":
		return CodeRequired
	case "invalid_type":
		return CodeInvalidType
	case "enum":
		return CodeInvalidEnum
	case "number_gte", "number_gt":
		return CodeMinimum
	case "number_lte", "number_lt":
		return CodeMaximum
	case "pattern":
		return CodePattern
	}
	return CodeInvalidValue
}
