package format

import (
	"fmt"
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"injury-estimator/internal/model"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
}

// Languages that write the currency symbol after the amount.
var suffixLanguages = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "pt": true,
	"nl": true, "pl": true, "sv": true, "cs": true, "sk": true,
}

// Formatter turns an EstimateResult into display strings. It holds no
// per-request state and is safe for concurrent use.
type Formatter struct {
	locale   language.Tag
	currency currency.Unit
}

func New(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}
	return &Formatter{locale: tag, currency: unit}, nil
}

// Currency returns the ISO 4217 code amounts are formatted in.
func (f *Formatter) Currency() string {
	return f.currency.String()
}

// Tag resolves a request locale, falling back to the formatter default when
// it is empty or malformed.
func (f *Formatter) Tag(locale string) language.Tag {
	if locale == "" {
		return f.locale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return f.locale
	}
	return tag
}

// Format builds the display model. Amounts are shown in whole currency units
// with the locale's digit grouping.
func (f *Formatter) Format(r *model.EstimateResult, locale string) model.DisplayModel {
	tag := f.Tag(locale)

	dm := model.DisplayModel{
		CaseType:  r.CaseType,
		Locale:    tag.String(),
		Currency:  f.Currency(),
		Total:     f.Amount(r.AdjustedTotal, tag),
		Low:       f.Amount(r.Low, tag),
		High:      f.Amount(r.High, tag),
		Breakdown: make([]model.BreakdownLine, 0, len(r.Lines)),
	}
	dm.Range = dm.Low + " - " + dm.High

	for _, l := range r.Lines {
		dm.Breakdown = append(dm.Breakdown, model.BreakdownLine{
			Key:       l.Key,
			Label:     l.Label,
			Amount:    l.Amount,
			Formatted: f.Amount(l.Amount, tag),
		})
	}
	return dm
}

// Amount formats v as a whole-unit currency string, "$519,520" for en-US.
func (f *Formatter) Amount(v float64, tag language.Tag) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		v = 0
	}
	digits := message.NewPrinter(tag).Sprintf("%d", int64(math.Round(v)))

	code := f.currency.String()
	sym, ok := symbols[code]
	if !ok {
		return code + " " + digits
	}
	base, _ := tag.Base()
	if suffixLanguages[base.String()] {
		return digits + " " + sym
	}
	return sym + digits
}
