package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zieg12345/clientsearchinfo/model"
)

// Coercion converts a raw cell into its display string. A returned
// error means the value could not be interpreted; the extractor then
// substitutes the field default.
type Coercion func(model.Cell) (string, error)

// FieldSpec controls how one schema field is displayed: where to read,
// what to show when the value is unusable, and how to convert it.
// A nil Coerce renders the raw cell as text.
type FieldSpec struct {
	Field   string
	Default string
	Coerce  Coercion
}

// Extract resolves one field of a record into a display value. It never
// fails: every fallback path returns the spec default together with a
// diagnostic message, and the success path returns an empty diagnostic.
// Priority: missing field, then null value, then coercion failure.
func Extract(rec *model.Record, spec FieldSpec) (value string, diagnostic string) {
	if rec == nil {
		return spec.Default, fmt.Sprintf("Missing field '%s'", spec.Field)
	}

	cell, ok := rec.Cell(spec.Field)
	if !ok {
		return spec.Default, fmt.Sprintf("Missing field '%s'", spec.Field)
	}
	if cell.IsNull() {
		return spec.Default, fmt.Sprintf("Null value for '%s'", spec.Field)
	}

	coerce := spec.Coerce
	if coerce == nil {
		coerce = CoerceText
	}

	converted, err := coerce(cell)
	if err != nil {
		return spec.Default, fmt.Sprintf("Invalid format for '%s': %s", spec.Field, cell.Display())
	}
	return converted, ""
}

// CoerceText renders the cell as-is.
func CoerceText(c model.Cell) (string, error) {
	return c.Display(), nil
}

// dateLayouts accepted for birthdate-style fields, tried in order.
// The short month-day-year form is what xlsx date cells read back as
// when the workbook styles them with the default date format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02.01.2006",
	"01-02-06",
	"Jan 2, 2006",
}

// excelEpoch is day zero of the xlsx serial date system.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// CoerceDate parses the cell as a calendar date and renders YYYY-MM-DD.
func CoerceDate(c model.Cell) (string, error) {
	switch c.Kind {
	case model.CellDate:
		return c.Time.Format("2006-01-02"), nil
	case model.CellNumber:
		// Serial day count. Anything outside a sane range is not a date.
		if c.Num < 1 || c.Num > 200000 {
			return "", fmt.Errorf("numeric value %v is not a date serial", c.Num)
		}
		return excelEpoch.AddDate(0, 0, int(c.Num)).Format("2006-01-02"), nil
	case model.CellString:
		raw := strings.TrimSpace(c.Str)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format("2006-01-02"), nil
			}
		}
		return "", fmt.Errorf("unrecognized date %q", raw)
	default:
		return "", fmt.Errorf("no value to parse as date")
	}
}

// CoerceDelayDays truncates a numeric-looking value to a grouped whole
// number of days. Values whose digit-only form is not numeric render as
// "0" rather than failing, so junk in this column never produces a
// diagnostic on its own.
func CoerceDelayDays(c model.Cell) (string, error) {
	raw := strings.TrimSpace(c.Display())
	if !isDigitsOnly(strings.ReplaceAll(raw, ".", "")) {
		return "0", nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", fmt.Errorf("not a number: %q", raw)
	}
	return groupThousands(strconv.FormatInt(int64(f), 10)), nil
}

// CoerceMoney parses the cell as a decimal amount and renders it
// thousands-grouped with exactly two fractional digits.
func CoerceMoney(c model.Cell) (string, error) {
	var d decimal.Decimal
	switch c.Kind {
	case model.CellNumber:
		d = decimal.NewFromFloat(c.Num)
	case model.CellString:
		raw := strings.TrimSpace(c.Str)
		raw = strings.ReplaceAll(raw, ",", "")
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return "", fmt.Errorf("not an amount: %q", c.Str)
		}
		d = parsed
	default:
		return "", fmt.Errorf("no value to parse as amount")
	}
	return FormatAmount(d), nil
}

// FormatAmount renders a decimal as a display amount: grouped integer
// part, fixed two decimals (12345.6 -> "12,345.60").
func FormatAmount(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return groupThousands(intPart) + "." + frac
}

// groupThousands inserts comma separators into a plain integer string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ClientFieldSpecs returns the display fields of a client record in
// render order, with their defaults and coercions.
func ClientFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Field: model.FieldName, Default: ""},
		{Field: model.FieldAccountKey, Default: ""},
		{Field: model.FieldContractNumber, Default: ""},
		{Field: model.FieldBirthdate, Default: "", Coerce: CoerceDate},
		{Field: model.FieldRepaymentCycle, Default: ""},
		{Field: model.FieldDelayDays, Default: "0", Coerce: CoerceDelayDays},
		{Field: model.FieldCurrencyCode, Default: ""},
		{Field: model.FieldTotalOutstanding, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldStatementBalance, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldStatementMinimum, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldStatementOverdue, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldInstallmentAmt01, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldInstallmentAmt02, Default: "0.00", Coerce: CoerceMoney},
		{Field: model.FieldEmail01, Default: ""},
		{Field: model.FieldResidenceAddress, Default: ""},
	}
}
