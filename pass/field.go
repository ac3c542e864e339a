package pass

import "fmt"

// TextAlignment enum matching the wallet display alignment constants
type TextAlignment string

const (
	TextAlignmentLeft      TextAlignment = "PKTextAlignmentLeft"
	TextAlignmentCenter    TextAlignment = "PKTextAlignmentCenter"
	TextAlignmentRight     TextAlignment = "PKTextAlignmentRight"
	TextAlignmentJustified TextAlignment = "PKTextAlignmentJustified"
	TextAlignmentNatural   TextAlignment = "PKTextAlignmentNatural"
)

// DateStyle enum for date and time field rendering
type DateStyle string

const (
	DateStyleNone   DateStyle = "PKDateStyleNone"
	DateStyleShort  DateStyle = "PKDateStyleShort"
	DateStyleMedium DateStyle = "PKDateStyleMedium"
	DateStyleLong   DateStyle = "PKDateStyleLong"
	DateStyleFull   DateStyle = "PKDateStyleFull"
)

// NumberStyle enum for number field rendering
type NumberStyle string

const (
	NumberStyleDecimal    NumberStyle = "PKNumberStyleDecimal"
	NumberStylePercent    NumberStyle = "PKNumberStylePercent"
	NumberStyleScientific NumberStyle = "PKNumberStyleScientific"
	NumberStyleSpellOut   NumberStyle = "PKNumberStyleSpellOut"
)

// Field is one display field on the pass. Key must be unique within its
// group; the model accepts duplicates and serializes them as-is, which
// is a caller error. Insertion order determines display order.
//
// Only key, value and label are emitted for a plain text field; the
// remaining attributes are optional refinements and are omitted from
// the JSON when unset.
type Field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Label string `json:"label"`

	ChangeMessage string        `json:"changeMessage,omitempty"`
	TextAlignment TextAlignment `json:"textAlignment,omitempty"`

	// Date field attributes
	DateStyle       DateStyle `json:"dateStyle,omitempty"`
	TimeStyle       DateStyle `json:"timeStyle,omitempty"`
	IsRelative      *bool     `json:"isRelative,omitempty"`
	IgnoresTimeZone *bool     `json:"ignoresTimeZone,omitempty"`

	// Number and currency field attributes; mutually exclusive per the
	// wallet format, not enforced by the model.
	NumberStyle  NumberStyle `json:"numberStyle,omitempty"`
	CurrencyCode string      `json:"currencyCode,omitempty"`
}

// TextField creates a plain (key, value, label) field.
func TextField(key string, value any, label string) Field {
	return Field{Key: key, Value: value, Label: label}
}

// DateField creates a field rendered as a date in the given style.
func DateField(key string, value any, label string, style DateStyle) Field {
	return Field{Key: key, Value: value, Label: label, DateStyle: style, TimeStyle: style}
}

// NumberField creates a field rendered as a number in the given style.
func NumberField(key string, value any, label string, style NumberStyle) Field {
	return Field{Key: key, Value: value, Label: label, NumberStyle: style}
}

// CurrencyField creates a field rendered as an amount of the given
// ISO 4217 currency.
func CurrencyField(key string, value any, label, currencyCode string) Field {
	return Field{Key: key, Value: value, Label: label, CurrencyCode: currencyCode}
}

// String converts the field to a short string for diagnostics.
func (f Field) String() string {
	return fmt.Sprintf("%s=%v (%s)", f.Key, f.Value, f.Label)
}
