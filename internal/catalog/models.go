package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Product is one cataloged row of the products table.
type Product struct {
	ID           int64
	Name         string
	Description  string
	ImageURL     string
	Category     string
	Material     string
	Color        string
	Dimensions   string
	OriginSource string
	ImportCost   *float64
	RetailPrice  *float64
	KeyTags      string
	CreatedAt    time.Time
}

// requiredFields enumerates the keys every extracted record must carry.
var requiredFields = []string{
	"name", "description", "category", "material",
	"color", "dimensions", "origin_source", "import_cost", "retail_price", "key_tags",
}

// MissingFieldError reports an extracted record that lacks a required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// TextOrList accepts either a JSON string or an array of strings. The model
// is asked for bullet-point descriptions and tag lists, and returns either
// form depending on its mood.
type TextOrList []string

func (t *TextOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TextOrList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*t = TextOrList(many)
		return nil
	}
	return fmt.Errorf("expected string or list of strings, got %s", snippet(data))
}

// Join flattens the value to a single stored string.
func (t TextOrList) Join(sep string) string {
	return strings.Join([]string(t), sep)
}

// Price accepts a JSON number, a numeric string (with an optional leading
// currency symbol), JSON null, or the literal string "null".
type Price struct {
	value float64
	valid bool
}

// NewPrice builds a set price value.
func NewPrice(value float64) Price {
	return Price{value: value, valid: true}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*p = Price{}
		return nil
	}
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*p = Price{value: number, valid: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
		if text == "" || strings.EqualFold(text, "null") {
			*p = Price{}
			return nil
		}
		parsed, err := strconv.ParseFloat(text, 64)
		if err != nil {
			*p = Price{}
			return nil
		}
		*p = Price{value: parsed, valid: true}
		return nil
	}
	return fmt.Errorf("expected number, string, or null, got %s", snippet(data))
}

// Value returns the price and whether it is set.
func (p Price) Value() (float64, bool) {
	return p.value, p.valid
}

func (p Price) nullable() any {
	if !p.valid {
		return nil
	}
	return p.value
}

// Draft is an extracted product record awaiting insertion. Build one with
// DecodeDraft so required-field presence is tracked from the source payload.
type Draft struct {
	Name         string     `json:"name"`
	Description  TextOrList `json:"description"`
	Category     string     `json:"category"`
	Material     string     `json:"material"`
	Color        string     `json:"color"`
	Dimensions   string     `json:"dimensions"`
	OriginSource string     `json:"origin_source"`
	ImportCost   Price      `json:"import_cost"`
	RetailPrice  Price      `json:"retail_price"`
	KeyTags      TextOrList `json:"key_tags"`

	missing []string
}

// DecodeDraft parses a JSON object into a Draft, recording which required
// fields the payload omitted. Validation is deferred to insert time so a
// partially useful record can still be inspected and logged.
func DecodeDraft(payload []byte) (*Draft, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(payload, &keys); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	for _, field := range requiredFields {
		if _, ok := keys[field]; !ok {
			draft.missing = append(draft.missing, field)
		}
	}
	return &draft, nil
}

// Validate reports the first missing required field, if any. Records are
// rejected wholesale; there is no partial fill.
func (d *Draft) Validate() error {
	if len(d.missing) > 0 {
		return &MissingFieldError{Field: d.missing[0]}
	}
	return nil
}

func snippet(data []byte) string {
	const limit = 40
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
