// api/models/facet.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AllCategories is echoed as category_id when no category was requested.
const AllCategories = "all"

var ErrMalformedValue = errors.New("exactly one of value_text or value_number must be set")

type Category struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
}

// AttributeCount is one row of a pre-aggregated attribute count source.
// Exactly one of ValueText and ValueNumber is expected to be set.
type AttributeCount struct {
	CategoryID     string   `json:"category_id"`
	AttributeKey   string   `json:"attribute_key"`
	AttributeLabel string   `json:"attribute_label"`
	AttributeType  *string  `json:"attribute_type,omitempty"`
	ValueText      *string  `json:"value_text,omitempty"`
	ValueNumber    *float64 `json:"value_number,omitempty"`
	ItemCount      int64    `json:"item_count"`
}

// Value returns the populated side of the text/number pair. NaN and
// infinite numbers are rejected: they cannot be grouped or written as JSON.
func (a AttributeCount) Value() (FacetValue, error) {
	switch {
	case a.ValueText != nil && a.ValueNumber == nil:
		return TextValue(*a.ValueText), nil
	case a.ValueNumber != nil && a.ValueText == nil:
		n := *a.ValueNumber
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return FacetValue{}, fmt.Errorf("attribute %q in category %q has non-finite value_number %v: %w", a.AttributeKey, a.CategoryID, n, ErrMalformedValue)
		}
		return NumberValue(n), nil
	default:
		return FacetValue{}, fmt.Errorf("attribute %q in category %q: %w", a.AttributeKey, a.CategoryID, ErrMalformedValue)
	}
}

type ValueKind uint8

const (
	KindText ValueKind = iota + 1
	KindNumber
)

// FacetValue is either a text or a number. The zero value is neither and
// is never produced by AttributeCount.Value. FacetValue is comparable and
// safe to use as a map key.
type FacetValue struct {
	kind   ValueKind
	text   string
	number float64
}

func TextValue(s string) FacetValue {
	return FacetValue{kind: KindText, text: s}
}

func NumberValue(n float64) FacetValue {
	return FacetValue{kind: KindNumber, number: n}
}

func (v FacetValue) Kind() ValueKind { return v.kind }

func (v FacetValue) Text() (string, bool) {
	return v.text, v.kind == KindText
}

func (v FacetValue) Number() (float64, bool) {
	return v.number, v.kind == KindNumber
}

func (v FacetValue) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return fmt.Sprintf("%g", v.number)
	default:
		return "<invalid>"
	}
}

// MarshalJSON writes text values as JSON strings and numbers as JSON numbers.
func (v FacetValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.number)
	default:
		return []byte("null"), nil
	}
}

type FacetValueCount struct {
	Value FacetValue `json:"value"`
	Count int64      `json:"count"`
}

type FacetGroup struct {
	Label  string            `json:"label"`
	Type   *string           `json:"type,omitempty"`
	Values []FacetValueCount `json:"values"`
}

// FacetGroups keeps attribute keys in the order they were first seen and
// marshals to a JSON object in that order.
type FacetGroups = orderedmap.OrderedMap[string, *FacetGroup]

func NewFacetGroups() *FacetGroups {
	return orderedmap.New[string, *FacetGroup]()
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FacetResponse struct {
	CategoryID        string           `json:"category_id"`
	Filters           *FacetGroups     `json:"filters"`
	TotalItems        int64            `json:"total_items"`
	PriceRange        *PriceRange      `json:"price_range,omitempty"`
	SubcategoryCounts map[string]int64 `json:"subcategory_counts"`
}
