// Package profile holds the sparse answer map collected during onboarding.
//
// Values are one of three shapes: a string (select answers), a float64
// (numeric and age answers) or a []string (multi-select sets). Nothing is
// defaulted or cross-validated here; the plan calculator applies its own
// defaults when it reads the profile.
package profile

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Field ids read by the plan calculator.
const (
	FieldGender        = "gender"
	FieldAge           = "age"
	FieldHeight        = "height"
	FieldCurrentWeight = "currentWeight"
	FieldTargetWeight  = "targetWeight"
	FieldActivityLevel = "activityLevel"
	FieldCravingTime   = "cravingTime"
	FieldHabits        = "habits"
	FieldWaterIntake   = "waterIntake"
	FieldBellyType     = "bellyType"
	FieldSimpleGoals   = "simpleGoals"
)

// Profile maps a question id to its answer.
type Profile map[string]any

// New returns an empty profile.
func New() Profile {
	return Profile{}
}

// Set overwrites the answer for id. Numbers of any Go numeric type are stored
// as float64 and []any holding strings is stored as []string, so a profile
// read back from JSON behaves the same as one built in memory.
func (p Profile) Set(id string, v any) {
	p[id] = normalize(v)
}

// Get returns the raw answer for id.
func (p Profile) Get(id string) (any, bool) {
	v, ok := p[id]
	return v, ok
}

// Has reports whether id holds a usable answer: a non-blank string, any
// finite number (zero and negatives included) or a non-empty list.
func (p Profile) Has(id string) bool {
	switch v := p[id].(type) {
	case string:
		return strings.TrimSpace(v) != ""
	case float64:
		return finite(v)
	case []string:
		return len(v) > 0
	default:
		return false
	}
}

// Text returns the answer as a string. Numbers are formatted without a
// trailing ".0"; lists and missing answers yield "".
func (p Profile) Text(id string) string {
	switch v := p[id].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Number returns the answer as a float64. Numeric strings are parsed, which
// covers values typed into a text box. NaN and infinities count as missing.
func (p Profile) Number(id string) (float64, bool) {
	switch v := p[id].(type) {
	case float64:
		if !finite(v) {
			return 0, false
		}
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || !finite(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// List returns a copy of the selection set stored under id.
func (p Profile) List(id string) []string {
	v, _ := p[id].([]string)
	return slices.Clone(v)
}

// Contains reports whether value is in the selection set stored under id.
func (p Profile) Contains(id, value string) bool {
	v, _ := p[id].([]string)
	return slices.Contains(v, value)
}

// Toggle flips membership of value in the selection set for id. Toggling the
// same value twice restores the original contents. An emptied set stays in
// the profile as an empty list.
func (p Profile) Toggle(id, value string) {
	current, _ := p[id].([]string)
	if slices.Contains(current, value) {
		p[id] = slices.DeleteFunc(slices.Clone(current), func(v string) bool { return v == value })
		return
	}
	p[id] = append(slices.Clone(current), value)
}

// Clone returns a deep copy.
func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		if list, ok := v.([]string); ok {
			v = slices.Clone(list)
		}
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes a flat answer object and normalizes its values.
func (p *Profile) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*p = nil
		return nil
	}
	out := make(Profile, len(raw))
	for k, v := range raw {
		out.Set(k, v)
	}
	*p = out
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []string:
		return slices.Clone(x)
	case []any:
		list := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return list
	default:
		return v
	}
}
