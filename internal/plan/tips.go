package plan

import (
	"slices"

	"lg/peso-certo-api/internal/profile"
)

// baseTips are shown after any personalized tips.
var baseTips = []string{
	"💧 Drink water before meals",
	"🥗 Start meals with a salad",
	"🚶 Walk for 10 minutes after eating",
	"😴 Sleep 7-8 hours a night",
	"🍎 Keep fruit within reach",
	"🏋️ Strength train 2-3 times a week",
	"🧘 Practice mindful eating",
	"📱 Avoid screens before bed",
}

// tipRule contributes at most one tip for a profile.
type tipRule struct {
	name string
	tip  func(p profile.Profile) (string, bool)
}

// whenText builds a rule keyed on a single-select answer.
func whenText(field string, tips map[string]string) func(profile.Profile) (string, bool) {
	return func(p profile.Profile) (string, bool) {
		tip, ok := tips[p.Text(field)]
		return tip, ok
	}
}

// whenSelected builds a rule that fires when value is in a multi-select set.
func whenSelected(field, value, tip string) func(profile.Profile) (string, bool) {
	return func(p profile.Profile) (string, bool) {
		return tip, p.Contains(field, value)
	}
}

// tipRules are evaluated top to bottom; earlier rules place their tip earlier
// in the final list.
var tipRules = []tipRule{
	{"cravingTime", whenText(profile.FieldCravingTime, map[string]string{
		"night":     "🌙 Prepare healthy snacks for the evening",
		"afternoon": "☕ Keep protein snacks around for the afternoon",
	})},
	{"habit:love-sweets", whenSelected(profile.FieldHabits, "love-sweets", "🍫 Swap sweets for fruit little by little")},
	{"habit:eat-late", whenSelected(profile.FieldHabits, "eat-late", "🌙 Avoid eating in the 3 hours before bed")},
	{"habit:drink-casually", whenSelected(profile.FieldHabits, "drink-casually", "🍷 Limit alcoholic drinks to 1-2 times a week")},
	{"waterIntake", whenText(profile.FieldWaterIntake, map[string]string{
		"coffee-tea": "💧 Alternate coffee or tea with plain water",
		"less-2":     "💧 Work up gradually to 6-8 glasses a day",
	})},
	{"bellyType", whenText(profile.FieldBellyType, map[string]string{
		"stress":  "🧘 Meditate daily to lower cortisol",
		"gluten":  "🌾 Consider cutting back on gluten gradually",
		"alcohol": "🚫 Cut down on alcohol step by step",
	})},
}

// Tips returns the personalized tips followed by the base tips, truncated to
// six entries.
func Tips(p profile.Profile) []string {
	tips := make([]string, 0, len(tipRules)+len(baseTips))
	for _, r := range tipRules {
		if tip, ok := r.tip(p); ok {
			tips = append(tips, tip)
		}
	}
	tips = append(tips, baseTips...)
	return slices.Clip(tips[:min(len(tips), maxTips)])
}
