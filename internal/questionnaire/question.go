package questionnaire

import "lg/peso-certo-api/internal/profile"

// Type is the input kind of a question; it decides what counts as answered.
type Type string

const (
	NumericInput Type = "numeric-input"
	SingleSelect Type = "single-select"
	MultiSelect  Type = "multi-select"
	AgeSelect    Type = "age-select"
	ImageSelect  Type = "image-select"
)

// Option is one selectable answer. Icon and Image are display hints only.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
	Image string `json:"image,omitempty"`
}

// Question is a static onboarding step. The ID doubles as the profile field
// the answer is stored under.
type Question struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Subtitle    string   `json:"subtitle"`
	Type        Type     `json:"type"`
	Options     []Option `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Catalog is the ordered onboarding questionnaire.
var Catalog = []Question{
	{
		ID:       profile.FieldSimpleGoals,
		Prompt:   "With Peso Certo, I would like to:",
		Subtitle: "Select all of your goals",
		Type:     MultiSelect,
		Options: []Option{
			{Value: "self-esteem", Label: "Boost my self-esteem", Icon: "✨"},
			{Value: "health", Label: "Improve my health", Icon: "❤️"},
			{Value: "confidence", Label: "Gain confidence", Icon: "💪"},
			{Value: "habits", Label: "Build healthy habits", Icon: "🎯"},
			{Value: "weight", Label: "Lose weight", Icon: "⚖️"},
		},
	},
	{
		ID:       profile.FieldCravingTime,
		Prompt:   "When do you crave treats the most?",
		Subtitle: "This helps us personalize your tips",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "morning", Label: "Morning", Icon: "🌅"},
			{Value: "afternoon", Label: "Afternoon", Icon: "☀️"},
			{Value: "night", Label: "Night", Icon: "🌙"},
			{Value: "late-night", Label: "Late night", Icon: "🌃"},
			{Value: "none", Label: "I don't get cravings", Icon: "😊"},
		},
	},
	{
		ID:       "goal",
		Prompt:   "What do you want to focus on?",
		Subtitle: "Choose your main goal",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "weight", Label: "Lose weight", Icon: "⚖️"},
			{Value: "health", Label: "Improve health", Icon: "❤️"},
			{Value: "confidence", Label: "Boost self-esteem", Icon: "✨"},
		},
	},
	{
		ID:       profile.FieldGender,
		Prompt:   "What is your gender?",
		Subtitle: "We use your answer to personalize the content you receive",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "female", Label: "Woman", Icon: "👩"},
			{Value: "male", Label: "Man", Icon: "👨"},
			{Value: "non-binary", Label: "Non-binary", Icon: "🧑"},
			{Value: "prefer-not", Label: "Prefer not to say", Icon: "🤐"},
		},
	},
	{
		ID:       profile.FieldAge,
		Prompt:   "How old are you?",
		Subtitle: "Select your age range",
		Type:     AgeSelect,
		Options: []Option{
			{Value: "25", Label: "18–29 years", Image: "👶"},
			{Value: "35", Label: "30–39 years", Image: "🧑"},
			{Value: "45", Label: "40–49 years", Image: "👨"},
			{Value: "55", Label: "50–59 years", Image: "👴"},
			{Value: "65", Label: "60+ years", Image: "👵"},
		},
	},
	{
		ID:       profile.FieldHabits,
		Prompt:   "Do you have any of these habits?",
		Subtitle: "Select all that apply",
		Type:     MultiSelect,
		Options: []Option{
			{Value: "drink-casually", Label: "I drink casually", Icon: "🍷"},
			{Value: "eat-late", Label: "I eat late at night", Icon: "🌙"},
			{Value: "love-sweets", Label: "I love sweets", Icon: "🍰"},
			{Value: "need-soda", Label: "I can't live without soda", Icon: "🥤"},
			{Value: "salty-crunchy", Label: "I like salty, crunchy snacks", Icon: "🥨"},
		},
	},
	{
		ID:       "lunchChoice",
		Prompt:   "Which of these best describes your lunch?",
		Subtitle: "Food combinations have a big impact on how you burn fat",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "sandwiches", Label: "Usually sandwiches or wraps", Icon: "🥪"},
			{Value: "salad", Label: "A salad or mixed vegetables", Icon: "🥗"},
			{Value: "protein", Label: "Lean protein and a side", Icon: "🍗"},
			{Value: "fast-food", Label: "Usually fast food", Icon: "🍔"},
		},
	},
	{
		ID:       profile.FieldWaterIntake,
		Prompt:   "How many glasses of water do you drink a day?",
		Subtitle: "Hydration is key to losing weight",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "coffee-tea", Label: "I only drink coffee or tea", Icon: "☕"},
			{Value: "less-2", Label: "About 2 glasses", Icon: "💧"},
			{Value: "2-6", Label: "Between 2 and 6 glasses", Icon: "💦"},
			{Value: "more-6", Label: "More than 6 glasses", Icon: "🌊"},
		},
	},
	{
		ID:       "dietType",
		Prompt:   "Do you follow any of these diets?",
		Subtitle: "This helps us personalize your recommendations",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "none", Label: "No", Icon: "🙂"},
			{Value: "low-carb", Label: "Low carb", Icon: "🥗"},
			{Value: "vegetarian", Label: "Vegetarian", Icon: "🥦"},
			{Value: "vegan", Label: "Vegan", Icon: "🌱"},
			{Value: "pescatarian", Label: "Pescatarian", Icon: "🐟"},
		},
	},
	{
		ID:       profile.FieldBellyType,
		Prompt:   "What is your belly type?",
		Subtitle: "This helps us personalize your plan",
		Type:     ImageSelect,
		Options: []Option{
			{Value: "stress", Label: "Stress belly", Image: "😰"},
			{Value: "gluten", Label: "Gluten belly", Image: "🍞"},
			{Value: "alcohol", Label: "Alcohol belly", Image: "🍺"},
			{Value: "hormonal", Label: "Hormonal belly", Image: "⚖️"},
			{Value: "bloated", Label: "Bloated belly", Image: "💨"},
		},
	},
	{
		ID:       "timeAvailable",
		Prompt:   "How much time do you have for yourself each day?",
		Subtitle: "We will fit your plan to your routine",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "minimal", Label: "I barely have time for myself", Icon: "⏰"},
			{Value: "moderate", Label: "Busy, but I try to rest a little", Icon: "🕐"},
			{Value: "flexible", Label: "My schedule is flexible", Icon: "🕰️"},
		},
	},
	{
		ID:       "sleepHours",
		Prompt:   "How long do you usually sleep?",
		Subtitle: "Sleep is essential for weight loss",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "less-5", Label: "Minimal rest (under 5 hours)", Icon: "😴"},
			{Value: "5-6", Label: "Between 5 and 6 hours", Icon: "😪"},
			{Value: "7-8", Label: "Between 7 and 8 hours", Icon: "😊"},
			{Value: "more-8", Label: "Over 8 hours", Icon: "😌"},
		},
	},
	{
		ID:          profile.FieldHeight,
		Prompt:      "How tall are you?",
		Subtitle:    "Enter it in centimeters",
		Type:        NumericInput,
		Placeholder: "e.g. 170",
		Unit:        "cm",
	},
	{
		ID:          profile.FieldCurrentWeight,
		Prompt:      "What is your current weight?",
		Subtitle:    "Enter it in kilograms",
		Type:        NumericInput,
		Placeholder: "e.g. 75",
		Unit:        "kg",
	},
	{
		ID:          profile.FieldTargetWeight,
		Prompt:      "What is your target weight?",
		Subtitle:    "Enter it in kilograms",
		Type:        NumericInput,
		Placeholder: "e.g. 65",
		Unit:        "kg",
	},
	{
		ID:       profile.FieldActivityLevel,
		Prompt:   "How physically active are you?",
		Subtitle: "Be honest, this matters for your plan",
		Type:     SingleSelect,
		Options: []Option{
			{Value: "sedentary", Label: "Sedentary - little or no exercise", Icon: "🛋️"},
			{Value: "light", Label: "Light - 1-3 days a week", Icon: "🚶"},
			{Value: "moderate", Label: "Moderate - 3-5 days a week", Icon: "🏃"},
			{Value: "active", Label: "Active - 6-7 days a week", Icon: "💪"},
		},
	},
}
