// Package plan derives the personalized nutrition and exercise plan from an
// onboarding profile. Generate is pure: the same profile always yields the
// same plan, and a partial profile falls back to fixed defaults instead of
// failing.
package plan

import (
	"math"

	"lg/peso-certo-api/internal/profile"
)

// Defaults applied at calculation time for missing or zero answers.
const (
	DefaultWeightKG       = 70.0
	DefaultTargetWeightKG = 65.0
	DefaultHeightCM       = 170.0
	DefaultAge            = 30.0
	DefaultActivityLevel  = "moderate"
	DefaultGender         = "female"
)

const (
	// calorieDeficit is subtracted from TDEE regardless of goal direction.
	calorieDeficit = 500.0
	// weeklyLossKG is the assumed pace used for the duration estimate.
	weeklyLossKG = 0.5
	waterGoal    = 8
	maxTips      = 6
)

// activityFactors maps activity levels to their TDEE multiplier. Unknown
// levels use the moderate factor.
var activityFactors = map[string]float64{
	"sedentary":  1.2,
	"light":      1.375,
	"moderate":   1.55,
	"active":     1.725,
	"veryActive": 1.9,
}

// Recipe is a suggested meal from the fixed catalog.
type Recipe struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Time     string `json:"time"`
	Icon     string `json:"icon"`
}

// Exercise is a suggested workout from the fixed catalog.
type Exercise struct {
	Name     string `json:"name"`
	Duration string `json:"duration"`
	Calories int    `json:"calories"`
	Icon     string `json:"icon"`
}

// Plan is the generated daily plan. It is never edited after generation;
// re-running onboarding replaces it.
type Plan struct {
	DailyCalories   int        `json:"dailyCalories"`
	ProteinGrams    int        `json:"proteinGrams"`
	CarbsGrams      int        `json:"carbsGrams"`
	FatsGrams       int        `json:"fatsGrams"`
	WaterGoal       int        `json:"waterGoal"`
	ExerciseMinutes int        `json:"exerciseMinutes"`
	EstimatedWeeks  int        `json:"estimatedWeeks"`
	BMI             float64    `json:"bmi"`
	BMICategory     string     `json:"bmiCategory"`
	Tips            []string   `json:"tips"`
	Recipes         []Recipe   `json:"recipes"`
	Exercises       []Exercise `json:"exercises"`

	// Intermediate values, reported for the result screen.
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}

// Inputs are the profile values the formulas read, after defaults.
type Inputs struct {
	WeightKG       float64
	TargetWeightKG float64
	HeightCM       float64
	Age            float64
	Gender         string
	ActivityLevel  string
}

// InputsFrom reads the calculation inputs from p. Missing, unparsable,
// non-finite or zero numbers take their default, so a zero height can never divide by zero.
func InputsFrom(p profile.Profile) Inputs {
	in := Inputs{
		WeightKG:       numberOr(p, profile.FieldCurrentWeight, DefaultWeightKG),
		TargetWeightKG: numberOr(p, profile.FieldTargetWeight, DefaultTargetWeightKG),
		HeightCM:       numberOr(p, profile.FieldHeight, DefaultHeightCM),
		Age:            numberOr(p, profile.FieldAge, DefaultAge),
		Gender:         p.Text(profile.FieldGender),
		ActivityLevel:  p.Text(profile.FieldActivityLevel),
	}
	if in.Gender == "" {
		in.Gender = DefaultGender
	}
	if in.ActivityLevel == "" {
		in.ActivityLevel = DefaultActivityLevel
	}
	return in
}

// Generate computes the plan for p.
func Generate(p profile.Profile) Plan {
	in := InputsFrom(p)

	raw := rawBMI(in.WeightKG, in.HeightCM)
	bmr := BMR(in.Gender, in.WeightKG, in.HeightCM, in.Age)
	tdee := bmr * ActivityFactor(in.ActivityLevel)
	calories := int(math.Round(tdee - calorieDeficit))
	protein, carbs, fats := Macros(calories, in.WeightKG)

	exerciseMinutes := 30
	if in.ActivityLevel == "sedentary" {
		exerciseMinutes = 20
	}

	return Plan{
		DailyCalories:   calories,
		ProteinGrams:    protein,
		CarbsGrams:      carbs,
		FatsGrams:       fats,
		WaterGoal:       waterGoal,
		ExerciseMinutes: exerciseMinutes,
		EstimatedWeeks:  EstimatedWeeks(in.WeightKG, in.TargetWeightKG),
		BMI:             math.Round(raw*10) / 10,
		BMICategory:     Category(raw),
		Tips:            Tips(p),
		Recipes:         Recipes(),
		Exercises:       Exercises(),
		BMR:             bmr,
		TDEE:            tdee,
	}
}

// BMI returns weight / height² rounded to one decimal place.
func BMI(weightKG, heightCM float64) float64 {
	return math.Round(rawBMI(weightKG, heightCM)*10) / 10
}

func rawBMI(weightKG, heightCM float64) float64 {
	if heightCM == 0 {
		heightCM = DefaultHeightCM
	}
	m := heightCM / 100
	return weightKG / (m * m)
}

// Category classifies a BMI. Generate passes the unrounded value, so 24.98
// is still normal even though it is reported as 25.0. Each boundary belongs
// to the higher category:
// 18.5 is normal, 25 overweight, 30 obesity grade I, 35 obesity grade II/III.
func Category(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	case bmi < 35:
		return "obesity grade I"
	default:
		return "obesity grade II/III"
	}
}

// BMR uses the revised Harris-Benedict equation: the male constants for
// "male" and the female constants for every other answer.
func BMR(gender string, weightKG, heightCM, age float64) float64 {
	if gender == "male" {
		return 88.362 + 13.397*weightKG + 4.799*heightCM - 5.677*age
	}
	return 447.593 + 9.247*weightKG + 3.098*heightCM - 4.330*age
}

// ActivityFactor returns the TDEE multiplier for level.
func ActivityFactor(level string) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return activityFactors[DefaultActivityLevel]
}

// Macros splits a calorie target into gram targets: protein at 2 g/kg, fats
// at 25% of calories, carbs from what remains. Grams never go below zero.
func Macros(calories int, weightKG float64) (protein, carbs, fats int) {
	protein = int(math.Round(weightKG * 2))
	fats = int(math.Round(float64(calories) * 0.25 / 9))
	carbs = int(math.Round(float64(calories-protein*4-fats*9) / 4))
	return max(protein, 0), max(carbs, 0), max(fats, 0)
}

// EstimatedWeeks is the number of weeks to reach target at 0.5 kg a week,
// never less than one.
func EstimatedWeeks(weightKG, targetKG float64) int {
	weeks := int(math.Ceil((weightKG - targetKG) / weeklyLossKG))
	return max(weeks, 1)
}

func numberOr(p profile.Profile, id string, fallback float64) float64 {
	v, ok := p.Number(id)
	if !ok || v == 0 {
		return fallback
	}
	return v
}
