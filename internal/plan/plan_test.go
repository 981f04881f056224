package plan

import (
	"math"
	"slices"
	"testing"

	"lg/peso-certo-api/internal/profile"
)

// makeProfile builds a profile with the numeric and select answers the
// calculator reads. Tests add tip-related answers on top.
func makeProfile(gender string, age, heightCM, weightKG, targetKG float64, activity string) profile.Profile {
	p := profile.New()
	p.Set(profile.FieldGender, gender)
	p.Set(profile.FieldAge, age)
	p.Set(profile.FieldHeight, heightCM)
	p.Set(profile.FieldCurrentWeight, weightKG)
	p.Set(profile.FieldTargetWeight, targetKG)
	p.Set(profile.FieldActivityLevel, activity)
	return p
}

/* ─── BMI ────────────────────────────────────────────────────────────── */

func TestBMI_Reference(t *testing.T) {
	bmi := BMI(70, 170)
	if bmi != 24.2 {
		t.Errorf("BMI(70, 170) = %v, want 24.2", bmi)
	}
	if got := Category(bmi); got != "normal" {
		t.Errorf("Category(24.2) = %q, want normal", got)
	}
}

// TestCategory_Boundaries pins the lower-bound-inclusive convention: each
// boundary value belongs to the higher category.
func TestCategory_Boundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{18.4, "underweight"},
		{18.5, "normal"},
		{24.9, "normal"},
		{25, "overweight"},
		{29.9, "overweight"},
		{30, "obesity grade I"},
		{34.9, "obesity grade I"},
		{35, "obesity grade II/III"},
		{52, "obesity grade II/III"},
	}
	for _, tc := range cases {
		if got := Category(tc.bmi); got != tc.want {
			t.Errorf("Category(%v) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

// TestGenerate_CategoryUsesUnroundedBMI covers 72.2 kg at 170 cm: BMI is
// 24.98, reported as 25 but still classified normal.
func TestGenerate_CategoryUsesUnroundedBMI(t *testing.T) {
	pl := Generate(makeProfile("female", 30, 170, 72.2, 65, "moderate"))
	if pl.BMI != 25 {
		t.Errorf("BMI = %v, want 25", pl.BMI)
	}
	if pl.BMICategory != "normal" {
		t.Errorf("BMICategory = %q, want normal", pl.BMICategory)
	}
}

func TestBMI_ZeroHeightUsesDefault(t *testing.T) {
	if got, want := BMI(70, 0), BMI(70, DefaultHeightCM); got != want {
		t.Errorf("BMI(70, 0) = %v, want %v", got, want)
	}
}

/* ─── BMR / TDEE / calories ──────────────────────────────────────────── */

// TestGenerate_FemaleReference checks the female formula end to end:
// BMR = 447.593 + 9.247·70 + 3.098·170 − 4.330·30 = 1491.643,
// TDEE = 1491.643 × 1.55 = 2312.047, calories = round(TDEE − 500) = 1812.
func TestGenerate_FemaleReference(t *testing.T) {
	pl := Generate(makeProfile("female", 30, 170, 70, 65, "moderate"))

	if math.Abs(pl.BMR-1491.643) > 1e-9 {
		t.Errorf("BMR = %v, want 1491.643", pl.BMR)
	}
	if math.Abs(pl.TDEE-2312.04665) > 1e-9 {
		t.Errorf("TDEE = %v, want 2312.04665", pl.TDEE)
	}
	if pl.DailyCalories != 1812 {
		t.Errorf("DailyCalories = %d, want 1812", pl.DailyCalories)
	}
	if pl.ProteinGrams != 140 || pl.FatsGrams != 50 || pl.CarbsGrams != 201 {
		t.Errorf("macros = P%d C%d F%d, want P140 C201 F50", pl.ProteinGrams, pl.CarbsGrams, pl.FatsGrams)
	}
	if pl.EstimatedWeeks != 10 {
		t.Errorf("EstimatedWeeks = %d, want 10", pl.EstimatedWeeks)
	}
	if pl.BMI != 24.2 || pl.BMICategory != "normal" {
		t.Errorf("BMI = %v %q", pl.BMI, pl.BMICategory)
	}
}

func TestBMR_Male(t *testing.T) {
	got := BMR("male", 70, 170, 30)
	if math.Abs(got-1671.672) > 1e-9 {
		t.Errorf("male BMR = %v, want 1671.672", got)
	}
}

// TestBMR_NonMaleUsesFemaleConstants covers every non-"male" gender answer.
func TestBMR_NonMaleUsesFemaleConstants(t *testing.T) {
	want := BMR("female", 80, 180, 40)
	for _, g := range []string{"non-binary", "prefer-not", ""} {
		if got := BMR(g, 80, 180, 40); got != want {
			t.Errorf("BMR(%q) = %v, want %v", g, got, want)
		}
	}
}

func TestActivityFactor(t *testing.T) {
	cases := map[string]float64{
		"sedentary":  1.2,
		"light":      1.375,
		"moderate":   1.55,
		"active":     1.725,
		"veryActive": 1.9,
		"couch":      1.55,
		"":           1.55,
	}
	for level, want := range cases {
		if got := ActivityFactor(level); got != want {
			t.Errorf("ActivityFactor(%q) = %v, want %v", level, got, want)
		}
	}
}

/* ─── Defaults and clamping ──────────────────────────────────────────── */

// TestGenerate_EmptyProfileUsesDefaults verifies an empty profile matches the
// documented defaults (70 kg → 65 kg, 170 cm, 30 years, female, moderate).
func TestGenerate_EmptyProfileUsesDefaults(t *testing.T) {
	got := Generate(profile.New())
	want := Generate(makeProfile("female", 30, 170, 70, 65, "moderate"))
	if got.DailyCalories != want.DailyCalories || got.EstimatedWeeks != want.EstimatedWeeks || got.BMI != want.BMI {
		t.Errorf("empty profile plan = %+v, want %+v", got, want)
	}
}

func TestGenerate_ZeroHeightFallsBack(t *testing.T) {
	p := makeProfile("female", 30, 0, 70, 65, "moderate")
	pl := Generate(p)
	if math.IsInf(pl.BMI, 0) || math.IsNaN(pl.BMI) || pl.BMI != 24.2 {
		t.Errorf("BMI with zero height = %v, want 24.2", pl.BMI)
	}
}

func TestGenerate_NonFiniteAnswersFallBack(t *testing.T) {
	p := makeProfile("female", 30, 170, 70, 65, "moderate")
	p[profile.FieldHeight] = math.NaN()
	p[profile.FieldCurrentWeight] = "Inf"
	p[profile.FieldAge] = math.Inf(-1)

	got := Generate(p)
	want := Generate(makeProfile("female", 30, 170, 70, 65, "moderate"))
	if got.BMI != want.BMI || got.BMR != want.BMR || got.DailyCalories != want.DailyCalories {
		t.Errorf("plan = bmi %v bmr %v cal %d, want bmi %v bmr %v cal %d",
			got.BMI, got.BMR, got.DailyCalories, want.BMI, want.BMR, want.DailyCalories)
	}
}

func TestEstimatedWeeks(t *testing.T) {
	cases := []struct {
		weight, target float64
		want           int
	}{
		{70, 65, 10},
		{70.2, 70, 1},
		{70.6, 70, 2},
		{70, 70, 1},
		{65, 70, 1},
	}
	for _, tc := range cases {
		if got := EstimatedWeeks(tc.weight, tc.target); got != tc.want {
			t.Errorf("EstimatedWeeks(%v, %v) = %d, want %d", tc.weight, tc.target, got, tc.want)
		}
	}
}

// TestMacros_NeverNegative feeds an extreme profile whose carb remainder
// would be negative without clamping.
func TestMacros_NeverNegative(t *testing.T) {
	protein, carbs, fats := Macros(800, 200)
	if protein != 400 {
		t.Errorf("protein = %d, want 400", protein)
	}
	if carbs != 0 {
		t.Errorf("carbs = %d, want clamped 0", carbs)
	}
	if fats < 0 {
		t.Errorf("fats = %d", fats)
	}
}

func TestGenerate_ExerciseMinutes(t *testing.T) {
	if got := Generate(makeProfile("male", 30, 180, 90, 80, "sedentary")).ExerciseMinutes; got != 20 {
		t.Errorf("sedentary exercise minutes = %d, want 20", got)
	}
	if got := Generate(makeProfile("male", 30, 180, 90, 80, "active")).ExerciseMinutes; got != 30 {
		t.Errorf("active exercise minutes = %d, want 30", got)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := makeProfile("male", 45, 182, 95, 80, "light")
	p.Set(profile.FieldHabits, []string{"eat-late"})
	a, b := Generate(p), Generate(p.Clone())
	if a.DailyCalories != b.DailyCalories || !slices.Equal(a.Tips, b.Tips) {
		t.Error("Generate is not deterministic")
	}
}

/* ─── Catalogs ───────────────────────────────────────────────────────── */

func TestGenerate_FixedCatalogs(t *testing.T) {
	a := Generate(makeProfile("male", 25, 190, 110, 90, "active"))
	b := Generate(profile.New())
	if len(a.Recipes) != 6 || len(a.Exercises) != 6 {
		t.Fatalf("catalog sizes = %d recipes, %d exercises", len(a.Recipes), len(a.Exercises))
	}
	if !slices.Equal(a.Recipes, b.Recipes) || !slices.Equal(a.Exercises, b.Exercises) {
		t.Error("recipes and exercises must not depend on the profile")
	}

	a.Recipes[0].Name = "changed"
	if Recipes()[0].Name == "changed" {
		t.Error("Recipes returned the shared catalog slice")
	}
}
