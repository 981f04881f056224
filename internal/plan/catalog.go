package plan

import "slices"

var recipes = []Recipe{
	{Name: "Egg white omelette with spinach", Calories: 180, Time: "10 min", Icon: "🍳"},
	{Name: "Grilled chicken salad", Calories: 320, Time: "15 min", Icon: "🥗"},
	{Name: "Salmon with vegetables", Calories: 380, Time: "20 min", Icon: "🐟"},
	{Name: "Green detox smoothie", Calories: 150, Time: "5 min", Icon: "🥤"},
	{Name: "Chicken breast with sweet potato", Calories: 420, Time: "25 min", Icon: "🍗"},
	{Name: "Greek yogurt with fruit", Calories: 200, Time: "5 min", Icon: "🥣"},
}

var exercises = []Exercise{
	{Name: "Brisk walk", Duration: "30 min", Calories: 150, Icon: "🚶"},
	{Name: "Easy run", Duration: "20 min", Calories: 200, Icon: "🏃"},
	{Name: "HIIT workout", Duration: "15 min", Calories: 180, Icon: "💪"},
	{Name: "Yoga", Duration: "30 min", Calories: 120, Icon: "🧘"},
	{Name: "Swimming", Duration: "30 min", Calories: 250, Icon: "🏊"},
	{Name: "Cycling", Duration: "40 min", Calories: 300, Icon: "🚴"},
}

// Recipes returns a copy of the fixed recipe catalog.
func Recipes() []Recipe { return slices.Clone(recipes) }

// Exercises returns a copy of the fixed exercise catalog.
func Exercises() []Exercise { return slices.Clone(exercises) }
