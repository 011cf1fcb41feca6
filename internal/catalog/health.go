package catalog

import (
	"fmt"
	"math"

	"github.com/easycalchub/calchub/model"
)

func healthDefinitions() []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "bmi-calculator", Category: "Health",
			Title:       "BMI Calculator",
			Description: "Body mass index from weight and height, with status band.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
				slider("height", "Height", 170, 100, 250, 1, "cm"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				h := in.Num("height") / 100
				bmi := in.Num("weight") / (h * h)
				var status string
				switch {
				case bmi < 18.5:
					status = "Underweight"
				case bmi >= 30:
					status = "Obese"
				case bmi >= 25:
					status = "Overweight"
				default:
					status = "Normal"
				}
				return []model.ResultItem{
					numHi("bmi", "BMI", round1(bmi)),
					txt("status", "Status", status),
				}
			},
		},
		{
			Slug: "bmr-calculator", Category: "Health",
			Title:       "BMR Calculator",
			Description: "Rough basal metabolic rate from body weight.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("bmr", "Calories per Day", round(in.Num("weight") * 24)),
				}
			},
		},
		{
			Slug: "calorie-intake-calculator", Category: "Health",
			Title:       "Calorie Intake Calculator",
			Description: "Maintenance calorie estimate from body weight.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("calories", "Calories per Day", round(in.Num("weight") * 30)),
				}
			},
		},
		{
			Slug: "ideal-weight-calculator", Category: "Health",
			Title:       "Ideal Weight Calculator",
			Description: "Broca index ideal weight from height.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("height", "Height", 170, 100, 250, 1, "cm"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("ideal", "Ideal Weight (kg)", in.Num("height") - 100),
				}
			},
		},
		{
			Slug: "body-fat-percentage-calculator", Category: "Health",
			Title:       "Body Fat Percentage Calculator",
			Description: "Quick body fat estimate from waist and height.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("waist", "Waist", 90, 40, 200, 1, "cm"),
				slider("height", "Height", 170, 100, 250, 1, "cm"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					pctHi("fat", "Body Fat", round1(64-20*in.Num("height")/in.Num("waist"))),
				}
			},
		},
		{
			Slug: "daily-water-intake-calculator", Category: "Health",
			Title:       "Daily Water Intake Calculator",
			Description: "Recommended daily water intake from body weight.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("litres", "Litres per Day", round1(in.Num("weight") * 0.033)),
				}
			},
		},
		{
			Slug: "steps-to-calories-calculator", Category: "Health",
			Title:       "Steps to Calories Calculator",
			Description: "Calories burned for a step count.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("steps", "Steps", 10000, 100, 100000, 100, ""),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("calories", "Calories Burned", round(in.Num("steps") * 0.04)),
				}
			},
		},
		{
			Slug: "pregnancy-due-date-calculator", Category: "Health",
			Title:       "Pregnancy Due Date Calculator",
			Description: "Days remaining out of the 280-day term.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("days", "Days Since LMP", 60, 0, 280, 1, "Days"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("remaining", "Days Remaining", math.Max(0, 280-in.Num("days"))),
				}
			},
		},
		{
			Slug: "period-cycle-calculator", Category: "Health",
			Title:       "Period Cycle Calculator",
			Description: "Days until the next expected cycle.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("cycle", "Cycle Length", 28, 21, 35, 1, "Days"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("next", "Next Period In (Days)", in.Num("cycle")),
				}
			},
		},
		{
			Slug: "lean-body-mass-calculator", Category: "Health",
			Title:       "Lean Body Mass Calculator",
			Description: "Boer formula lean body mass.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
				slider("height", "Height", 170, 100, 250, 1, "cm"),
				radioField("gender", "Gender", "0", opt("Male", "0"), opt("Female", "1")),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				w := in.Num("weight")
				h := in.Num("height")
				var lbm float64
				if in.Text("gender") == "1" {
					lbm = 0.252*w + 0.473*h - 48.3
				} else {
					lbm = 0.407*w + 0.267*h - 19.2
				}
				return []model.ResultItem{
					numHi("lbm", "Lean Body Mass (kg)", round1(lbm)),
				}
			},
		},
		{
			Slug: "heart-rate-zone-calculator", Category: "Health",
			Title:       "Heart Rate Zone Calculator",
			Description: "Maximum heart rate and aerobic training zone by age.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("age", "Age", 30, 10, 100, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				maxHr := 220 - in.Num("age")
				zone := fmt.Sprintf("%.0f - %.0f", math.Round(maxHr*0.5), math.Round(maxHr*0.85))
				return []model.ResultItem{
					numRes("maxHr", "Max Heart Rate (bpm)", maxHr),
					txtHi("zone", "Training Zone (bpm)", zone),
				}
			},
		},
		{
			Slug: "bac-calculator", Category: "Health",
			Title:       "BAC Calculator",
			Description: "Estimated blood alcohol content by Widmark formula.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("drinks", "Standard Drinks", 2, 0, 20, 1, ""),
				slider("weight", "Weight", 70, 30, 200, 0.5, "kg"),
				slider("hours", "Hours Since First Drink", 1, 0, 24, 0.5, "Hrs"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				bac := (in.Num("drinks")*14)/(0.68*in.Num("weight")*1000)*100 - 0.015*in.Num("hours")
				return []model.ResultItem{
					pctHi("bac", "Blood Alcohol Content", round3(math.Max(0, bac))),
				}
			},
		},
	}
}
