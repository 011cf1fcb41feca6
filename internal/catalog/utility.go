package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/easycalchub/calchub/model"
)

func utilityDefinitions() []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "age-calculator", Category: "Utility",
			Title:       "Age Calculator",
			Description: "Age in years from birth year.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("year", "Birth Year", 2000, 1900, 2025, 1, ""),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("age", "Age (Years)", float64(time.Now().Year())-in.Num("year")),
				}
			},
		},
		{
			Slug: "date-difference-calculator", Category: "Utility",
			Title:       "Date Difference Calculator",
			Description: "Number of days between two dates.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				dateField("from", "From Date", "2024-01-01"),
				dateField("to", "To Date", "2024-12-31"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				from, err1 := time.Parse("2006-01-02", in.Text("from"))
				to, err2 := time.Parse("2006-01-02", in.Text("to"))
				if err1 != nil || err2 != nil {
					return []model.ResultItem{errItem("Error", "Invalid Date")}
				}
				days := math.Ceil(math.Abs(to.Sub(from).Hours()) / 24)
				return []model.ResultItem{
					txtHi("days", "Difference", fmt.Sprintf("%.0f Days", days)),
				}
			},
		},
		{
			Slug: "time-duration-calculator", Category: "Utility",
			Title:       "Time Duration Calculator",
			Description: "Minutes expressed as hours and minutes.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("minutes", "Total Minutes", 125, 1, 10000, 1, "Min"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				m := int(in.Num("minutes"))
				return []model.ResultItem{
					txtHi("duration", "Duration", fmt.Sprintf("%dh %dm", m/60, m%60)),
				}
			},
		},
		{
			Slug: "percentage-calculator", Category: "Utility",
			Title:       "Percentage Calculator",
			Description: "What percent one number is of another.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("part", "Part Value", 20, 0, 1000000000),
				numField("whole", "Whole Value", 100, 1, 1000000000),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					pctHi("pct", "Percentage", round1(in.Num("part")/in.Num("whole")*100)),
				}
			},
		},
		{
			Slug: "average-calculator", Category: "Utility",
			Title:       "Average Calculator",
			Description: "Average of two numbers.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("a", "First Number", 10, 0, 1000000000),
				numField("b", "Second Number", 20, 0, 1000000000),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("avg", "Average", (in.Num("a") + in.Num("b")) / 2),
				}
			},
		},
		{
			Slug: "fuel-cost-calculator", Category: "Utility",
			Title:       "Fuel Cost Calculator",
			Description: "Trip fuel cost from distance, mileage, and price.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("distance", "Distance", 100, 1, 10000, 1, "km"),
				slider("mileage", "Mileage", 15, 1, 50, 0.5, "km/l"),
				slider("price", "Fuel Price", 100, 1, 500, 0.5, "₹/l"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("cost", "Fuel Cost", round(in.Num("distance")/in.Num("mileage")*in.Num("price"))),
				}
			},
		},
		{
			Slug: "electricity-bill-calculator", Category: "Utility",
			Title:       "Electricity Bill Calculator",
			Description: "Bill estimate from units consumed and tariff.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("units", "Units Consumed", 250, 1, 10000, 1, "kWh"),
				slider("rate", "Rate per Unit", 8, 1, 50, 0.5, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("bill", "Estimated Bill", round(in.Num("units")*in.Num("rate"))),
				}
			},
		},
		{
			Slug: "internet-speed-calculator", Category: "Utility",
			Title:       "Internet Speed Calculator",
			Description: "Download time for a file at a given connection speed.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("size", "File Size", 10, 0.1, 1000, 0.1, "GB"),
				slider("speed", "Connection Speed", 100, 1, 10000, 1, "Mbps"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				megabits := in.Num("size") * 1024 * 8
				seconds := megabits / in.Num("speed")
				return []model.ResultItem{
					txtHi("time", "Download Time",
						fmt.Sprintf("%dm %.0fs", int(seconds)/60, math.Mod(seconds, 60))),
				}
			},
		},
		{
			Slug: "unit-converter", Category: "Utility",
			Title:       "Unit Converter",
			Description: "Kilometres to miles.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("km", "Kilometres", 10, 0.1, 10000, 0.1, "km"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					numHi("miles", "Miles", round2(in.Num("km") * 0.621371)),
				}
			},
		},
		{
			Slug: "number-to-word-converter", Category: "Utility",
			Title:       "Number to Word Converter",
			Description: "Numbers written out in the Indian numbering system.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("number", "Number", 1550, 0, 999999999),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					txtHi("words", "In Words", indianWords(in.Num("number"))),
				}
			},
		},
		{
			Slug: "emi-vs-rent-calculator", Category: "Utility",
			Title:       "EMI vs Rent Calculator",
			Description: "Monthly gap between a home loan EMI and rent.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("emi", "Monthly EMI", 25000, 1000, 1000000, 500, "₹"),
				slider("rent", "Monthly Rent", 15000, 1000, 1000000, 500, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("gap", "EMI minus Rent", round(in.Num("emi")-in.Num("rent"))),
				}
			},
		},
		{
			Slug: "commission-calculator", Category: "Utility",
			Title:       "Commission Calculator",
			Description: "Commission earned on a sale value.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("sale", "Sale Value", 100000, 100, 100000000, 100, "₹"),
				slider("rate", "Commission Rate", 2, 0, 100, 0.1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("commission", "Commission", round(in.Num("sale")*in.Num("rate")/100)),
				}
			},
		},
		{
			Slug: "sales-tax-calculator", Category: "Utility",
			Title:       "Sales Tax Calculator",
			Description: "Gross price after adding sales tax.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("net", "Net Price", 1000, 1, 10000000, 1, "₹"),
				slider("rate", "Tax Rate", 10, 0, 50, 0.5, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				net := in.Num("net")
				tax := net * in.Num("rate") / 100
				return []model.ResultItem{
					curHi("gross", "Gross Price", round(net+tax)),
					cur("taxAmt", "Tax Amount", round(tax)),
				}
			},
		},
		{
			Slug: "tip-calculator", Category: "Utility",
			Title:       "Tip Calculator",
			Description: "Tip, total, and per-person split for a bill.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("bill", "Bill Amount", 2000, 1, 1000000, 10, "₹"),
				slider("tip", "Tip", 10, 0, 50, 1, "%"),
				slider("split", "Split Between", 1, 1, 50, 1, "People"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				bill := in.Num("bill")
				total := round(bill + bill*in.Num("tip")/100)
				return []model.ResultItem{
					curHi("perPerson", "Per Person", round(total/in.Num("split"))),
					cur("total", "Total with Tip", total),
				}
			},
		},
		{
			Slug: "salary-hike-calculator", Category: "Utility",
			Title:       "Salary Hike Calculator",
			Description: "Percentage increase between old and new salary.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("old", "Old Salary", 500000, 10000, 100000000, 10000, "₹"),
				slider("new", "New Salary", 650000, 10000, 100000000, 10000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				old := in.Num("old")
				return []model.ResultItem{
					pctHi("hike", "Hike", round2((in.Num("new")-old)/old*100)),
				}
			},
		},
		{
			Slug: "alphabet-calculator", Category: "Utility",
			Title:       "Alphabet Calculator",
			Description: "A1Z26 cipher values for a piece of text.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				textField("text", "Text", "HELLO WORLD"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				var parts []string
				for _, r := range strings.ToUpper(in.Text("text")) {
					if r >= 'A' && r <= 'Z' {
						parts = append(parts, fmt.Sprintf("%d", r-'A'+1))
					} else if r != ' ' {
						parts = append(parts, string(r))
					}
				}
				return []model.ResultItem{
					txtHi("values", "Letter Values", strings.Join(parts, " ")),
				}
			},
		},
	}
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// indianWords writes a non-negative integer out in the Indian numbering
// system (crore, lakh, thousand). Values beyond nine digits are refused.
func indianWords(v float64) string {
	n := int64(math.Abs(math.Trunc(v)))
	if n == 0 {
		return "Zero only"
	}
	if n > 999999999 {
		return "Limit Exceeded"
	}
	var parts []string
	group := func(val int64, unit string) {
		if val == 0 {
			return
		}
		parts = append(parts, twoDigitWords(val))
		if unit != "" {
			parts = append(parts, unit)
		}
	}
	group(n/10000000, "Crore")
	group((n/100000)%100, "Lakh")
	group((n/1000)%100, "Thousand")
	group((n/100)%10, "Hundred")
	last := n % 100
	if last > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigitWords(last))
	}
	return strings.Join(parts, " ") + " only"
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
