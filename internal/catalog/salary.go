package catalog

import (
	"math"

	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/model"
)

func salaryDefinitions(taxes *engine.TaxTable) []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "salary-calculator", Category: "Salary",
			Title:       "Salary Calculator",
			Description: "In-hand monthly salary after PF and professional tax deductions.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("ctc", "Annual CTC", 1000000, 100000, 100000000, 10000, "₹"),
				slider("bonus", "Annual Bonus", 50000, 0, 10000000, 5000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				ctc := in.Num("ctc")
				bonus := in.Num("bonus")
				base := ctc - bonus
				// Basic assumed at 40% of fixed pay, employee PF at 12% of basic.
				pf := base * 0.4 * 0.12
				pt := 2400.0
				monthly := round((base - pf - pt) / 12)
				return []model.ResultItem{
					curHi("monthly", "Monthly In-Hand", monthly),
					cur("deductions", "Annual Deductions", round(pf+pt)),
					cur("pt", "Professional Tax", pt),
				}
			},
		},
		{
			Slug: "take-home-salary-calculator", Category: "Salary",
			Title:       "Take Home Salary Calculator",
			Description: "Quick estimate of monthly take-home from annual CTC.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("ctc", "Annual CTC", 800000, 100000, 100000000, 10000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("monthly", "Monthly Take-Home", round(in.Num("ctc") * 0.92 / 12)),
				}
			},
		},
		{
			Slug: "income-tax-calculator", Category: "Salary",
			Title:       "Income Tax Calculator",
			Description: "Compare income tax under the new and old regimes.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("income", "Annual Income", 1200000, 100000, 50000000, 10000, "₹"),
				slider("deductions", "Deductions (80C etc.)", 150000, 0, 500000, 5000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				income := in.Num("income")
				deductions := in.Num("deductions")
				var newTax, oldTax float64
				if r, ok := taxes.Regime("india-new"); ok {
					newTax = round(r.Tax(income, deductions).TotalTax)
				}
				if r, ok := taxes.Regime("india-old"); ok {
					oldTax = round(r.Tax(income, deductions).TotalTax)
				}
				items := []model.ResultItem{
					cur("newTax", "Tax (New Regime)", newTax),
					cur("oldTax", "Tax (Old Regime)", oldTax),
				}
				// Highlight the cheaper regime; ties go to the new one.
				if newTax <= oldTax {
					items[0].Highlight = true
					items = append(items, txt("best", "Better Option", "New Regime"))
				} else {
					items[1].Highlight = true
					items = append(items, txt("best", "Better Option", "Old Regime"))
				}
				return items
			},
		},
		{
			Slug: "hra-calculator", Category: "Salary",
			Title:       "HRA Calculator",
			Description: "Tax-exempt portion of your house rent allowance.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("basic", "Annual Basic Salary", 500000, 50000, 50000000, 10000, "₹"),
				slider("hra", "Annual HRA Received", 200000, 0, 20000000, 5000, "₹"),
				slider("rent", "Annual Rent Paid", 180000, 0, 20000000, 5000, "₹"),
				radioField("city", "City Type", "metro",
					opt("Metro", "metro"), opt("Non-Metro", "non-metro")),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				basic := in.Num("basic")
				hra := in.Num("hra")
				rent := in.Num("rent")
				ceiling := 0.50
				if in.Text("city") == "non-metro" {
					ceiling = 0.40
				}
				rentExcess := math.Max(0, rent-0.10*basic)
				exempt := math.Min(hra, math.Min(rentExcess, ceiling*basic))
				return []model.ResultItem{
					curHi("exempt", "HRA Exemption", round(exempt)),
					cur("taxable", "Taxable HRA", round(hra-exempt)),
				}
			},
		},
		{
			Slug: "pf-calculator", Category: "Salary",
			Title:       "PF Calculator",
			Description: "Provident fund corpus from monthly contributions.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("basic", "Monthly Basic Salary", 30000, 1000, 500000, 1000, "₹"),
				slider("years", "Years of Service", 25, 1, 40, 1, "Years"),
				slider("rate", "Interest Rate", 8.15, 1, 15, 0.05, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				// Employee 12% plus employer 3.67% of basic.
				contrib := in.Num("basic") * 0.1567
				n := int(in.Num("years") * 12)
				fv := engine.AnnuityDueFV(contrib, in.Num("rate")/12/100, n)
				return []model.ResultItem{
					curHi("corpus", "PF Corpus", round(fv)),
					cur("contributed", "Total Contribution", round(contrib*float64(n))),
				}
			},
		},
		{
			Slug: "gratuity-calculator", Category: "Salary",
			Title:       "Gratuity Calculator",
			Description: "Gratuity payable after five or more years of service.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("salary", "Last Drawn Monthly Salary", 50000, 1000, 1000000, 1000, "₹"),
				slider("years", "Years of Service", 5, 5, 40, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				g := 15 * in.Num("salary") * in.Num("years") / 26
				return []model.ResultItem{
					curHi("gratuity", "Gratuity Amount", round(g)),
				}
			},
		},
		{
			Slug: "bonus-calculator", Category: "Salary",
			Title:       "Bonus Calculator",
			Description: "Bonus amount as a percentage of annual CTC.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("ctc", "Annual CTC", 800000, 100000, 100000000, 10000, "₹"),
				slider("percent", "Bonus Percentage", 10, 0, 100, 0.5, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("bonus", "Bonus Amount", round(in.Num("ctc")*in.Num("percent")/100)),
				}
			},
		},
		{
			Slug: "professional-tax-calculator", Category: "Salary",
			Title:       "Professional Tax Calculator",
			Description: "Monthly professional tax by salary slab.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("salary", "Monthly Salary", 40000, 1000, 1000000, 1000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				salary := in.Num("salary")
				var pt float64
				switch {
				case salary < 7500:
					pt = 0
				case salary < 10000:
					pt = 175
				default:
					pt = 200
				}
				return []model.ResultItem{
					curHi("pt", "Monthly Professional Tax", pt),
					cur("yearly", "Yearly Professional Tax", pt*12),
				}
			},
		},
		{
			Slug: "overtime-salary-calculator", Category: "Salary",
			Title:       "Overtime Salary Calculator",
			Description: "Extra pay for overtime hours worked.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("hourly", "Hourly Rate", 200, 50, 5000, 10, "₹"),
				slider("hours", "Overtime Hours", 10, 1, 100, 1, "Hrs"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("pay", "Overtime Pay", round(in.Num("hourly")*in.Num("hours"))),
				}
			},
		},
		{
			Slug: "freelance-income-calculator", Category: "Salary",
			Title:       "Freelance Income Calculator",
			Description: "Net freelance income after business expenses.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("revenue", "Monthly Revenue", 100000, 1000, 10000000, 1000, "₹"),
				slider("expenses", "Monthly Expenses", 20000, 0, 10000000, 1000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("net", "Net Income", round(in.Num("revenue")-in.Num("expenses"))),
				}
			},
		},
		{
			Slug: "salary-calculator-after-pf-tax", Category: "Salary",
			Title:       "Salary Calculator After PF & Tax",
			Description: "Monthly salary after typical PF and tax deductions.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("ctc", "Annual CTC", 800000, 100000, 100000000, 10000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("monthly", "Monthly In-Hand", round(in.Num("ctc") * 0.88 / 12)),
				}
			},
		},
		{
			Slug: "take-home-salary-calculator-freshers", Category: "Salary",
			Title:       "Take Home Salary for Freshers",
			Description: "Simple monthly split of a fresher's annual package.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("ctc", "Annual CTC", 500000, 100000, 10000000, 10000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("monthly", "Monthly Salary", round(in.Num("ctc") / 12)),
				}
			},
		},
		{
			Slug: "salary-calculator-government-employees", Category: "Salary",
			Title:       "Salary Calculator for Government Employees",
			Description: "Gross pay from basic salary and dearness allowance.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("basic", "Monthly Basic Pay", 50000, 10000, 1000000, 1000, "₹"),
				slider("da", "Dearness Allowance", 42, 0, 100, 1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				basic := in.Num("basic")
				return []model.ResultItem{
					curHi("gross", "Gross Monthly Pay", round(basic+basic*in.Num("da")/100)),
				}
			},
		},
	}
}
