package catalog

import (
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/model"
)

// internationalDefinitions covers the US and UK localized calculators. Money
// results keep the currency symbol on the item so presentation can format
// them without guessing a locale.
func internationalDefinitions(taxes *engine.TaxTable) []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "mortgage-calculator-usa", Category: "International",
			Title:       "Mortgage Calculator (USA)",
			Description: "Monthly mortgage payment for a US home loan.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("amount", "Loan Amount", 300000, 10000, 2000000, 5000, "$"),
				slider("rate", "Interest Rate (p.a.)", 6.5, 1, 15, 0.1, "%"),
				slider("years", "Loan Term", 30, 1, 40, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("amount")
				n := int(in.Num("years") * 12)
				emi := engine.MonthlyPayment(p, in.Num("rate"), n)
				total := emi * float64(n)
				return []model.ResultItem{
					curHiSym("payment", "Monthly Payment", round(emi), "$"),
					curSym("interest", "Total Interest", round(total-p), "$"),
					curSym("total", "Total Payment", round(total), "$"),
				}
			},
			Schedule: func(in model.Inputs) []model.ScheduleRow {
				return engine.Amortize(in.Num("amount"), in.Num("rate"), int(in.Num("years")*12))
			},
		},
		{
			Slug: "auto-loan-calculator-usa", Category: "International",
			Title:       "Auto Loan Calculator (USA)",
			Description: "Monthly payment for a US car loan.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("amount", "Loan Amount", 35000, 1000, 200000, 500, "$"),
				slider("rate", "Interest Rate (p.a.)", 5, 1, 20, 0.1, "%"),
				slider("months", "Loan Term", 60, 12, 96, 6, "Months"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("amount")
				n := int(in.Num("months"))
				emi := engine.MonthlyPayment(p, in.Num("rate"), n)
				total := emi * float64(n)
				return []model.ResultItem{
					curHiSym("payment", "Monthly Payment", round(emi), "$"),
					curSym("interest", "Total Interest", round(total-p), "$"),
					curSym("total", "Total Payment", round(total), "$"),
				}
			},
		},
		{
			Slug: "salary-calculator-usa", Category: "International",
			Title:       "Salary Calculator (USA)",
			Description: "Take-home pay estimate after a typical US deduction rate.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("gross", "Gross Annual Salary", 80000, 10000, 1000000, 1000, "$"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				net := in.Num("gross") * 0.72
				return []model.ResultItem{
					curHiSym("annual", "Annual Take-Home", round(net), "$"),
					curSym("monthly", "Monthly Take-Home", round(net/12), "$"),
					curSym("biweekly", "Bi-Weekly Paycheck", round(net/26), "$"),
				}
			},
		},
		{
			Slug: "tax-calculator-usa", Category: "International",
			Title:       "Tax Calculator (USA)",
			Description: "Federal income tax estimate for a single filer.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("income", "Annual Income", 100000, 10000, 1000000, 1000, "$"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				regime, ok := taxes.Regime("usa-single")
				if !ok {
					return []model.ResultItem{errItem("Error", "Tax table unavailable")}
				}
				income := in.Num("income")
				res := regime.Tax(income, 0)
				return []model.ResultItem{
					curHiSym("tax", "Estimated Federal Tax", round(res.TotalTax), "$"),
					curSym("net", "Income After Tax", round(income-res.TotalTax), "$"),
					curSym("taxable", "Taxable Income", round(res.TaxableIncome), "$"),
				}
			},
		},
		{
			Slug: "pension-calculator-uk", Category: "International",
			Title:       "Pension Calculator (UK)",
			Description: "Projected pension pot from monthly contributions.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("contribution", "Monthly Contribution", 500, 50, 5000, 50, "£"),
				slider("years", "Years to Retirement", 30, 1, 50, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				c := in.Num("contribution")
				n := int(in.Num("years") * 12)
				fv := engine.OrdinaryAnnuityFV(c, 0.05/12, n)
				invested := c * float64(n)
				return []model.ResultItem{
					curHiSym("pot", "Projected Pension Pot", round(fv), "£"),
					curSym("invested", "Total Contributions", round(invested), "£"),
					curSym("growth", "Investment Growth", round(fv-invested), "£"),
				}
			},
		},
		{
			Slug: "mortgage-calculator-uk", Category: "International",
			Title:       "Mortgage Calculator (UK)",
			Description: "Monthly repayment on a 25-year UK mortgage.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("amount", "Mortgage Amount", 250000, 10000, 2000000, 5000, "£"),
				slider("rate", "Interest Rate (p.a.)", 4.5, 1, 12, 0.1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("amount")
				n := 25 * 12
				emi := engine.MonthlyPayment(p, in.Num("rate"), n)
				total := emi * float64(n)
				return []model.ResultItem{
					curHiSym("payment", "Monthly Repayment", round(emi), "£"),
					curSym("interest", "Total Interest", round(total-p), "£"),
					curSym("total", "Total Repayment", round(total), "£"),
				}
			},
		},
		{
			Slug: "student-loan-calculator-usa", Category: "International",
			Title:       "Student Loan Calculator (USA)",
			Description: "Monthly payment on a 10-year US student loan.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("amount", "Loan Amount", 30000, 1000, 500000, 500, "$"),
				slider("rate", "Interest Rate (p.a.)", 6, 1, 15, 0.1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("amount")
				n := 120
				emi := engine.MonthlyPayment(p, in.Num("rate"), n)
				total := emi * float64(n)
				return []model.ResultItem{
					curHiSym("payment", "Monthly Payment", round(emi), "$"),
					curSym("interest", "Total Interest", round(total-p), "$"),
					curSym("total", "Total Payment", round(total), "$"),
				}
			},
		},
		{
			Slug: "hourly-to-salary-calculator", Category: "International",
			Title:       "Hourly to Salary Calculator",
			Description: "Annual salary from an hourly rate at 2080 hours a year.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("rate", "Hourly Rate", 20, 5, 500, 1, "$"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				annual := in.Num("rate") * 2080
				return []model.ResultItem{
					curHiSym("annual", "Annual Salary", round(annual), "$"),
					curSym("monthly", "Monthly Salary", round(annual/12), "$"),
				}
			},
		},
		{
			Slug: "salary-to-hourly-calculator", Category: "International",
			Title:       "Salary to Hourly Calculator",
			Description: "Equivalent hourly rate from an annual salary.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("salary", "Annual Salary", 50000, 10000, 1000000, 1000, "$"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHiSym("hourly", "Hourly Rate", round2(in.Num("salary")/2080), "$"),
				}
			},
		},
		{
			Slug: "inflation-calculator-usa", Category: "International",
			Title:       "Inflation Calculator (USA)",
			Description: "Future cost of money at 3% average inflation.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("amount", "Amount Today", 100, 1, 1000000, 1, "$"),
				slider("years", "Years Ahead", 10, 1, 50, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				amount := in.Num("amount")
				future := amount * engine.CompoundFV(1, 0.03, int(in.Num("years")))
				return []model.ResultItem{
					curHiSym("future", "Future Equivalent Cost", round2(future), "$"),
					curSym("loss", "Purchasing Power Lost", round2(future-amount), "$"),
				}
			},
		},
	}
}
