package catalog

import (
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/model"
)

// emiDef builds one of the installment loan calculators. They share inputs,
// compute, and schedule; only the slug, title, and default rate differ.
func emiDef(slug, title string, rate float64, desc string) *model.CalculatorDefinition {
	return &model.CalculatorDefinition{
		Slug:        slug,
		Category:    "Finance",
		Title:       title,
		Description: desc,
		ChartType:   model.ChartPie,
		Inputs:      engine.EMIInputs(rate),
		Compute:     engine.EMICompute,
		Schedule:    engine.EMISchedule,
	}
}

func financeDefinitions() []*model.CalculatorDefinition {
	defs := []*model.CalculatorDefinition{
		emiDef("emi-calculator", "EMI Calculator", 8.5,
			"Calculate your monthly loan installment, total interest, and repayment schedule."),
		emiDef("home-loan-emi-calculator", "Home Loan EMI Calculator", 8.5,
			"Plan your home loan with monthly EMI and total interest breakdown."),
		emiDef("car-loan-emi-calculator", "Car Loan EMI Calculator", 9.5,
			"Estimate monthly payments for a new or used car loan."),
		emiDef("personal-loan-emi-calculator", "Personal Loan EMI Calculator", 11,
			"Work out personal loan installments at typical unsecured rates."),
		emiDef("credit-card-emi-calculator", "Credit Card EMI Calculator", 16,
			"Convert a credit card balance into monthly installments."),
		emiDef("used-bike-emi-calculator", "Used Bike EMI Calculator", 14,
			"Estimate installments for a used two-wheeler loan."),
		emiDef("gold-loan-emi-calculator", "Gold Loan EMI Calculator", 7.5,
			"Calculate EMIs for a loan against gold."),
		emiDef("education-loan-emi-calculator", "Education Loan EMI Calculator", 10,
			"Plan education loan repayments after the moratorium."),
		emiDef("business-loan-emi-calculator", "Business Loan EMI Calculator", 12,
			"Estimate installments for a business term loan."),
		emiDef("emi-calculator-prepayment", "EMI Calculator with Prepayment", 8.5,
			"See how your EMI schedule looks before planning prepayments."),
		emiDef("emi-calculator-gst", "EMI Calculator with GST", 9,
			"Installments for purchases financed with GST included."),
		emiDef("emi-calculator-low-cibil", "EMI Calculator for Low CIBIL", 14,
			"Typical installments at rates offered for lower credit scores."),
		emiDef("emi-calculator-self-employed", "EMI Calculator for Self-Employed", 11,
			"Installments at rates typically offered to the self-employed."),
		emiDef("emi-calculator-nbfc-loans", "EMI Calculator for NBFC Loans", 13,
			"Installments at non-banking finance company rates."),
	}

	defs = append(defs,
		&model.CalculatorDefinition{
			Slug: "loan-interest-calculator", Category: "Finance",
			Title:       "Loan Interest Calculator",
			Description: "Find the total interest cost of a loan over its full term.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("principal", "Loan Amount", 500000, 10000, 100000000, 5000, "₹"),
				slider("rate", "Interest Rate", 10, 1, 30, 0.1, "%"),
				slider("tenure", "Loan Tenure", 5, 1, 30, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("principal")
				n := int(in.Num("tenure") * 12)
				emi := engine.MonthlyPayment(p, in.Num("rate"), n)
				total := emi * float64(n)
				return []model.ResultItem{
					curHi("interest", "Total Interest", round(total-p)),
					cur("emi", "Monthly EMI", round(emi)),
					cur("total", "Total Repayment", round(total)),
				}
			},
			Schedule: engine.EMISchedule,
		},
		&model.CalculatorDefinition{
			Slug: "sip-calculator", Category: "Finance",
			Title:       "SIP Calculator",
			Description: "Project the value of a monthly systematic investment plan.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("monthly", "Monthly Investment", 5000, 500, 1000000, 500, "₹"),
				slider("rate", "Expected Return", 12, 1, 30, 0.1, "%"),
				slider("years", "Time Period", 10, 1, 40, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				monthly := in.Num("monthly")
				n := int(in.Num("years") * 12)
				fv := engine.AnnuityDueFV(monthly, in.Num("rate")/12/100, n)
				invested := monthly * float64(n)
				return []model.ResultItem{
					curHi("totalValue", "Total Value", round(fv)),
					cur("investedAmount", "Invested Amount", round(invested)),
					cur("estReturns", "Est. Returns", round(fv-invested)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "fd-calculator", Category: "Finance",
			Title:       "FD Calculator",
			Description: "Maturity value of a fixed deposit with quarterly compounding.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("principal", "Deposit Amount", 100000, 1000, 100000000, 1000, "₹"),
				slider("rate", "Interest Rate", 6.5, 1, 15, 0.1, "%"),
				slider("years", "Time Period", 5, 1, 25, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("principal")
				fv := engine.CompoundFV(p, in.Num("rate")/4/100, int(in.Num("years")*4))
				return []model.ResultItem{
					curHi("maturity", "Maturity Value", round(fv)),
					cur("invested", "Invested Amount", round(p)),
					cur("interest", "Interest Earned", round(fv-p)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "rd-calculator", Category: "Finance",
			Title:       "RD Calculator",
			Description: "Maturity value of a monthly recurring deposit.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("monthly", "Monthly Deposit", 5000, 500, 1000000, 500, "₹"),
				slider("rate", "Interest Rate", 6.5, 1, 15, 0.1, "%"),
				slider("years", "Time Period", 5, 1, 10, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				monthly := in.Num("monthly")
				n := int(in.Num("years") * 12)
				fv := engine.AnnuityDueFV(monthly, in.Num("rate")/12/100, n)
				deposited := monthly * float64(n)
				return []model.ResultItem{
					curHi("maturity", "Maturity Value", round(fv)),
					cur("totalDeposit", "Total Deposit", round(deposited)),
					cur("interest", "Interest Earned", round(fv-deposited)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "lumpsum-calculator", Category: "Finance",
			Title:       "Lumpsum Calculator",
			Description: "Future value of a one-time investment compounded yearly.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("principal", "Investment Amount", 100000, 1000, 100000000, 1000, "₹"),
				slider("rate", "Expected Return", 12, 1, 30, 0.1, "%"),
				slider("years", "Time Period", 10, 1, 40, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("principal")
				fv := engine.CompoundFV(p, in.Num("rate")/100, int(in.Num("years")))
				return []model.ResultItem{
					curHi("total", "Total Value", round(fv)),
					cur("invested", "Invested Amount", round(p)),
					cur("gain", "Est. Gain", round(fv-p)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "ppf-calculator", Category: "Finance",
			Title:       "PPF Calculator",
			Description: "Public Provident Fund maturity with yearly contributions.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("yearly", "Yearly Deposit", 100000, 500, 150000, 500, "₹"),
				slider("years", "Time Period", 15, 15, 50, 1, "Years"),
				slider("rate", "Interest Rate", 7.1, 4, 12, 0.1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				yearly := in.Num("yearly")
				n := int(in.Num("years"))
				fv := engine.AnnuityDueFV(yearly, in.Num("rate")/100, n)
				invested := yearly * float64(n)
				return []model.ResultItem{
					curHi("maturity", "Maturity Value", round(fv)),
					cur("invested", "Total Invested", round(invested)),
					cur("interest", "Interest Earned", round(fv-invested)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "nps-calculator", Category: "Finance",
			Title:       "NPS Calculator",
			Description: "Projected retirement corpus from monthly NPS contributions.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("monthly", "Monthly Contribution", 5000, 500, 150000, 500, "₹"),
				slider("rate", "Expected Return", 10, 1, 30, 0.1, "%"),
				slider("age", "Current Age", 25, 18, 59, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				monthly := in.Num("monthly")
				n := int((60 - in.Num("age")) * 12)
				fv := engine.AnnuityDueFV(monthly, in.Num("rate")/12/100, n)
				return []model.ResultItem{
					curHi("corpus", "Corpus at 60", round(fv)),
					cur("invested", "Total Invested", round(monthly*float64(n))),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "simple-interest-calculator", Category: "Finance",
			Title:       "Simple Interest Calculator",
			Description: "Interest earned at a flat rate without compounding.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("principal", "Principal Amount", 10000, 100, 10000000, 100, "₹"),
				slider("rate", "Interest Rate", 5, 1, 30, 0.1, "%"),
				slider("years", "Time Period", 2, 1, 30, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("principal")
				si := p * in.Num("rate") * in.Num("years") / 100
				return []model.ResultItem{
					curHi("si", "Simple Interest", round(si)),
					cur("total", "Total Amount", round(p+si)),
				}
			},
		},
		&model.CalculatorDefinition{
			Slug: "compound-interest-calculator", Category: "Finance",
			Title:       "Compound Interest Calculator",
			Description: "Interest earned with yearly compounding.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("principal", "Principal Amount", 10000, 100, 10000000, 100, "₹"),
				slider("rate", "Interest Rate", 10, 1, 30, 0.1, "%"),
				slider("years", "Time Period", 5, 1, 40, 1, "Years"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				p := in.Num("principal")
				fv := engine.CompoundFV(p, in.Num("rate")/100, int(in.Num("years")))
				return []model.ResultItem{
					curHi("ci", "Compound Interest", round(fv-p)),
					cur("total", "Total Amount", round(fv)),
				}
			},
		},
	)
	return defs
}
