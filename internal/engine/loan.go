package engine

import (
	"math"

	"github.com/easycalchub/calchub/model"
)

// maxScheduleRows caps how many amortization rows a single response carries.
// Longer tenures are truncated; totals are still computed over the full term.
const maxScheduleRows = 360

// MonthlyPayment returns the fixed monthly installment for a loan of
// principal p at annual rate (percent) over n monthly periods. A zero rate
// degrades to straight-line repayment instead of dividing by zero.
func MonthlyPayment(p, annualRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	r := annualRate / 12 / 100
	if r == 0 {
		return p / float64(n)
	}
	pow := math.Pow(1+r, float64(n))
	return p * r * pow / (pow - 1)
}

// Amortize builds the month-by-month repayment schedule. Rows carry whole
// currency units; the running balance stays unrounded so drift never
// accumulates, and the final row is forced to zero.
func Amortize(p, annualRate float64, n int) []model.ScheduleRow {
	if n <= 0 {
		return nil
	}
	payment := MonthlyPayment(p, annualRate, n)
	r := annualRate / 12 / 100
	rows := n
	if rows > maxScheduleRows {
		rows = maxScheduleRows
	}
	schedule := make([]model.ScheduleRow, 0, rows)
	balance := p
	for period := 1; period <= rows; period++ {
		interest := balance * r
		principal := payment - interest
		balance -= principal
		if period == n {
			balance = 0
		}
		schedule = append(schedule, model.ScheduleRow{
			Period:    period,
			Payment:   math.Round(payment),
			Principal: math.Round(principal),
			Interest:  math.Round(interest),
			Balance:   math.Round(balance),
		})
	}
	return schedule
}

// EMIInputs are the shared input specs of every installment loan calculator.
// Only the default interest rate differs between loan products.
func EMIInputs(defaultRate float64) []model.InputSpec {
	return []model.InputSpec{
		{
			ID: "principal", Label: "Loan Amount", Type: model.InputSlider,
			Default: model.Number(1000000), Min: 10000, Max: 100000000, Step: 5000,
			AddonRight: "₹",
		},
		{
			ID: "rate", Label: "Interest Rate", Type: model.InputSlider,
			Default: model.Number(defaultRate), Min: 1, Max: 30, Step: 0.1,
			AddonRight: "%",
		},
		{
			ID: "tenure", Label: "Loan Tenure", Type: model.InputSlider,
			Default: model.Number(10), Min: 1, Max: 30, Step: 1,
			AddonRight: "Years",
		},
	}
}

// EMICompute is the shared compute function of every installment loan
// calculator: monthly installment, total interest, and total repayment.
func EMICompute(in model.Inputs) []model.ResultItem {
	p := in.Num("principal")
	rate := in.Num("rate")
	n := int(in.Num("tenure") * 12)
	emi := MonthlyPayment(p, rate, n)
	total := emi * float64(n)
	return []model.ResultItem{
		{ID: "emi", Label: "Monthly EMI", Value: math.Round(emi), Type: model.ResultCurrency, Highlight: true},
		{ID: "totalInterest", Label: "Total Interest", Value: math.Round(total - p), Type: model.ResultCurrency},
		{ID: "totalAmount", Label: "Total Amount", Value: math.Round(total), Type: model.ResultCurrency},
	}
}

// EMISchedule is the shared schedule function of installment loan
// calculators.
func EMISchedule(in model.Inputs) []model.ScheduleRow {
	return Amortize(in.Num("principal"), in.Num("rate"), int(in.Num("tenure")*12))
}
