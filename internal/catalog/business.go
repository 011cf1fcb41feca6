package catalog

import (
	"math"

	"github.com/easycalchub/calchub/model"
)

func businessDefinitions() []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "gst-calculator", Category: "Business",
			Title:       "GST Calculator",
			Description: "Add GST to a base amount or back it out of an inclusive price.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("amount", "Amount", 10000, 1, 100000000, 100, "₹"),
				slider("rate", "GST Rate", 18, 0, 28, 0.1, "%"),
				radioField("type", "Amount Is", "0",
					opt("Exclusive of GST", "0"), opt("Inclusive of GST", "1")),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				amount := in.Num("amount")
				rate := in.Num("rate")
				var gst, total float64
				if in.Text("type") == "1" {
					gst = amount - amount*100/(100+rate)
					total = amount
				} else {
					gst = amount * rate / 100
					total = amount + gst
				}
				return []model.ResultItem{
					curHi("total", "Total Amount", round2(total)),
					cur("gst", "GST Amount", round2(gst)),
					cur("base", "Base Amount", round2(total-gst)),
				}
			},
		},
		{
			Slug: "profit-margin-calculator", Category: "Business",
			Title:       "Profit Margin Calculator",
			Description: "Margin percentage from cost and sale price.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("cost", "Cost Price", 500, 1, 10000000, 1, "₹"),
				slider("sale", "Sale Price", 800, 1, 10000000, 1, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				cost := in.Num("cost")
				sale := in.Num("sale")
				return []model.ResultItem{
					pctHi("margin", "Profit Margin", round2((sale-cost)/sale*100)),
					cur("profit", "Profit", round2(sale-cost)),
				}
			},
		},
		{
			Slug: "break-even-calculator", Category: "Business",
			Title:       "Break-Even Calculator",
			Description: "Units to sell before fixed costs are covered.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("fixed", "Fixed Costs", 10000, 1, 100000000, 100, "₹"),
				slider("price", "Price per Unit", 100, 1, 1000000, 1, "₹"),
				slider("variable", "Variable Cost per Unit", 50, 0, 1000000, 1, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				price := in.Num("price")
				variable := in.Num("variable")
				if price <= variable {
					return []model.ResultItem{
						errItem("Loss per Unit", "Price never covers the variable cost"),
					}
				}
				units := math.Ceil(in.Num("fixed") / (price - variable))
				return []model.ResultItem{
					numHi("units", "Break-Even Units", units),
					cur("revenue", "Break-Even Revenue", units*price),
				}
			},
		},
		{
			Slug: "roi-calculator", Category: "Business",
			Title:       "ROI Calculator",
			Description: "Return on investment as a percentage.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("invested", "Amount Invested", 100000, 1, 100000000, 100, "₹"),
				slider("returned", "Amount Returned", 150000, 0, 100000000, 100, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				invested := in.Num("invested")
				returned := in.Num("returned")
				return []model.ResultItem{
					pctHi("roi", "ROI", round2((returned-invested)/invested*100)),
					cur("profit", "Profit", round2(returned-invested)),
				}
			},
		},
		{
			Slug: "markup-calculator", Category: "Business",
			Title:       "Markup Calculator",
			Description: "Sale price from cost and markup percentage.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("cost", "Cost Price", 500, 1, 10000000, 1, "₹"),
				slider("markup", "Markup", 40, 0, 500, 1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				cost := in.Num("cost")
				sale := cost * (1 + in.Num("markup")/100)
				return []model.ResultItem{
					curHi("sale", "Sale Price", round2(sale)),
					cur("profit", "Profit", round2(sale-cost)),
				}
			},
		},
		{
			Slug: "discount-calculator", Category: "Business",
			Title:       "Discount Calculator",
			Description: "Final price after a percentage discount.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("price", "Original Price", 1000, 1, 10000000, 1, "₹"),
				slider("discount", "Discount", 20, 0, 100, 1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				price := in.Num("price")
				saved := price * in.Num("discount") / 100
				return []model.ResultItem{
					curHi("final", "Final Price", round2(price-saved)),
					cur("saved", "You Save", round2(saved)),
				}
			},
		},
		{
			Slug: "business-loan-eligibility-calculator", Category: "Business",
			Title:       "Business Loan Eligibility Calculator",
			Description: "Rough loan eligibility from annual profit.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("profit", "Annual Net Profit", 500000, 10000, 100000000, 10000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("eligible", "Eligible Loan Amount", round(in.Num("profit") * 4)),
				}
			},
		},
		{
			Slug: "cash-flow-calculator", Category: "Business",
			Title:       "Cash Flow Calculator",
			Description: "Net cash flow from inflows and outflows.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("inflow", "Cash Inflow", 200000, 0, 100000000, 1000, "₹"),
				slider("outflow", "Cash Outflow", 150000, 0, 100000000, 1000, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("net", "Net Cash Flow", round2(in.Num("inflow")-in.Num("outflow"))),
				}
			},
		},
		{
			Slug: "invoice-total-calculator", Category: "Business",
			Title:       "Invoice Total Calculator",
			Description: "Invoice total with tax applied.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("subtotal", "Subtotal", 10000, 1, 100000000, 100, "₹"),
				slider("tax", "Tax Rate", 18, 0, 50, 0.1, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				subtotal := in.Num("subtotal")
				taxAmt := subtotal * in.Num("tax") / 100
				return []model.ResultItem{
					curHi("total", "Invoice Total", round2(subtotal+taxAmt)),
					cur("taxAmt", "Tax Amount", round2(taxAmt)),
				}
			},
		},
		{
			Slug: "e-commerce-profit-calculator", Category: "Business",
			Title:       "E-commerce Profit Calculator",
			Description: "Per-order profit after product cost and marketplace fees.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("sale", "Sale Price", 1000, 1, 1000000, 1, "₹"),
				slider("cost", "Product Cost", 600, 0, 1000000, 1, "₹"),
				slider("fees", "Marketplace Fees", 150, 0, 1000000, 1, "₹"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				return []model.ResultItem{
					curHi("profit", "Net Profit", round2(in.Num("sale")-in.Num("cost")-in.Num("fees"))),
				}
			},
		},
	}
}
