package catalog

import (
	"github.com/easycalchub/calchub/model"
)

func exchangeDefinitions() []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "currency-converter", Category: "Exchange",
			Title:       "Currency Converter",
			Description: "Live fiat and crypto conversion at current market rates.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("amount", "Amount", 100, 1, 1000000, 1, ""),
			},
			// Live conversion goes through the convert operation; this
			// definition only carries the catalogue entry.
			Compute: func(in model.Inputs) []model.ResultItem { return []model.ResultItem{} },
		},
		{
			Slug: "crypto-profit-calculator", Category: "Exchange",
			Title:       "Crypto Profit Calculator",
			Description: "Profit, fees, and ROI on a crypto trade.",
			ChartType:   model.ChartPie,
			Inputs: []model.InputSpec{
				slider("investment", "Investment Amount", 1000, 10, 1000000, 10, "$"),
				numField("buyPrice", "Buy Price", 50000, 0, 0),
				numField("sellPrice", "Sell Price", 65000, 0, 0),
				slider("fee", "Exchange Fee", 0.5, 0, 5, 0.05, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				invest := in.Num("investment")
				buy := in.Num("buyPrice")
				sell := in.Num("sellPrice")
				f := in.Num("fee") / 100
				if invest <= 0 || buy <= 0 || sell <= 0 {
					return []model.ResultItem{errItem("Error", "Prices and investment must be positive")}
				}
				units := invest / buy
				grossSale := units * sell
				totalFees := invest*f + grossSale*f
				profit := grossSale - invest - totalFees
				return []model.ResultItem{
					curHiSym("profit", "Net Profit", round2(profit), "$"),
					pct("roi", "Return on Investment", round2(profit/invest*100)),
					curSym("fees", "Total Fees", round2(totalFees), "$"),
					curSym("total", "Total Value at Sale", round2(grossSale-grossSale*f), "$"),
				}
			},
		},
		{
			Slug: "forex-margin-calculator", Category: "Exchange",
			Title:       "Forex Margin Calculator",
			Description: "Required margin for a leveraged forex position.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("lots", "Lot Size (Standard Lots)", 1, 0.01, 100),
				numField("leverage", "Leverage (1:x)", 100, 1, 1000),
				numField("price", "Current Price", 1.0850, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				lots := in.Num("lots")
				lev := in.Num("leverage")
				price := in.Num("price")
				if lev <= 0 || price <= 0 {
					return []model.ResultItem{errItem("Error", "Leverage and price must be positive")}
				}
				margin := lots * 100000 * price / lev
				return []model.ResultItem{
					curHiSym("margin", "Required Margin", round2(margin), "$"),
					curSym("notional", "Position Size", round2(lots*100000*price), "$"),
				}
			},
		},
		{
			Slug: "pip-value-calculator", Category: "Exchange",
			Title:       "Pip Value Calculator",
			Description: "Value of one pip for a forex position.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("lots", "Lot Size (Standard Lots)", 1, 0.01, 100),
				numField("pair", "Pair Rate", 1.25, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				lots := in.Num("lots")
				return []model.ResultItem{
					curHiSym("pip", "Pip Value", round2(0.0001*100000*lots), "$"),
					curSym("move10", "Value of 10 Pip Move", round2(0.001*100000*lots), "$"),
				}
			},
		},
	}
}
