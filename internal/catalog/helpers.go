package catalog

import (
	"math"
	"strconv"

	"github.com/easycalchub/calchub/model"
)

// Input spec constructors. The catalogue declares several hundred inputs;
// these keep the definition files readable.

func slider(id, label string, def, min, max, step float64, addon string) model.InputSpec {
	return model.InputSpec{
		ID: id, Label: label, Type: model.InputSlider,
		Default: model.Number(def), Min: min, Max: max, Step: step, AddonRight: addon,
	}
}

func numField(id, label string, def, min, max float64) model.InputSpec {
	return model.InputSpec{
		ID: id, Label: label, Type: model.InputNumber,
		Default: model.Number(def), Min: min, Max: max,
	}
}

func textField(id, label, def string) model.InputSpec {
	return model.InputSpec{ID: id, Label: label, Type: model.InputText, Default: model.Text(def)}
}

func dateField(id, label, def string) model.InputSpec {
	return model.InputSpec{ID: id, Label: label, Type: model.InputDate, Default: model.Text(def)}
}

func radioField(id, label, def string, opts ...model.InputOption) model.InputSpec {
	return model.InputSpec{
		ID: id, Label: label, Type: model.InputRadio,
		Default: model.Text(def), Options: opts,
	}
}

func opt(label, value string) model.InputOption {
	return model.InputOption{Label: label, Value: value}
}

// Result item constructors.

func curHi(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultCurrency, Highlight: true}
}

func cur(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultCurrency}
}

// curHiSym and curSym carry an explicit currency symbol for calculators
// that are not priced in the default locale currency.

func curHiSym(id, label string, v float64, sym string) model.ResultItem {
	it := curHi(id, label, v)
	it.AddonRight = sym
	return it
}

func curSym(id, label string, v float64, sym string) model.ResultItem {
	it := cur(id, label, v)
	it.AddonRight = sym
	return it
}

func numHi(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultNumber, Highlight: true}
}

func numRes(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultNumber}
}

func pctHi(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultPercent, Highlight: true}
}

func pct(id, label string, v float64) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultPercent}
}

func txtHi(id, label, v string) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultText, Highlight: true}
}

func txt(id, label, v string) model.ResultItem {
	return model.ResultItem{ID: id, Label: label, Value: v, Type: model.ResultText}
}

// errItem is the single-row "degenerate domain" result: a labelled text
// explanation instead of a NaN value.
func errItem(label, v string) model.ResultItem {
	return model.ResultItem{ID: "err", Label: label, Value: v, Type: model.ResultText, Highlight: true}
}

// Rounding helpers matching the display precision each calculator uses.

func round(v float64) float64  { return math.Round(v) }
func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// trimNum renders a float with the shortest form that round-trips, for use
// inside step-by-step working text.
func trimNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// fixed renders a float with a fixed number of decimals.
func fixed(v float64, d int) string {
	return strconv.FormatFloat(v, 'f', d, 64)
}
