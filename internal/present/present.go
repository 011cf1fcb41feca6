// Package present turns raw calculation results into display-ready payloads.
// Numbers are grouped per the request locale, currencies carry a symbol, and
// the chartable subset is derived here so handlers never massage results.
package present

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/easycalchub/calchub/model"
)

// Formatter renders results for a default locale and currency symbol.
// Printers are cached per locale because building one is not cheap.
type Formatter struct {
	defaultTag    language.Tag
	defaultSymbol string

	mu       sync.RWMutex
	printers map[string]*message.Printer
}

// NewFormatter builds a formatter. The symbol is used for currency items
// that do not carry their own.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		defaultTag:    tag,
		defaultSymbol: symbol,
		printers:      make(map[string]*message.Printer),
	}
}

func (f *Formatter) printer(locale string) *message.Printer {
	f.mu.RLock()
	p, ok := f.printers[locale]
	f.mu.RUnlock()
	if ok {
		return p
	}

	tag := f.defaultTag
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	p = message.NewPrinter(tag)

	f.mu.Lock()
	f.printers[locale] = p
	f.mu.Unlock()
	return p
}

// Render fills Display on every item, keeps only the first highlighted item
// highlighted, and derives the chartable subset for pie results. The result
// is mutated in place and returned for chaining.
func (f *Formatter) Render(res *model.CalculationResult, locale string) *model.CalculationResult {
	p := f.printer(locale)

	seenHighlight := false
	for i := range res.Items {
		it := &res.Items[i]
		it.Display = f.display(p, it)
		if it.Highlight {
			if seenHighlight {
				it.Highlight = false
			}
			seenHighlight = true
		}
	}
	res.Chartable = Chartable(res)
	return res
}

func (f *Formatter) display(p *message.Printer, it *model.ResultItem) string {
	switch it.Type {
	case model.ResultCurrency:
		sym := it.AddonRight
		if sym == "" {
			sym = f.defaultSymbol
		}
		return sym + p.Sprint(number.Decimal(numeric(it.Value), number.MaxFractionDigits(2)))
	case model.ResultPercent:
		return p.Sprint(number.Decimal(numeric(it.Value), number.MaxFractionDigits(2))) + "%"
	case model.ResultNumber:
		return p.Sprint(number.Decimal(numeric(it.Value), number.MaxFractionDigits(4)))
	default:
		return fmt.Sprint(it.Value)
	}
}

// Chartable selects the slices for a pie rendering: numeric items with a
// positive value. Anything else would draw a zero or negative wedge.
func Chartable(res *model.CalculationResult) []model.ResultItem {
	if res.ChartType != model.ChartPie {
		return nil
	}
	var out []model.ResultItem
	for _, it := range res.Items {
		if v, ok := it.Value.(float64); ok && v > 0 && it.Type != model.ResultText {
			out = append(out, it)
		}
	}
	return out
}

// Primary returns the item a compact view should lead with: the first
// highlighted item, else the first item.
func Primary(res *model.CalculationResult) (model.ResultItem, bool) {
	if len(res.Items) == 0 {
		return model.ResultItem{}, false
	}
	for _, it := range res.Items {
		if it.Highlight {
			return it, true
		}
	}
	return res.Items[0], true
}

func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
