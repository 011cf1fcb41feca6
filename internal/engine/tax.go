package engine

import (
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// TaxBracket is one slab of a progressive tax schedule. Rate applies to
// income above From, up to the next bracket's From.
type TaxBracket struct {
	From float64 `yaml:"from" json:"from"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// TaxRegime is a complete income tax schedule. Regimes are data, loaded
// from configuration, so slab revisions never require a code change.
type TaxRegime struct {
	ID                    string       `yaml:"id"                      json:"id"`
	Name                  string       `yaml:"name"                    json:"name"`
	StandardDeduction     float64      `yaml:"standard_deduction"      json:"standard_deduction"`
	UseDeclaredDeductions bool         `yaml:"use_declared_deductions" json:"use_declared_deductions"`
	RebateThreshold       float64      `yaml:"rebate_threshold"        json:"rebate_threshold"`
	MarginalRelief        bool         `yaml:"marginal_relief"         json:"marginal_relief"`
	PostTaxMultiplier     float64      `yaml:"post_tax_multiplier"     json:"post_tax_multiplier"`
	Brackets              []TaxBracket `yaml:"brackets"                json:"brackets"`
}

// TaxResult breaks a tax computation down for presentation.
type TaxResult struct {
	TaxableIncome float64
	BaseTax       float64
	TotalTax      float64
}

// Tax computes the liability on a gross annual income. Declared deductions
// only count for regimes that allow them. The rebate zeroes tax at or below
// the threshold; marginal relief caps tax just above it so an extra rupee
// of income never costs more than a rupee of tax.
func (r *TaxRegime) Tax(income, declaredDeductions float64) TaxResult {
	deductions := r.StandardDeduction
	if r.UseDeclaredDeductions {
		deductions += declaredDeductions
	}
	taxable := math.Max(0, income-deductions)

	var tax float64
	for i, b := range r.Brackets {
		if taxable <= b.From {
			break
		}
		upper := taxable
		if i+1 < len(r.Brackets) && r.Brackets[i+1].From < taxable {
			upper = r.Brackets[i+1].From
		}
		tax += (upper - b.From) * b.Rate
	}

	if r.RebateThreshold > 0 {
		if taxable <= r.RebateThreshold {
			tax = 0
		} else if r.MarginalRelief {
			excess := taxable - r.RebateThreshold
			if tax > excess {
				tax = excess
			}
		}
	}

	mult := r.PostTaxMultiplier
	if mult == 0 {
		mult = 1
	}
	return TaxResult{
		TaxableIncome: taxable,
		BaseTax:       tax,
		TotalTax:      tax * mult,
	}
}

// TaxTable holds every configured regime, indexed by id.
type TaxTable struct {
	regimes map[string]*TaxRegime
	order   []string
}

type taxTableFile struct {
	Regimes []TaxRegime `yaml:"regimes"`
}

// ParseTaxTable parses and validates a YAML regime table.
func ParseTaxTable(data []byte) (*TaxTable, error) {
	var file taxTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tax table: %w", err)
	}
	if len(file.Regimes) == 0 {
		return nil, fmt.Errorf("tax table declares no regimes")
	}
	t := &TaxTable{regimes: make(map[string]*TaxRegime, len(file.Regimes))}
	for i := range file.Regimes {
		r := &file.Regimes[i]
		if err := validateRegime(r); err != nil {
			return nil, fmt.Errorf("regime %q: %w", r.ID, err)
		}
		if _, dup := t.regimes[r.ID]; dup {
			return nil, fmt.Errorf("duplicate regime id %q", r.ID)
		}
		t.regimes[r.ID] = r
		t.order = append(t.order, r.ID)
	}
	return t, nil
}

// LoadTaxTable reads and parses a regime table from disk.
func LoadTaxTable(path string) (*TaxTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tax table: %w", err)
	}
	return ParseTaxTable(data)
}

// Regime returns the regime with the given id.
func (t *TaxTable) Regime(id string) (*TaxRegime, bool) {
	r, ok := t.regimes[id]
	return r, ok
}

// IDs returns regime ids in declaration order.
func (t *TaxTable) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of configured regimes.
func (t *TaxTable) Len() int {
	return len(t.regimes)
}

func validateRegime(r *TaxRegime) error {
	if r.ID == "" {
		return fmt.Errorf("missing id")
	}
	if len(r.Brackets) == 0 {
		return fmt.Errorf("no brackets")
	}
	if !sort.SliceIsSorted(r.Brackets, func(i, j int) bool {
		return r.Brackets[i].From < r.Brackets[j].From
	}) {
		return fmt.Errorf("brackets must be sorted by lower bound")
	}
	if r.Brackets[0].From != 0 {
		return fmt.Errorf("first bracket must start at 0")
	}
	for _, b := range r.Brackets {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket rate %v out of range [0,1]", b.Rate)
		}
	}
	if r.PostTaxMultiplier < 0 {
		return fmt.Errorf("post_tax_multiplier must not be negative")
	}
	return nil
}
