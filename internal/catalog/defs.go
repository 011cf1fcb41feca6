package catalog

import (
	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/model"
)

// Definitions builds the full calculator catalogue. Tax-aware calculators
// take their bracket tables from the supplied table so regimes stay
// configurable without a rebuild.
func Definitions(taxes *engine.TaxTable) []*model.CalculatorDefinition {
	var defs []*model.CalculatorDefinition
	defs = append(defs, financeDefinitions()...)
	defs = append(defs, salaryDefinitions(taxes)...)
	defs = append(defs, businessDefinitions()...)
	defs = append(defs, healthDefinitions()...)
	defs = append(defs, utilityDefinitions()...)
	defs = append(defs, internationalDefinitions(taxes)...)
	defs = append(defs, educationDefinitions()...)
	defs = append(defs, mathDefinitions()...)
	defs = append(defs, exchangeDefinitions()...)
	return defs
}
