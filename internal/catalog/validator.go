package catalog

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/easycalchub/calchub/model"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var validInputTypes = map[string]bool{
	model.InputSlider: true,
	model.InputNumber: true,
	model.InputText:   true,
	model.InputRadio:  true,
	model.InputDate:   true,
}

// ValidateAll checks every definition structurally and enforces slug
// uniqueness across the whole catalogue. All findings are joined into a
// single error so a broken build reports everything at once.
func ValidateAll(defs []*model.CalculatorDefinition) error {
	var errs []error
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.Slug] {
			errs = append(errs, fmt.Errorf("%s: duplicate slug", def.Slug))
			continue
		}
		seen[def.Slug] = true
		if err := validateDefinition(def); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateDefinition(def *model.CalculatorDefinition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %s", def.Slug, fmt.Sprintf(format, args...)))
	}

	if !slugPattern.MatchString(def.Slug) {
		fail("slug must be lowercase kebab-case")
	}
	if def.Category == "" {
		fail("category is required")
	}
	if def.Title == "" {
		fail("title is required")
	}
	if def.Compute == nil {
		fail("compute function is required")
	}
	if def.ChartType != model.ChartNone && def.ChartType != model.ChartPie {
		fail("unknown chart type %q", def.ChartType)
	}

	ids := make(map[string]bool, len(def.Inputs))
	for _, in := range def.Inputs {
		if in.ID == "" {
			fail("input with empty id")
			continue
		}
		if ids[in.ID] {
			fail("duplicate input id %q", in.ID)
		}
		ids[in.ID] = true
		if !validInputTypes[in.Type] {
			fail("input %q has unknown type %q", in.ID, in.Type)
		}
		if in.Type == model.InputRadio && len(in.Options) == 0 {
			fail("radio input %q declares no options", in.ID)
		}
		if (in.Type == model.InputSlider || in.Type == model.InputNumber) && (in.Min != 0 || in.Max != 0) {
			if in.Max < in.Min {
				fail("input %q has max below min", in.ID)
			}
			if d := in.Default.Float(); d < in.Min || d > in.Max {
				fail("input %q default %v outside [%v, %v]", in.ID, d, in.Min, in.Max)
			}
		}
	}
	for _, in := range def.Inputs {
		if in.VisibleIf != nil && !ids[in.VisibleIf.Field] {
			fail("input %q visibility references unknown input %q", in.ID, in.VisibleIf.Field)
		}
	}
	return errors.Join(errs...)
}
