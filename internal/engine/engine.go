// Package engine turns calculator definitions and raw inputs into results.
// It owns input coercion and validation, the shared financial primitives,
// and the configurable tax regime tables.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/easycalchub/calchub/model"
)

// Field-level validation codes.
const (
	codeUnknownInput  = "UNKNOWN_INPUT"
	codeNotANumber    = "NOT_A_NUMBER"
	codeOutOfRange    = "OUT_OF_RANGE"
	codeInvalidOption = "INVALID_OPTION"
)

// Calculate resolves the request inputs against the definition and runs its
// compute function. Missing inputs take their declared defaults; supplied
// inputs are coerced to the control's kind and range-checked. All field
// errors are collected before anything is computed.
func Calculate(def *model.CalculatorDefinition, overrides model.Inputs) (*model.CalculationResult, *model.ErrorEnvelope) {
	in, fieldErrs := Resolve(def, overrides)
	if len(fieldErrs) > 0 {
		return nil, model.NewValidationError(fieldErrs)
	}

	result := &model.CalculationResult{
		Slug:      def.Slug,
		Items:     def.Compute(in),
		ChartType: def.ChartType,
	}
	if def.Schedule != nil {
		result.Schedule = def.Schedule(in)
	}
	return result, nil
}

// Resolve merges overrides onto the definition's defaults, coercing and
// validating each supplied value. It returns the resolved input map and any
// field errors found.
func Resolve(def *model.CalculatorDefinition, overrides model.Inputs) (model.Inputs, []model.FieldError) {
	in := def.DefaultInputs()
	var fieldErrs []model.FieldError
	for id, raw := range overrides {
		spec := def.Input(id)
		if spec == nil {
			fieldErrs = append(fieldErrs, model.FieldError{
				Field: id, Code: codeUnknownInput,
				Message: fmt.Sprintf("calculator %q has no input %q", def.Slug, id),
			})
			continue
		}
		v, fe := coerce(spec, raw)
		if fe != nil {
			fieldErrs = append(fieldErrs, *fe)
			continue
		}
		in[id] = v
	}
	return in, fieldErrs
}

// coerce converts a raw value to the kind the input control expects and
// enforces the control's constraints.
func coerce(spec *model.InputSpec, raw model.Value) (model.Value, *model.FieldError) {
	switch spec.Type {
	case model.InputSlider, model.InputNumber:
		if raw.Kind == model.KindText {
			s := strings.TrimSpace(raw.Str)
			if s == "" {
				raw = model.Number(0)
			} else {
				parsed, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return model.Value{}, &model.FieldError{
						Field: spec.ID, Code: codeNotANumber,
						Message: fmt.Sprintf("%s must be a number", spec.ID),
					}
				}
				raw = model.Number(parsed)
			}
		}
		if spec.Min != 0 || spec.Max != 0 {
			if raw.Num < spec.Min || raw.Num > spec.Max {
				return model.Value{}, &model.FieldError{
					Field: spec.ID, Code: codeOutOfRange,
					Message: fmt.Sprintf("%s must be between %v and %v", spec.ID, spec.Min, spec.Max),
				}
			}
		}
		return raw, nil

	case model.InputRadio:
		s := raw.String()
		for _, opt := range spec.Options {
			if opt.Value == s {
				return model.Text(s), nil
			}
		}
		return model.Value{}, &model.FieldError{
			Field: spec.ID, Code: codeInvalidOption,
			Message: fmt.Sprintf("%s must be one of the declared options", spec.ID),
		}

	default:
		// Text and date inputs pass through as text.
		return model.Text(raw.String()), nil
	}
}
