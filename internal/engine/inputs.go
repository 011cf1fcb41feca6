package engine

import (
	"net/url"

	"github.com/easycalchub/calchub/model"
)

// Session tracks the live input state of one opened calculator. It backs
// the restore flow and the shareable query-string form of an input set.
type Session struct {
	def    *model.CalculatorDefinition
	values model.Inputs
}

// NewSession opens a session seeded with the definition's defaults.
func NewSession(def *model.CalculatorDefinition) *Session {
	return &Session{def: def, values: def.DefaultInputs()}
}

// Set updates one input, coercing the value to the control's kind.
func (s *Session) Set(id string, v model.Value) *model.FieldError {
	spec := s.def.Input(id)
	if spec == nil {
		return &model.FieldError{Field: id, Code: codeUnknownInput, Message: "unknown input " + id}
	}
	coerced, fe := coerce(spec, v)
	if fe != nil {
		return fe
	}
	s.values[id] = coerced
	return nil
}

// Reset restores every input to its declared default.
func (s *Session) Reset() {
	s.values = s.def.DefaultInputs()
}

// Values returns a copy of the current input state.
func (s *Session) Values() model.Inputs {
	return s.values.Clone()
}

// Visible returns the input specs currently shown, applying each spec's
// visibility condition against the live values.
func (s *Session) Visible() []model.InputSpec {
	out := make([]model.InputSpec, 0, len(s.def.Inputs))
	for _, spec := range s.def.Inputs {
		if spec.VisibleIf != nil && s.values.Num(spec.VisibleIf.Field) < spec.VisibleIf.AtLeast {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// EncodeQuery renders the inputs that differ from their defaults as URL
// query parameters, in stable key order.
func EncodeQuery(def *model.CalculatorDefinition, in model.Inputs) string {
	q := url.Values{}
	for _, spec := range def.Inputs {
		v, ok := in[spec.ID]
		if !ok || v == spec.Default {
			continue
		}
		q.Set(spec.ID, v.String())
	}
	return q.Encode()
}

// DecodeQuery parses URL query parameters into an input override map.
// Parameters that do not name an input of the definition are ignored.
func DecodeQuery(def *model.CalculatorDefinition, q url.Values) model.Inputs {
	in := make(model.Inputs)
	for _, spec := range def.Inputs {
		raw := q.Get(spec.ID)
		if raw == "" {
			continue
		}
		in[spec.ID] = model.Text(raw)
	}
	return in
}
