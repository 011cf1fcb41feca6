package model

// Input control types understood by clients.
const (
	InputSlider = "slider"
	InputNumber = "number"
	InputText   = "text"
	InputRadio  = "radio"
	InputDate   = "date"
)

// Chart types a calculator can request for its result set.
const (
	ChartNone = "none"
	ChartPie  = "pie"
)

// CalculatorDefinition is one entry in the catalogue. Definitions are built
// at startup and treated as immutable afterwards.
type CalculatorDefinition struct {
	Slug        string      `json:"slug"`
	Category    string      `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	ChartType   string      `json:"chart_type"`
	Inputs      []InputSpec `json:"inputs"`

	// Compute derives the result list from a fully-populated input map.
	// It must be a pure function of its arguments.
	Compute ComputeFunc `json:"-"`

	// Schedule, when set, derives a period-by-period breakdown such as a
	// loan amortization table.
	Schedule ScheduleFunc `json:"-"`
}

// ComputeFunc evaluates a calculator against resolved inputs.
type ComputeFunc func(in Inputs) []ResultItem

// ScheduleFunc derives a period breakdown from resolved inputs.
type ScheduleFunc func(in Inputs) []ScheduleRow

// InputSpec describes a single input control: its identity, rendering hints,
// numeric bounds, and default.
type InputSpec struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	Type       string          `json:"type"`
	Default    Value           `json:"default"`
	Min        float64         `json:"min,omitempty"`
	Max        float64         `json:"max,omitempty"`
	Step       float64         `json:"step,omitempty"`
	AddonRight string          `json:"addon_right,omitempty"`
	HelpText   string          `json:"help_text,omitempty"`
	Options    []InputOption   `json:"options,omitempty"`
	VisibleIf  *InputCondition `json:"visible_if,omitempty"`
}

// InputOption is a label/value pair for radio controls.
type InputOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// InputCondition gates an input's visibility on another input's value.
// The input is shown while the referenced field is at least the threshold.
type InputCondition struct {
	Field   string  `json:"field"`
	AtLeast float64 `json:"at_least"`
}

// Summary is the list-view projection of a definition, without input specs.
type Summary struct {
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Summarize returns the list-view projection of the definition.
func (d *CalculatorDefinition) Summarize() Summary {
	return Summary{
		Slug:        d.Slug,
		Category:    d.Category,
		Title:       d.Title,
		Description: d.Description,
	}
}

// DefaultInputs returns a fresh input map seeded with every input's default.
func (d *CalculatorDefinition) DefaultInputs() Inputs {
	in := make(Inputs, len(d.Inputs))
	for _, spec := range d.Inputs {
		in[spec.ID] = spec.Default
	}
	return in
}

// Input returns the spec for the given input id, or nil when unknown.
func (d *CalculatorDefinition) Input(id string) *InputSpec {
	for i := range d.Inputs {
		if d.Inputs[i].ID == id {
			return &d.Inputs[i]
		}
	}
	return nil
}
