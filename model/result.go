package model

// Result value types. They tell clients how to render the value.
const (
	ResultNumber   = "number"
	ResultCurrency = "currency"
	ResultPercent  = "percent"
	ResultText     = "text"
)

// ResultItem is a single row of a calculation result. Value holds either a
// float64 or a string depending on Type.
type ResultItem struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Value      any      `json:"value"`
	Display    string   `json:"display,omitempty"`
	Type       string   `json:"type"`
	Highlight  bool     `json:"highlight,omitempty"`
	AddonRight string   `json:"addon_right,omitempty"`
	Steps      []string `json:"steps,omitempty"`
}

// ScheduleRow is one row of an amortization schedule.
type ScheduleRow struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// CalculationResult is the full response of a calculate call: the rendered
// result rows plus chart guidance and an optional schedule.
type CalculationResult struct {
	Slug      string        `json:"slug"`
	Items     []ResultItem  `json:"items"`
	ChartType string        `json:"chart_type"`
	Chartable []ResultItem  `json:"chartable,omitempty"`
	Schedule  []ScheduleRow `json:"schedule,omitempty"`
}
