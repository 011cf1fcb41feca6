package engine

import (
	"net/url"
	"testing"

	"github.com/easycalchub/calchub/model"
)

func testDef() *model.CalculatorDefinition {
	return &model.CalculatorDefinition{
		Slug:      "emi-calculator",
		Category:  "Finance",
		Title:     "EMI Calculator",
		ChartType: model.ChartPie,
		Inputs:    EMIInputs(8.5),
		Compute:   EMICompute,
		Schedule:  EMISchedule,
	}
}

func TestCalculate_uses_defaults(t *testing.T) {
	res, envErr := Calculate(testDef(), nil)
	if envErr != nil {
		t.Fatalf("Calculate: %v", envErr)
	}
	if res.Slug != "emi-calculator" {
		t.Errorf("Slug = %q", res.Slug)
	}
	if len(res.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(res.Items))
	}
	if res.Items[0].Value.(float64) != 12399 {
		t.Errorf("default emi = %v, want 12399", res.Items[0].Value)
	}
	if len(res.Schedule) != 120 {
		t.Errorf("schedule rows = %d, want 120", len(res.Schedule))
	}
	if res.ChartType != model.ChartPie {
		t.Errorf("ChartType = %q, want pie", res.ChartType)
	}
}

func TestCalculate_applies_overrides(t *testing.T) {
	res, envErr := Calculate(testDef(), model.Inputs{
		"principal": model.Number(500000),
		"tenure":    model.Number(5),
	})
	if envErr != nil {
		t.Fatalf("Calculate: %v", envErr)
	}
	emi := res.Items[0].Value.(float64)
	if emi != 10258 {
		t.Errorf("emi = %v, want 10258", emi)
	}
}

func TestCalculate_coerces_string_numbers(t *testing.T) {
	res, envErr := Calculate(testDef(), model.Inputs{
		"principal": model.Text("500000"),
	})
	if envErr != nil {
		t.Fatalf("Calculate: %v", envErr)
	}
	if res.Items[0].Value.(float64) == 12399 {
		t.Error("override was not applied")
	}
}

func TestCalculate_rejects_unknown_input(t *testing.T) {
	_, envErr := Calculate(testDef(), model.Inputs{"bogus": model.Number(1)})
	if envErr == nil {
		t.Fatal("expected validation error")
	}
	if envErr.Code != model.ErrValidationError {
		t.Errorf("Code = %q, want VALIDATION_ERROR", envErr.Code)
	}
	if len(envErr.Details) != 1 || envErr.Details[0].Field != "bogus" {
		t.Errorf("Details = %+v", envErr.Details)
	}
}

func TestCalculate_rejects_out_of_range(t *testing.T) {
	_, envErr := Calculate(testDef(), model.Inputs{"rate": model.Number(95)})
	if envErr == nil {
		t.Fatal("expected validation error")
	}
	if envErr.Details[0].Code != "OUT_OF_RANGE" {
		t.Errorf("Details[0].Code = %q", envErr.Details[0].Code)
	}
}

func TestCalculate_collects_all_field_errors(t *testing.T) {
	_, envErr := Calculate(testDef(), model.Inputs{
		"rate":  model.Number(95),
		"bogus": model.Number(1),
	})
	if envErr == nil {
		t.Fatal("expected validation error")
	}
	if len(envErr.Details) != 2 {
		t.Errorf("got %d details, want 2", len(envErr.Details))
	}
}

func TestResolve_accepts_zero_valued_strings(t *testing.T) {
	def := &model.CalculatorDefinition{
		Slug: "test", Category: "Test", Title: "Test",
		Inputs: []model.InputSpec{
			{ID: "rate", Label: "Rate", Type: model.InputNumber, Default: model.Number(5)},
		},
		Compute: func(in model.Inputs) []model.ResultItem { return nil },
	}
	for _, raw := range []string{"0", "0.0", "0.00", "-0", "00", " 0 ", ""} {
		in, fieldErrs := Resolve(def, model.Inputs{"rate": model.Text(raw)})
		if len(fieldErrs) > 0 {
			t.Errorf("Resolve(%q) rejected a numeric string: %+v", raw, fieldErrs)
			continue
		}
		if got := in.Num("rate"); got != 0 {
			t.Errorf("Resolve(%q) = %v, want 0", raw, got)
		}
	}
	if _, fieldErrs := Resolve(def, model.Inputs{"rate": model.Text("zero")}); len(fieldErrs) == 0 {
		t.Error(`Resolve("zero") should report NOT_A_NUMBER`)
	}
}

func TestCalculate_rejects_non_numeric_text(t *testing.T) {
	_, envErr := Calculate(testDef(), model.Inputs{"principal": model.Text("lots")})
	if envErr == nil {
		t.Fatal("expected validation error")
	}
	if envErr.Details[0].Code != "NOT_A_NUMBER" {
		t.Errorf("Details[0].Code = %q", envErr.Details[0].Code)
	}
}

func radioDef() *model.CalculatorDefinition {
	return &model.CalculatorDefinition{
		Slug: "gst-calculator", Category: "Business", Title: "GST Calculator",
		ChartType: model.ChartPie,
		Inputs: []model.InputSpec{
			{ID: "amount", Label: "Amount", Type: model.InputNumber, Default: model.Number(10000), Min: 1, Max: 100000000},
			{ID: "type", Label: "Type", Type: model.InputRadio, Default: model.Text("0"), Options: []model.InputOption{
				{Label: "Exclusive", Value: "0"}, {Label: "Inclusive", Value: "1"},
			}},
		},
		Compute: func(in model.Inputs) []model.ResultItem { return nil },
	}
}

func TestCalculate_radio_options(t *testing.T) {
	if _, envErr := Calculate(radioDef(), model.Inputs{"type": model.Text("1")}); envErr != nil {
		t.Errorf("valid option rejected: %v", envErr)
	}
	// Numeric 0 must coerce to the "0" option.
	if _, envErr := Calculate(radioDef(), model.Inputs{"type": model.Number(0)}); envErr != nil {
		t.Errorf("numeric option rejected: %v", envErr)
	}
	_, envErr := Calculate(radioDef(), model.Inputs{"type": model.Text("2")})
	if envErr == nil || envErr.Details[0].Code != "INVALID_OPTION" {
		t.Errorf("invalid option not rejected: %v", envErr)
	}
}

func TestSession_lifecycle(t *testing.T) {
	s := NewSession(testDef())
	if got := s.Values().Num("principal"); got != 1000000 {
		t.Errorf("default principal = %v", got)
	}
	if fe := s.Set("principal", model.Number(2000000)); fe != nil {
		t.Fatalf("Set: %+v", fe)
	}
	if got := s.Values().Num("principal"); got != 2000000 {
		t.Errorf("principal after Set = %v", got)
	}
	if fe := s.Set("nope", model.Number(1)); fe == nil {
		t.Error("Set on unknown input should fail")
	}
	s.Reset()
	if got := s.Values().Num("principal"); got != 1000000 {
		t.Errorf("principal after Reset = %v", got)
	}
}

func TestSession_visibility(t *testing.T) {
	def := &model.CalculatorDefinition{
		Slug: "marks-to-percentage", Category: "Education", Title: "Marks to Percentage",
		Inputs: []model.InputSpec{
			{ID: "numSubjects", Label: "Number of Subjects", Type: model.InputSlider, Default: model.Number(2), Min: 1, Max: 3, Step: 1},
			{ID: "subject1", Label: "Subject 1", Type: model.InputNumber, Default: model.Number(85), Min: 0, Max: 100},
			{ID: "subject2", Label: "Subject 2", Type: model.InputNumber, Default: model.Number(78), Min: 0, Max: 100,
				VisibleIf: &model.InputCondition{Field: "numSubjects", AtLeast: 2}},
			{ID: "subject3", Label: "Subject 3", Type: model.InputNumber, Default: model.Number(92), Min: 0, Max: 100,
				VisibleIf: &model.InputCondition{Field: "numSubjects", AtLeast: 3}},
		},
		Compute: func(in model.Inputs) []model.ResultItem { return nil },
	}
	s := NewSession(def)
	if got := len(s.Visible()); got != 3 {
		t.Errorf("visible with 2 subjects = %d, want 3", got)
	}
	if fe := s.Set("numSubjects", model.Number(3)); fe != nil {
		t.Fatalf("Set: %+v", fe)
	}
	if got := len(s.Visible()); got != 4 {
		t.Errorf("visible with 3 subjects = %d, want 4", got)
	}
}

func TestQueryCodec_round_trip(t *testing.T) {
	def := testDef()
	in := model.Inputs{
		"principal": model.Number(2500000),
		"rate":      model.Number(8.5), // equals default, must be omitted
		"tenure":    model.Number(15),
	}
	encoded := EncodeQuery(def, in)
	if encoded != "principal=2500000&tenure=15" {
		t.Errorf("EncodeQuery = %q", encoded)
	}
	q, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	back := DecodeQuery(def, q)
	if back.Num("principal") != 2500000 {
		t.Errorf("decoded principal = %v", back.Num("principal"))
	}
	if _, ok := back["rate"]; ok {
		t.Error("rate should not round-trip when left at default")
	}
	if back.Num("tenure") != 15 {
		t.Errorf("decoded tenure = %v", back.Num("tenure"))
	}
}
