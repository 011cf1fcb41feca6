package catalog

import (
	"math"
	"strings"
	"testing"

	"github.com/easycalchub/calchub/internal/engine"
	"github.com/easycalchub/calchub/model"
)

func calculate(t *testing.T, reg *Registry, slug string, in model.Inputs) *model.CalculationResult {
	t.Helper()
	def, ok := reg.Get(slug)
	if !ok {
		t.Fatalf("calculator %q not in catalogue", slug)
	}
	res, envErr := engine.Calculate(def, in)
	if envErr != nil {
		t.Fatalf("Calculate(%s): %v", slug, envErr)
	}
	return res
}

func item(t *testing.T, res *model.CalculationResult, id string) model.ResultItem {
	t.Helper()
	for _, it := range res.Items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("result %q missing from %s: %+v", id, res.Slug, res.Items)
	return model.ResultItem{}
}

func numValue(t *testing.T, res *model.CalculationResult, id string) float64 {
	t.Helper()
	v, ok := item(t, res, id).Value.(float64)
	if !ok {
		t.Fatalf("result %q is not numeric", id)
	}
	return v
}

func TestGSTCalculator(t *testing.T) {
	reg := testRegistry(t)

	res := calculate(t, reg, "gst-calculator", model.Inputs{
		"amount": model.Number(10000),
		"rate":   model.Number(18),
		"type":   model.Text("0"),
	})
	if got := numValue(t, res, "gst"); got != 1800 {
		t.Errorf("exclusive GST: got %v, want 1800", got)
	}
	if got := numValue(t, res, "total"); got != 11800 {
		t.Errorf("exclusive total: got %v, want 11800", got)
	}

	res = calculate(t, reg, "gst-calculator", model.Inputs{
		"amount": model.Number(11800),
		"rate":   model.Number(18),
		"type":   model.Text("1"),
	})
	if got := numValue(t, res, "gst"); got != 1800 {
		t.Errorf("inclusive GST: got %v, want 1800", got)
	}
	if got := numValue(t, res, "total"); got != 11800 {
		t.Errorf("inclusive total: got %v, want 11800", got)
	}
}

func TestSimpleInterest(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "simple-interest-calculator", model.Inputs{
		"principal": model.Number(10000),
		"rate":      model.Number(5),
		"years":     model.Number(2),
	})
	if got := numValue(t, res, "si"); got != 1000 {
		t.Errorf("interest: got %v, want 1000", got)
	}
	if got := numValue(t, res, "total"); got != 11000 {
		t.Errorf("total: got %v, want 11000", got)
	}
}

func TestQuadraticSolver(t *testing.T) {
	reg := testRegistry(t)

	res := calculate(t, reg, "quadratic-equation-solver", model.Inputs{
		"a": model.Number(1), "b": model.Number(-3), "c": model.Number(2),
	})
	if got := numValue(t, res, "x1"); got != 2 {
		t.Errorf("x1: got %v, want 2", got)
	}
	if got := numValue(t, res, "x2"); got != 1 {
		t.Errorf("x2: got %v, want 1", got)
	}
	x1 := item(t, res, "x1")
	if len(x1.Steps) == 0 {
		t.Error("expected step-by-step working on the highlighted root")
	}

	// Negative discriminant reports complex roots as text.
	res = calculate(t, reg, "quadratic-equation-solver", model.Inputs{
		"a": model.Number(1), "b": model.Number(0), "c": model.Number(4),
	})
	if len(res.Items) != 1 {
		t.Fatalf("complex case should produce one item, got %d", len(res.Items))
	}
	if res.Items[0].Value != "Complex Roots" {
		t.Errorf("got %v, want Complex Roots", res.Items[0].Value)
	}
}

func TestMeanMedianMode(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "mean-median-mode-calculator", model.Inputs{
		"data": model.Text("1, 2, 2, 3, 4, 7, 9"),
	})
	if got := numValue(t, res, "mean"); got != 4 {
		t.Errorf("mean: got %v, want 4", got)
	}
	if got := numValue(t, res, "median"); got != 3 {
		t.Errorf("median: got %v, want 3", got)
	}
	if got := item(t, res, "mode").Value; got != "2" {
		t.Errorf("mode: got %v, want 2", got)
	}
	if got := numValue(t, res, "range"); got != 8 {
		t.Errorf("range: got %v, want 8", got)
	}

	res = calculate(t, reg, "mean-median-mode-calculator", model.Inputs{
		"data": model.Text("1, 2, 3"),
	})
	if got := item(t, res, "mode").Value; got != "None" {
		t.Errorf("mode without repeats: got %v, want None", got)
	}

	res = calculate(t, reg, "mean-median-mode-calculator", model.Inputs{
		"data": model.Text("not numbers"),
	})
	if res.Items[0].Value != "Invalid Data" {
		t.Errorf("garbage data: got %v", res.Items[0].Value)
	}
}

func TestDerivativeCalculator(t *testing.T) {
	reg := testRegistry(t)

	res := calculate(t, reg, "derivative-calculator", model.Inputs{
		"eq": model.Text("x*x"), "x": model.Number(2),
	})
	if got := numValue(t, res, "slope"); math.Abs(got-4) > 0.01 {
		t.Errorf("d/dx x² at 2: got %v, want ~4", got)
	}

	res = calculate(t, reg, "derivative-calculator", model.Inputs{
		"eq": model.Text("x**"), "x": model.Number(2),
	})
	if res.Items[0].Value != "Invalid Syntax" {
		t.Errorf("bad expression: got %v", res.Items[0].Value)
	}
}

func TestIncomeTaxCalculatorPicksCheaperRegime(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "income-tax-calculator", model.Inputs{
		"income":     model.Number(1275000),
		"deductions": model.Number(0),
	})
	var highlighted int
	for _, it := range res.Items {
		if it.Highlight {
			highlighted++
		}
	}
	if highlighted != 1 {
		t.Errorf("exactly one regime should be highlighted, got %d", highlighted)
	}
	best := item(t, res, "best")
	if s, ok := best.Value.(string); !ok || s == "" {
		t.Errorf("better-option row missing, got %v", best.Value)
	}
}

func TestTaxCalculatorUSA(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "tax-calculator-usa", model.Inputs{
		"income": model.Number(100000),
	})
	// Taxable 85400: 47150 at 12% plus 38250 at 22% = 14073.
	if got := numValue(t, res, "tax"); got != 14073 {
		t.Errorf("tax: got %v, want 14073", got)
	}
	if got := item(t, res, "tax").AddonRight; got != "$" {
		t.Errorf("tax symbol: got %q, want $", got)
	}
}

func TestUSMortgageCalculator(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "mortgage-calculator-usa", model.Inputs{
		"amount": model.Number(300000),
		"rate":   model.Number(6.5),
		"years":  model.Number(30),
	})
	if got := numValue(t, res, "payment"); math.Abs(got-1896) > 1 {
		t.Errorf("monthly payment: got %v, want ~1896", got)
	}
	if len(res.Schedule) != 360 {
		t.Fatalf("schedule rows: got %d, want 360", len(res.Schedule))
	}
	if last := res.Schedule[len(res.Schedule)-1]; last.Balance != 0 {
		t.Errorf("final balance: got %v, want 0", last.Balance)
	}
}

func TestUKPensionCalculator(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "pension-calculator-uk", model.Inputs{
		"contribution": model.Number(500),
		"years":        model.Number(30),
	})
	if got := numValue(t, res, "invested"); got != 180000 {
		t.Errorf("total contributions: got %v, want 180000", got)
	}
	if pot := numValue(t, res, "pot"); pot <= 180000 {
		t.Errorf("pension pot %v should exceed the contributions", pot)
	}
}

func TestInflationCalculatorUSA(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "inflation-calculator-usa", model.Inputs{
		"amount": model.Number(100),
		"years":  model.Number(10),
	})
	if got := numValue(t, res, "future"); math.Abs(got-134.39) > 0.01 {
		t.Errorf("future cost: got %v, want ~134.39", got)
	}
}

func TestAttendanceCalculator(t *testing.T) {
	reg := testRegistry(t)

	res := calculate(t, reg, "attendance-calculator", model.Inputs{
		"classesAttended":  model.Number(60),
		"totalClasses":     model.Number(100),
		"targetPercentage": model.Number(75),
	})
	if got := numValue(t, res, "classesNeeded"); got != 60 {
		t.Errorf("classes needed: got %v, want 60", got)
	}

	res = calculate(t, reg, "attendance-calculator", model.Inputs{
		"classesAttended":  model.Number(90),
		"totalClasses":     model.Number(100),
		"targetPercentage": model.Number(75),
	})
	if got := numValue(t, res, "canMiss"); got != 20 {
		t.Errorf("classes that can be missed: got %v, want 20", got)
	}
}

func TestMarksToPercentageSubjectVisibility(t *testing.T) {
	reg := testRegistry(t)
	def, ok := reg.Get("marks-to-percentage")
	if !ok {
		t.Fatal("marks-to-percentage not found")
	}

	sess := engine.NewSession(def)
	if err := sess.Set("numSubjects", model.Number(3)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	visible := sess.Visible()
	var subjects int
	for _, spec := range visible {
		if strings.HasPrefix(spec.ID, "subject") {
			subjects++
		}
	}
	if subjects != 3 {
		t.Errorf("3 subjects selected but %d subject inputs visible", subjects)
	}

	res := calculate(t, reg, "marks-to-percentage", model.Inputs{
		"numSubjects": model.Number(2),
		"subject1":    model.Number(80),
		"subject2":    model.Number(90),
	})
	if got := numValue(t, res, "percentage"); got != 85 {
		t.Errorf("percentage: got %v, want 85", got)
	}
}

func TestCryptoProfitCalculator(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "crypto-profit-calculator", model.Inputs{})
	// Defaults: 1000 at 50000 sold at 65000 with 0.5% fees each way.
	// Units 0.02, gross 1300, fees 5 + 6.5, profit 288.5.
	if got := numValue(t, res, "profit"); math.Abs(got-288.5) > 0.01 {
		t.Errorf("profit: got %v, want 288.5", got)
	}
	if got := numValue(t, res, "roi"); math.Abs(got-28.85) > 0.01 {
		t.Errorf("roi: got %v, want 28.85", got)
	}
}

func TestPermutationCombinationRejectsRGreaterThanN(t *testing.T) {
	reg := testRegistry(t)
	res := calculate(t, reg, "permutation-combination-calculator", model.Inputs{
		"n": model.Number(3), "r": model.Number(5),
	})
	if res.Items[0].ID != "err" {
		t.Errorf("expected error row, got %+v", res.Items[0])
	}

	res = calculate(t, reg, "permutation-combination-calculator", model.Inputs{})
	if got := numValue(t, res, "nPr"); got != 20 {
		t.Errorf("5P2: got %v, want 20", got)
	}
	if got := numValue(t, res, "nCr"); got != 10 {
		t.Errorf("5C2: got %v, want 10", got)
	}
}

func TestNumberToWords(t *testing.T) {
	reg := testRegistry(t)
	cases := []struct {
		n    float64
		want string
	}{
		{0, "Zero only"},
		{150000, "One Lakh Fifty Thousand only"},
		{10000000, "One Crore only"},
	}
	for _, tc := range cases {
		res := calculate(t, reg, "number-to-word-converter", model.Inputs{
			"number": model.Number(tc.n),
		})
		if got := item(t, res, "words").Value; got != tc.want {
			t.Errorf("words(%v): got %q, want %q", tc.n, got, tc.want)
		}
	}
}
