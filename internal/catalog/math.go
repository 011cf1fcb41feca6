package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/easycalchub/calchub/internal/expr"
	"github.com/easycalchub/calchub/model"
)

func mathDefinitions() []*model.CalculatorDefinition {
	return []*model.CalculatorDefinition{
		{
			Slug: "scientific-calculator", Category: "Math",
			Title:       "Scientific Calculator",
			Description: "Free-form expression evaluation with trig, logs, and factorials.",
			ChartType:   model.ChartNone,
			Inputs:      []model.InputSpec{},
			// Expressions are evaluated through the evaluate operation.
			Compute: func(in model.Inputs) []model.ResultItem { return []model.ResultItem{} },
		},
		{
			Slug: "normal-calculator", Category: "Math",
			Title:       "Normal Calculator",
			Description: "Basic arithmetic expression evaluation.",
			ChartType:   model.ChartNone,
			Inputs:      []model.InputSpec{},
			Compute:     func(in model.Inputs) []model.ResultItem { return []model.ResultItem{} },
		},
		{
			Slug: "quadratic-equation-solver", Category: "Math",
			Title:       "Quadratic Equation Solver",
			Description: "Roots of ax² + bx + c with step-by-step working.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("a", "a (Coefficient of x²)", 1, 0, 0),
				numField("b", "b (Coefficient of x)", -3, 0, 0),
				numField("c", "c (Constant)", 2, 0, 0),
			},
			Compute: quadraticCompute,
		},
		{
			Slug: "right-triangle-calculator", Category: "Math",
			Title:       "Right Triangle Calculator",
			Description: "Hypotenuse, angles, and area from the two legs.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("a", "Side A (Leg)", 3, 0, 0),
				numField("b", "Side B (Leg)", 4, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				a := in.Num("a")
				b := in.Num("b")
				if a <= 0 || b <= 0 {
					return []model.ResultItem{errItem("Error", "Both legs must be positive")}
				}
				c := math.Hypot(a, b)
				angA := math.Atan2(a, b) * 180 / math.Pi
				return []model.ResultItem{
					numHi("c", "Hypotenuse (c)", round4(c)),
					txt("angA", "Angle A", fixed(angA, 2)+"°"),
					txt("angB", "Angle B", fixed(90-angA, 2)+"°"),
					numRes("area", "Area", 0.5*a*b),
				}
			},
		},
		{
			Slug: "derivative-calculator", Category: "Math",
			Title:       "Derivative Calculator",
			Description: "Numerical derivative of f(x) at a point.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				textField("eq", "Function f(x)", "x*x"),
				numField("x", "Point x", 2, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				eq := in.Text("eq")
				x := in.Num("x")
				const h = 0.0001
				f := func(v float64) (float64, error) {
					return expr.EvaluateWith(eq, expr.Radians, map[string]float64{"x": v})
				}
				fxh, err1 := f(x + h)
				fx, err2 := f(x)
				if err1 != nil || err2 != nil {
					return []model.ResultItem{errItem("Error", "Invalid Syntax")}
				}
				slope := (fxh - fx) / h
				return []model.ResultItem{
					numHi("slope", fmt.Sprintf("f'(%s)", trimNum(x)), round4(slope)),
				}
			},
		},
		{
			Slug: "mean-median-mode-calculator", Category: "Math",
			Title:       "Mean, Median, Mode Calculator",
			Description: "Statistical averages for a comma-separated data set.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				textField("data", "Data Set (comma separated)", "1, 2, 2, 3, 4, 7, 9"),
			},
			Compute: statsCompute,
		},
		{
			Slug: "lcm-gcd-calculator", Category: "Math",
			Title:       "LCM & GCD Calculator",
			Description: "Least common multiple and greatest common divisor.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("a", "Number A", 12, 1, 1000000),
				numField("b", "Number B", 18, 1, 1000000),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				a := int64(in.Num("a"))
				b := int64(in.Num("b"))
				if a < 1 || b < 1 {
					return []model.ResultItem{errItem("Error", "Both numbers must be positive integers")}
				}
				g := gcd(a, b)
				return []model.ResultItem{
					numHi("lcm", "LCM (Least Common Multiple)", float64(a/g*b)),
					numRes("gcd", "GCD (Greatest Common Divisor)", float64(g)),
				}
			},
		},
		{
			Slug: "circle-calculator", Category: "Math",
			Title:       "Circle Calculator",
			Description: "Area, circumference, and diameter from the radius.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("r", "Radius (r)", 5, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				r := in.Num("r")
				if r < 0 {
					return []model.ResultItem{errItem("Error", "Radius must not be negative")}
				}
				return []model.ResultItem{
					numHi("area", "Area (A)", round2(math.Pi*r*r)),
					numRes("circ", "Circumference (C)", round2(2*math.Pi*r)),
					numRes("d", "Diameter (d)", 2*r),
				}
			},
		},
		{
			Slug: "matrix-determinant-calculator", Category: "Math",
			Title:       "Matrix Determinant Calculator",
			Description: "Determinant of a 2×2 matrix.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("a", "a (Top Left)", 1, 0, 0),
				numField("b", "b (Top Right)", 2, 0, 0),
				numField("c", "c (Bottom Left)", 3, 0, 0),
				numField("d", "d (Bottom Right)", 4, 0, 0),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				det := in.Num("a")*in.Num("d") - in.Num("b")*in.Num("c")
				return []model.ResultItem{
					numHi("det", "Determinant (|A|)", det),
				}
			},
		},
		{
			Slug: "permutation-combination-calculator", Category: "Math",
			Title:       "Permutation & Combination Calculator",
			Description: "nPr and nCr for selections from a set.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("n", "Total items (n)", 5, 0, 170),
				numField("r", "Selected items (r)", 2, 0, 170),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				n := in.Num("n")
				r := in.Num("r")
				if r > n {
					return []model.ResultItem{errItem("Error", "r cannot be greater than n")}
				}
				nPr := fact(n) / fact(n-r)
				nCr := nPr / fact(r)
				return []model.ResultItem{
					numHi("nCr", "Combinations (nCr)", nCr),
					numRes("nPr", "Permutations (nPr)", nPr),
				}
			},
		},
	}
}

func quadraticCompute(in model.Inputs) []model.ResultItem {
	a := in.Num("a")
	b := in.Num("b")
	c := in.Num("c")
	if a == 0 {
		return []model.ResultItem{errItem("Error", "a must not be zero")}
	}
	d := b*b - 4*a*c
	steps := []string{
		fmt.Sprintf("Identify coefficients: a=%s, b=%s, c=%s", trimNum(a), trimNum(b), trimNum(c)),
		"Calculate Discriminant (Δ) = b² - 4ac",
		fmt.Sprintf("Δ = (%s)² - 4(%s)(%s) = %s", trimNum(b), trimNum(a), trimNum(c), trimNum(d)),
	}
	if d < 0 {
		steps = append(steps, "Since Δ < 0, the equation has no real roots.")
		item := txtHi("roots", "Roots", "Complex Roots")
		item.Steps = steps
		return []model.ResultItem{item}
	}
	sqrtD := math.Sqrt(d)
	x1 := (-b + sqrtD) / (2 * a)
	x2 := (-b - sqrtD) / (2 * a)
	steps = append(steps,
		"Apply Quadratic Formula: x = (-b ± √Δ) / 2a",
		fmt.Sprintf("x = (%s ± √%s) / %s", trimNum(-b), trimNum(d), trimNum(2*a)),
		fmt.Sprintf("x₁ = (%s + %s) / %s = %s", trimNum(-b), fixed(sqrtD, 4), trimNum(2*a), fixed(x1, 4)),
		fmt.Sprintf("x₂ = (%s - %s) / %s = %s", trimNum(-b), fixed(sqrtD, 4), trimNum(2*a), fixed(x2, 4)),
	)
	item := numHi("x1", "Root x₁", round4(x1))
	item.Steps = steps
	return []model.ResultItem{
		item,
		numRes("x2", "Root x₂", round4(x2)),
		numRes("disc", "Discriminant (Δ)", d),
	}
}

func statsCompute(in model.Inputs) []model.ResultItem {
	var arr []float64
	for _, piece := range strings.Split(in.Text("data"), ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(piece), 64)
		if err == nil {
			arr = append(arr, v)
		}
	}
	if len(arr) == 0 {
		return []model.ResultItem{errItem("Error", "Invalid Data")}
	}
	sort.Float64s(arr)

	var sum float64
	for _, v := range arr {
		sum += v
	}
	mean := sum / float64(len(arr))

	mid := len(arr) / 2
	median := arr[mid]
	if len(arr)%2 == 0 {
		median = (arr[mid-1] + arr[mid]) / 2
	}

	counts := make(map[float64]int)
	maxCount := 0
	for _, v := range arr {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
		}
	}
	var modes []float64
	if maxCount > 1 {
		for v, c := range counts {
			if c == maxCount {
				modes = append(modes, v)
			}
		}
		sort.Float64s(modes)
	}
	modeStr := "None"
	if len(modes) > 0 {
		strs := make([]string, len(modes))
		for i, v := range modes {
			strs[i] = trimNum(v)
		}
		modeStr = strings.Join(strs, ", ")
	}

	rng := arr[len(arr)-1] - arr[0]
	sorted := make([]string, len(arr))
	for i, v := range arr {
		sorted[i] = trimNum(v)
	}
	meanItem := numHi("mean", "Mean (Average)", round2(mean))
	meanItem.Steps = []string{
		fmt.Sprintf("Data Set (Sorted): [%s]", strings.Join(sorted, ", ")),
		fmt.Sprintf("Count (n): %d", len(arr)),
		fmt.Sprintf("Sum (Σx): %s", trimNum(sum)),
		fmt.Sprintf("Mean = Σx / n = %s / %d = %s", trimNum(sum), len(arr), fixed(mean, 4)),
		fmt.Sprintf("Median Value: %s", trimNum(median)),
		fmt.Sprintf("Mode: %s (Frequency: %d)", modeStr, maxCount),
		fmt.Sprintf("Range: Max - Min = %s - %s = %s", trimNum(arr[len(arr)-1]), trimNum(arr[0]), trimNum(rng)),
	}
	return []model.ResultItem{
		meanItem,
		numRes("median", "Median", median),
		txt("mode", "Mode", modeStr),
		numRes("range", "Range", rng),
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// fact is the plain float factorial used by nPr/nCr. Callers bound the
// argument so overflow is not reachable.
func fact(n float64) float64 {
	v := 1.0
	for i := 2.0; i <= n; i++ {
		v *= i
	}
	return v
}
