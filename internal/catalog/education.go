package catalog

import (
	"fmt"
	"math"

	"github.com/easycalchub/calchub/model"
)

func educationDefinitions() []*model.CalculatorDefinition {
	defs := []*model.CalculatorDefinition{
		{
			Slug: "gpa-calculator", Category: "Education",
			Title:       "GPA Calculator",
			Description: "Grade point average from total grade points and credit hours.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("subjects", "Number of Subjects", 5, 1, 15, 1, ""),
				numField("totalGradePoints", "Total Grade Points", 35, 0, 200),
				numField("totalCredits", "Total Credit Hours", 15, 1, 100),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				credits := math.Max(1, in.Num("totalCredits"))
				gpa := in.Num("totalGradePoints") / credits
				return []model.ResultItem{
					numHi("gpa", "GPA", round2(gpa)),
					pct("percentage", "Percentage", round1(gpa/4*100)),
					txt("grade", "Letter Grade", gpaLetter(gpa)),
				}
			},
		},
		{
			Slug: "cgpa-calculator", Category: "Education",
			Title:       "CGPA Calculator",
			Description: "Cumulative grade point average across semesters.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("semesters", "Number of Semesters", 4, 1, 12, 1, ""),
				numField("totalGradePoints", "Total Grade Points", 140, 0, 1000),
				numField("totalCredits", "Total Credits", 60, 1, 300),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				credits := math.Max(1, in.Num("totalCredits"))
				semesters := math.Max(1, in.Num("semesters"))
				cgpa := in.Num("totalGradePoints") / credits
				return []model.ResultItem{
					numHi("cgpa", "CGPA", round2(cgpa)),
					pct("percentage", "Percentage", round1(cgpa/4*100)),
					numRes("avgCredits", "Avg Credits/Semester", round1(credits/semesters)),
				}
			},
		},
		{
			Slug: "percentage-calculator-education", Category: "Education",
			Title:       "Percentage Calculator",
			Description: "Exam percentage with grade and division.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("marksObtained", "Marks Obtained", 425, 0, 2000),
				numField("totalMarks", "Total Marks", 500, 1, 2000),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				total := math.Max(1, in.Num("totalMarks"))
				obtained := in.Num("marksObtained")
				percentage := obtained / total * 100
				grade := "F"
				switch {
				case percentage >= 90:
					grade = "A+"
				case percentage >= 80:
					grade = "A"
				case percentage >= 70:
					grade = "B+"
				case percentage >= 60:
					grade = "B"
				case percentage >= 50:
					grade = "C"
				case percentage >= 40:
					grade = "D"
				}
				return []model.ResultItem{
					pctHi("percentage", "Percentage", round2(percentage)),
					txt("grade", "Grade", grade),
					numRes("marksLost", "Marks Lost", total-obtained),
				}
			},
		},
		{
			Slug: "grade-calculator", Category: "Education",
			Title:       "Grade Calculator",
			Description: "Letter grade and GPA for a score under two grading scales.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				slider("score", "Score", 85, 0, 100, 1, "%"),
				radioField("gradingSystem", "Grading System", "standard",
					opt("Standard", "standard"), opt("Strict", "strict")),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				score := in.Num("score")
				grade, gpa, status := letterGrade(score, in.Text("gradingSystem") == "strict")
				return []model.ResultItem{
					txtHi("grade", "Letter Grade", grade),
					numRes("gpa", "GPA", gpa),
					txt("status", "Status", status),
				}
			},
		},
		{
			Slug: "attendance-calculator", Category: "Education",
			Title:       "Attendance Calculator",
			Description: "Current attendance and classes needed to hit a target.",
			ChartType:   model.ChartNone,
			Inputs: []model.InputSpec{
				numField("classesAttended", "Classes Attended", 72, 0, 500),
				numField("totalClasses", "Total Classes", 90, 1, 500),
				slider("targetPercentage", "Target Attendance", 75, 50, 100, 5, "%"),
			},
			Compute: func(in model.Inputs) []model.ResultItem {
				attended := in.Num("classesAttended")
				total := math.Max(1, in.Num("totalClasses"))
				target := in.Num("targetPercentage")
				current := attended / total * 100

				var needed, canMiss float64
				if current < target && target < 100 {
					needed = math.Max(0, math.Ceil((target*total-100*attended)/(100-target)))
				}
				if current > target && target > 0 {
					canMiss = math.Max(0, math.Floor((100*attended-target*total)/target))
				}
				return []model.ResultItem{
					pctHi("attendance", "Current Attendance", round2(current)),
					numRes("classesAbsent", "Classes Absent", total-attended),
					numRes("classesNeeded", "Classes Needed", needed),
					numRes("canMiss", "Can Miss", canMiss),
				}
			},
		},
	}

	defs = append(defs, marksToPercentage())
	return defs
}

// marksToPercentage is built separately because its ten subject inputs are
// generated, each visible only while the subject count reaches it.
func marksToPercentage() *model.CalculatorDefinition {
	inputs := []model.InputSpec{
		slider("numSubjects", "Number of Subjects", 5, 1, 10, 1, ""),
	}
	defaults := []float64{85, 78, 92, 88, 82, 75, 80, 85, 90, 88}
	for i := 1; i <= 10; i++ {
		spec := numField(fmt.Sprintf("subject%d", i), fmt.Sprintf("Subject %d", i), defaults[i-1], 0, 100)
		if i > 1 {
			spec.VisibleIf = &model.InputCondition{Field: "numSubjects", AtLeast: float64(i)}
		}
		inputs = append(inputs, spec)
	}
	return &model.CalculatorDefinition{
		Slug: "marks-to-percentage", Category: "Education",
		Title:       "Marks to Percentage Converter",
		Description: "Overall percentage across up to ten subjects.",
		ChartType:   model.ChartNone,
		Inputs:      inputs,
		Compute: func(in model.Inputs) []model.ResultItem {
			n := int(in.Num("numSubjects"))
			if n < 1 {
				n = 1
			}
			if n > 10 {
				n = 10
			}
			var total float64
			for i := 1; i <= n; i++ {
				total += in.Num(fmt.Sprintf("subject%d", i))
			}
			return []model.ResultItem{
				pctHi("percentage", "Overall Percentage", round2(total/float64(n*100)*100)),
				numRes("totalMarks", "Total Marks", total),
				numRes("avgMarks", "Average Marks", round1(total/float64(n))),
			}
		},
	}
}

func gpaLetter(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "A+"
	case gpa >= 3.3:
		return "A"
	case gpa >= 3.0:
		return "B+"
	case gpa >= 2.7:
		return "B"
	case gpa >= 2.3:
		return "C+"
	case gpa >= 2.0:
		return "C"
	case gpa >= 1.7:
		return "D+"
	case gpa >= 1.0:
		return "D"
	default:
		return "F"
	}
}

func letterGrade(score float64, strict bool) (grade string, gpa float64, status string) {
	type band struct {
		min    float64
		grade  string
		gpa    float64
		status string
	}
	var bands []band
	if strict {
		bands = []band{
			{95, "A+", 4.0, "Excellent"},
			{90, "A", 3.7, "Excellent"},
			{85, "B+", 3.3, "Very Good"},
			{80, "B", 3.0, "Good"},
			{75, "C+", 2.7, "Above Average"},
			{70, "C", 2.3, "Average"},
			{65, "D+", 2.0, "Below Average"},
			{60, "D", 1.7, "Pass"},
		}
	} else {
		bands = []band{
			{90, "A+", 4.0, "Excellent"},
			{80, "A", 3.7, "Excellent"},
			{70, "B+", 3.3, "Very Good"},
			{60, "B", 3.0, "Good"},
			{50, "C", 2.3, "Average"},
			{40, "D", 1.7, "Pass"},
		}
	}
	for _, b := range bands {
		if score >= b.min {
			return b.grade, b.gpa, b.status
		}
	}
	return "F", 0, "Fail"
}
