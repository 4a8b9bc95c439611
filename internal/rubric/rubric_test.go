package rubric

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinRubrics(t *testing.T) {
	if diff := cmp.Diff([]string{"pitch-10", "pitch-5"}, Builtin()); diff != "" {
		t.Fatalf("Unexpected builtin rubrics (-want +got):\n%s", diff)
	}

	five := MustLoad("pitch-5")
	expected := []string{
		"Problem Sol-Fit", "Competitor Market", "GTM Strategy", "Innovation",
		"Prototype", "Revenue Model", "Story Telling",
	}
	if diff := cmp.Diff(expected, five.Columns()); diff != "" {
		t.Fatalf("Unexpected pitch-5 columns (-want +got):\n%s", diff)
	}
	if five.Min != 0 || five.Max != 5 || five.Default != 0 {
		t.Fatalf("Unexpected pitch-5 scale: %+v", five)
	}
	if five.MaxTotal() != 35 {
		t.Fatalf("Invalid max total: %d", five.MaxTotal())
	}

	ten := MustLoad("pitch-10")
	if len(ten.Criteria) != 7 || ten.Min != 1 || ten.Max != 10 || ten.Default != 5 {
		t.Fatalf("Unexpected pitch-10 rubric: %+v", ten)
	}
}

func TestUnknownRubric(t *testing.T) {
	if _, err := Load("pitch-3", ""); err == nil {
		t.Fatal("Expected error for unknown rubric")
	}
}

func TestParseValidation(t *testing.T) {
	cases := map[string]string{
		"empty criteria": `
name: broken
min: 0
max: 5
criteria: []
`,
		"inverted scale": `
name: broken
min: 5
max: 1
criteria:
  - column: A
`,
		"default outside scale": `
name: broken
min: 1
max: 10
default: 0
criteria:
  - column: A
`,
		"duplicate column": `
name: broken
min: 0
max: 5
criteria:
  - column: A
  - column: A
`,
		"unknown field": `
name: broken
min: 0
max: 5
weights: [1]
criteria:
  - column: A
`,
	}

	for name, body := range cases {
		if _, err := Parse([]byte(body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestParseFillsTitles(t *testing.T) {
	r, err := Parse([]byte(`
name: custom
min: 1
max: 3
default: 2
criteria:
  - column: Pitch
  - column: Demo
    title: Live Demo
`))
	if err != nil {
		t.Fatal("Failed to parse rubric:", err)
	}
	expected := []Criterion{{Column: "Pitch", Title: "Pitch"}, {Column: "Demo", Title: "Live Demo"}}
	if diff := cmp.Diff(expected, r.Criteria); diff != "" {
		t.Fatalf("Unexpected criteria (-want +got):\n%s", diff)
	}
}
