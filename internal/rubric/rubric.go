package rubric

import (
	"embed"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed rubrics/*.yml
var builtin embed.FS

var validate = validator.New()

type Criterion struct {
	Column string `yaml:"column" validate:"required"`
	Title  string `yaml:"title"`
}

type Rubric struct {
	Name     string      `yaml:"name" validate:"required"`
	Min      int         `yaml:"min"`
	Max      int         `yaml:"max" validate:"gtfield=Min"`
	Default  int         `yaml:"default"`
	Criteria []Criterion `yaml:"criteria" validate:"required,min=1,dive"`
}

func (r *Rubric) Columns() []string {
	columns := make([]string, len(r.Criteria))
	for i, criterion := range r.Criteria {
		columns[i] = criterion.Column
	}
	return columns
}

func (r *Rubric) InRange(score int) bool {
	return score >= r.Min && score <= r.Max
}

// MaxTotal is the best possible per-submission total.
func (r *Rubric) MaxTotal() int {
	return r.Max * len(r.Criteria)
}

func (r *Rubric) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrapf(err, "Invalid rubric %s", r.Name)
	}
	if !r.InRange(r.Default) {
		return errors.Errorf("Invalid rubric %s: default %d is outside [%d, %d]", r.Name, r.Default, r.Min, r.Max)
	}
	seen := make(map[string]bool, len(r.Criteria))
	for i := range r.Criteria {
		criterion := &r.Criteria[i]
		if seen[criterion.Column] {
			return errors.Errorf("Invalid rubric %s: duplicate column %q", r.Name, criterion.Column)
		}
		seen[criterion.Column] = true
		if criterion.Title == "" {
			criterion.Title = criterion.Column
		}
	}
	return nil
}

func Parse(body []byte) (*Rubric, error) {
	rubric := &Rubric{}
	if err := yaml.UnmarshalStrict(body, rubric); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal rubric")
	}
	if err := rubric.Validate(); err != nil {
		return nil, err
	}
	return rubric, nil
}

// Builtin lists the names of the embedded rubrics.
func Builtin() []string {
	entries, err := builtin.ReadDir("rubrics")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

// Load reads file when given, otherwise the embedded rubric called name.
func Load(name, file string) (*Rubric, error) {
	var body []byte
	var err error
	if file != "" {
		body, err = os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to read rubric file")
		}
	} else {
		body, err = builtin.ReadFile("rubrics/" + name + ".yml")
		if err != nil {
			return nil, errors.Errorf("Unknown rubric %q, known: %s", name, strings.Join(Builtin(), ", "))
		}
	}
	return Parse(body)
}

func MustLoad(name string) *Rubric {
	rubric, err := Load(name, "")
	if err != nil {
		panic(err)
	}
	return rubric
}
