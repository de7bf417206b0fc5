package progress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Application is a loan application and the stages it moves through.
type Application struct {
	ID        string  `json:"id" yaml:"id"`
	Applicant string  `json:"applicant,omitempty" yaml:"applicant,omitempty"`
	Product   string  `json:"product,omitempty" yaml:"product,omitempty"`
	Stages    []Stage `json:"stages" yaml:"stages"`
}

// ParseApplicationYAML decodes an application document. Statuses are
// normalized but never rejected; see Lint.
func ParseApplicationYAML(data []byte) (Application, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Application{}, fmt.Errorf("progress: application payload is empty")
	}
	var app Application
	if err := yaml.Unmarshal(data, &app); err != nil {
		return Application{}, fmt.Errorf("progress: decode application: %w", err)
	}
	for i := range app.Stages {
		stage := &app.Stages[i]
		stage.ID = strings.TrimSpace(stage.ID)
		if stage.ID == "" {
			return Application{}, fmt.Errorf("progress: stage[%d]: id is required", i)
		}
		stage.Status = ParseStatus(string(stage.Status))
		for j := range stage.SubSteps {
			sub := &stage.SubSteps[j]
			sub.ID = strings.TrimSpace(sub.ID)
			if sub.ID == "" {
				return Application{}, fmt.Errorf("progress: stage %s sub_step[%d]: id is required", stage.ID, j)
			}
		}
	}
	return app, nil
}

// LoadApplicationReader reads an application document from r.
func LoadApplicationReader(r io.Reader) (Application, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Application{}, fmt.Errorf("progress: read application: %w", err)
	}
	return ParseApplicationYAML(content)
}

// LoadApplicationFile loads an application document from path.
func LoadApplicationFile(path string) (Application, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Application{}, fmt.Errorf("progress: read %s: %w", path, err)
	}
	app, parseErr := ParseApplicationYAML(content)
	if parseErr != nil {
		return Application{}, fmt.Errorf("progress: %s: %w", path, parseErr)
	}
	return app, nil
}

// Lint reports data the engine will tolerate but that is probably a mistake:
// invalid statuses and duplicate stage or sub-step ids. It returns nil when the
// list is clean.
func Lint(stages []Stage) error {
	var errs []error
	seen := map[string]int{}
	for i, stage := range stages {
		if !stage.Status.Valid() {
			errs = append(errs, fmt.Errorf("stage %s: invalid status %q", stage.ID, string(stage.Status)))
		}
		if prev, ok := seen[stage.ID]; ok {
			errs = append(errs, fmt.Errorf("stage %s: duplicate id (positions %d and %d)", stage.ID, prev, i))
		} else {
			seen[stage.ID] = i
		}
		subSeen := map[string]struct{}{}
		for _, sub := range stage.SubSteps {
			if _, ok := subSeen[sub.ID]; ok {
				errs = append(errs, fmt.Errorf("stage %s: duplicate sub-step id %s", stage.ID, sub.ID))
				continue
			}
			subSeen[sub.ID] = struct{}{}
		}
	}
	return errors.Join(errs...)
}
