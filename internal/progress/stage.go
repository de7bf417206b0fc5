package progress

import (
	"fmt"
	"strings"
)

// SubStep is a checklist item inside a stage.
type SubStep struct {
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label" yaml:"label"`
	Completed bool   `json:"completed,omitempty" yaml:"completed,omitempty"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Stage is one phase of an application's lifecycle.
type Stage struct {
	ID          string `json:"id" yaml:"id"`
	Ordinal     *int   `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status `json:"status" yaml:"status"`
	PreLogin    bool   `json:"pre_login,omitempty" yaml:"pre_login,omitempty"`

	Capabilities `yaml:",inline"`

	SubSteps []SubStep `json:"sub_steps,omitempty" yaml:"sub_steps,omitempty"`
}

// OrdinalLabel returns "STAGE n" for numbered stages and "PRE-LOGIN" for
// pre-login stages. Unnumbered stages get an empty label.
func (s Stage) OrdinalLabel() string {
	if s.PreLogin {
		return "PRE-LOGIN"
	}
	if s.Ordinal == nil {
		return ""
	}
	return fmt.Sprintf("STAGE %d", *s.Ordinal)
}

// Expandable reports whether the stage offers an expand/collapse affordance.
// Work that has not started has no progress detail to show.
func (s Stage) Expandable() bool {
	if len(s.SubSteps) == 0 {
		return false
	}
	return s.Status == StatusInProgress || s.Status == StatusCompleted
}

// DisplayTitle falls back to the id when the title is blank.
func (s Stage) DisplayTitle() string {
	if title := strings.TrimSpace(s.Title); title != "" {
		return title
	}
	return s.ID
}

// Ordinal is a convenience for building stages in code.
func Ordinal(n int) *int {
	return &n
}

// Index returns the position of the first stage with the given id.
func Index(stages []Stage, id string) (int, bool) {
	for i := range stages {
		if stages[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// IDSet is a set of stage ids. A nil IDSet means "not supplied".
type IDSet map[string]struct{}

// NewIDSet returns a non-nil set holding ids.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership. Safe on a nil set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns a copy that preserves nil-ness.
func (s IDSet) Clone() IDSet {
	if s == nil {
		return nil
	}
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// ToggleSet returns a copy of set with the membership of id flipped. The input
// is never modified; a nil input is treated as empty.
func ToggleSet(set IDSet, id string) IDSet {
	out := set.Clone()
	if out == nil {
		out = IDSet{}
	}
	if _, ok := out[id]; ok {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}
