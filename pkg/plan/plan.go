// Package plan models the execution plan a host planner hands to skills.
package plan

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Step is one function invocation with its named parameters.
type Step struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step `json:"steps"`
}

// First returns the first step and whether the plan has one.
func (p Plan) First() (Step, bool) {
	if len(p.Steps) == 0 {
		return Step{}, false
	}
	return p.Steps[0], true
}

// ParameterNames returns the step's parameter names in sorted order.
func (s Step) ParameterNames() []string {
	names := make([]string, 0, len(s.Parameters))
	for name := range s.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromToolCall builds a single-step plan from a function name and its JSON
// argument object. Empty arguments yield a step without parameters.
func FromToolCall(name, argsJSON string) (Plan, error) {
	step := Step{Name: name}
	if trimmed := strings.TrimSpace(argsJSON); trimmed != "" && trimmed != "{}" {
		var params map[string]any
		if err := json.Unmarshal([]byte(trimmed), &params); err != nil {
			return Plan{}, fmt.Errorf("parse %s arguments: %w", name, err)
		}
		step.Parameters = params
	}
	return Plan{Steps: []Step{step}}, nil
}
