// Package validator reports consistency problems in an FSM description that
// still render, such as unreachable or undeclared states.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmd/pkg/domain"
)

// Issue is one problem found in a description.
type Issue struct {
	State   string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.State, i.Message)
}

// Check crawls the transitions from the start state and lists every problem found.
func Check(desc domain.FSMDescription) []Issue {
	var issues []Issue

	declared := make(map[string]bool, len(desc.States))
	for _, s := range desc.States {
		if declared[s] {
			issues = append(issues, Issue{s, "declared more than once"})
		}
		declared[s] = true
	}

	if !declared[desc.StartState] {
		issues = append(issues, Issue{desc.StartState, "start state is not listed in states"})
	}
	for _, f := range desc.FinalStates {
		if !declared[f] {
			issues = append(issues, Issue{f, "final state is not listed in states"})
		}
	}

	adjacency := make(map[string][]string)
	reported := make(map[string]bool)
	for _, t := range desc.Transitions {
		for _, endpoint := range []string{t.From, t.To} {
			if !declared[endpoint] && !reported[endpoint] {
				reported[endpoint] = true
				issues = append(issues, Issue{endpoint, fmt.Sprintf("used by transition %q but not listed in states", t.Raw)})
			}
		}
		adjacency[t.From] = append(adjacency[t.From], t.To)
	}

	visited := map[string]bool{desc.StartState: true}
	queue := []string{desc.StartState}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, s := range desc.States {
		if !visited[s] {
			issues = append(issues, Issue{s, "unreachable from the start state"})
			visited[s] = true
		}
	}

	return issues
}

// Validate returns an error listing every issue found by Check, or nil.
func Validate(desc domain.FSMDescription) error {
	issues := Check(desc)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return fmt.Errorf("found %d problems:\n- %s", len(issues), strings.Join(lines, "\n- "))
}
