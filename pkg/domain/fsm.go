package domain

import "strings"

// FSMDescription is the declarative description of a finite-state machine.
type FSMDescription struct {
	// Filename is the base name of the rendered artifact.
	Filename string `json:"filename" yaml:"filename"`

	StartState  string           `json:"startstate" yaml:"startstate"`
	States      []string         `json:"states" yaml:"states"`
	FinalStates []string         `json:"finalstates" yaml:"finalstates"`
	Transitions []TransitionSpec `json:"transitions" yaml:"transitions"`
}

// IsFinal reports whether state is an accepting state.
func (d FSMDescription) IsFinal(state string) bool {
	for _, f := range d.FinalStates {
		if f == state {
			return true
		}
	}
	return false
}

// HasState reports whether state is declared in States.
func (d FSMDescription) HasState(state string) bool {
	for _, s := range d.States {
		if s == state {
			return true
		}
	}
	return false
}

// TransitionSpec is one "from;to;label" entry of the transition list.
type TransitionSpec struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`

	// Raw is the source text the transition was parsed from.
	Raw string `json:"-" yaml:"-"`
	// Index is the position of the entry in the transition list.
	Index int `json:"-" yaml:"-"`
}

// String encodes the transition back to its source form.
func (t TransitionSpec) String() string {
	return strings.Join([]string{t.From, t.To, t.Label}, TransitionSeparator)
}

// ParseTransition splits raw into its three fields.
// The label may be empty, but all three fields must be present.
func ParseTransition(raw string, index int) (TransitionSpec, error) {
	parts := strings.Split(raw, TransitionSeparator)
	if len(parts) != 3 {
		return TransitionSpec{}, &MalformedTransitionError{Raw: raw, Index: index, Fields: len(parts)}
	}
	return TransitionSpec{
		From:  parts[0],
		To:    parts[1],
		Label: parts[2],
		Raw:   raw,
		Index: index,
	}, nil
}

// ParseTransitions parses every entry of raws, stopping at the first malformed one.
func ParseTransitions(raws []string) ([]TransitionSpec, error) {
	out := make([]TransitionSpec, 0, len(raws))
	for i, raw := range raws {
		t, err := ParseTransition(raw, i)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
