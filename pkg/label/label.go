// Package label implements the text rules applied to state names and transition labels
// before they reach the graph description.
package label

import (
	"regexp"
	"strings"
)

// Epsilon is the glyph that replaces the reserved character in epsilon mode.
const Epsilon = "ε"

// EpsilonMarker is the reserved character rewritten to Epsilon.
const EpsilonMarker = "E"

var subscriptPattern = regexp.MustCompile(`_([0-9])`)

var subscripts = [10]string{"₀", "₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₉"}

// SubscriptDigits replaces every underscore followed by a single ASCII digit with the
// subscript glyph of that digit.
//
// Only one digit is consumed per underscore, so "q_12" becomes "q₁2". Existing
// subscript glyphs are never matched.
func SubscriptDigits(text string) string {
	return subscriptPattern.ReplaceAllStringFunc(text, func(m string) string {
		return subscripts[m[1]-'0']
	})
}

// SubstituteEpsilon replaces every uppercase E with ε when enabled.
func SubstituteEpsilon(text string, enabled bool) string {
	if !enabled {
		return text
	}
	return strings.ReplaceAll(text, EpsilonMarker, Epsilon)
}

// Transformer applies the label rules of one render.
type Transformer struct {
	Epsilon bool
}

// State transforms a state identifier used as a node name or edge endpoint.
func (Transformer) State(id string) string {
	return SubscriptDigits(id)
}

// Transition transforms the text of a transition label.
func (t Transformer) Transition(text string) string {
	return SubstituteEpsilon(text, t.Epsilon)
}
