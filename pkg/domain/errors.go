package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when an output format is not one of Formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// MalformedInputError reports a description document that is missing required keys
// or cannot be parsed.
type MalformedInputError struct {
	Source string // File name or other origin of the document
	Field  string // Offending key, empty when the whole document is unreadable
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed FSM description"
	if e.Source != "" {
		msg += fmt.Sprintf(" %q", e.Source)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// MalformedTransitionError reports a transition entry that does not split into
// exactly three fields.
type MalformedTransitionError struct {
	Raw    string
	Index  int
	Fields int
}

func (e *MalformedTransitionError) Error() string {
	return fmt.Sprintf("transition %d %q: expected 3 %q-separated fields (from;to;label), got %d",
		e.Index+1, e.Raw, TransitionSeparator, e.Fields)
}

// RendererUnavailableError reports that the layout engine cannot be invoked.
type RendererUnavailableError struct {
	Binary string
	Err    error
}

func (e *RendererUnavailableError) Error() string {
	return fmt.Sprintf("graphviz %q command could not be found: run 'fsmd install' to install Graphviz or add it to your PATH: %v",
		e.Binary, e.Err)
}

func (e *RendererUnavailableError) Unwrap() error { return e.Err }

// RenderFailureError reports that the layout engine ran but produced no usable output.
type RenderFailureError struct {
	Format string
	Stderr string
	Err    error
}

func (e *RenderFailureError) Error() string {
	msg := fmt.Sprintf("rendering %s failed", e.Format)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *RenderFailureError) Unwrap() error { return e.Err }

// UnknownStateError is returned in strict mode when a state is referenced without
// being declared in the states list.
type UnknownStateError struct {
	State   string
	Context string // e.g. "startstate" or the raw transition text
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("state %q referenced by %s is not declared in %q", e.State, e.Context, KeyStates)
}
