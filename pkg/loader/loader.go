// Package loader reads FSM description documents (YAML or JSON) into domain values.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// document mirrors the on-disk keys before transitions are parsed.
type document struct {
	Filename    string   `mapstructure:"filename"`
	StartState  any      `mapstructure:"startstate"`
	States      []string `mapstructure:"states"`
	FinalStates []string `mapstructure:"finalstates"`
	Transitions []string `mapstructure:"transitions"`
	Edges       []string `mapstructure:"edges"`
}

// legacyStart is the older mapping form of the start state: {state: q0, isfinal: true}.
// The isfinal flag is ignored; accepting shape always follows finalstates.
type legacyStart struct {
	State   string `mapstructure:"state"`
	IsFinal any    `mapstructure:"isfinal"`
}

var requiredKeys = []string{
	domain.KeyFilename,
	domain.KeyStartState,
	domain.KeyStates,
	domain.KeyFinalStates,
	domain.KeyTransitions,
}

// LoadFile reads and parses the description at path.
func LoadFile(path string) (domain.FSMDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FSMDescription{}, fmt.Errorf("failed to read FSM description: %w", err)
	}
	return Parse(data, filepath.Base(path))
}

// Load reads a description from r. name identifies the source in error messages.
func Load(r io.Reader, name string) (domain.FSMDescription, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.FSMDescription{}, fmt.Errorf("failed to read FSM description: %w", err)
	}
	return Parse(data, name)
}

// Parse decodes a YAML (or JSON) document into an FSMDescription.
func Parse(data []byte, name string) (domain.FSMDescription, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Reason: "not a valid YAML mapping", Err: err}
	}

	raw := map[string]any{}
	if root.Kind != 0 {
		m, ok := literal(&root).(map[string]any)
		if !ok {
			return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Reason: "not a valid YAML mapping"}
		}
		raw = m
	}

	// Older files called the transition list "edges".
	if _, ok := raw[domain.KeyTransitions]; !ok {
		if edges, ok := raw[domain.KeyEdges]; ok {
			raw[domain.KeyTransitions] = edges
		}
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Field: key, Reason: "required key is missing"}
		}
	}

	var doc document
	if err := decode(raw, &doc); err != nil {
		return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Reason: "unexpected value type", Err: err}
	}

	start, err := startState(doc.StartState)
	if err != nil {
		return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Field: domain.KeyStartState, Reason: err.Error()}
	}
	if doc.Filename == "" {
		return domain.FSMDescription{}, &domain.MalformedInputError{Source: name, Field: domain.KeyFilename, Reason: "must not be empty"}
	}

	transitions, err := domain.ParseTransitions(doc.Transitions)
	if err != nil {
		return domain.FSMDescription{}, err
	}

	return domain.FSMDescription{
		Filename:    doc.Filename,
		StartState:  start,
		States:      doc.States,
		FinalStates: doc.FinalStates,
		Transitions: transitions,
	}, nil
}

// literal converts a YAML node to plain values, keeping every non-null scalar as
// its source text. A state written as true, 1.0 or 007 is named exactly that in
// states, finalstates, startstate and transitions alike.
func literal(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return literal(n.Content[0])
	case yaml.AliasNode:
		return literal(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = literal(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, literal(c))
		}
		return items
	default:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	}
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func startState(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", fmt.Errorf("must not be empty")
	case map[string]any:
		var legacy legacyStart
		if err := decode(s, &legacy); err != nil {
			return "", err
		}
		if legacy.State == "" {
			return "", fmt.Errorf("mapping form requires a %q key", "state")
		}
		return legacy.State, nil
	case []any:
		return "", fmt.Errorf("expected a single state, got a list")
	case string:
		if s == "" {
			return "", fmt.Errorf("must not be empty")
		}
		return s, nil
	default:
		return "", fmt.Errorf("unexpected value %v", s)
	}
}
