package graph

import (
	"fmt"

	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/label"
)

// DefaultFontName is applied to the graph, its nodes and its edges.
const DefaultFontName = "Arial,sans-serif"

// DefaultName names graphs whose description has no filename.
const DefaultName = "fsm"

// Options configures a single build.
type Options struct {
	// Epsilon rewrites "E" to "ε" in transition labels.
	Epsilon bool
	// Strict rejects states that are referenced but not declared in the states list.
	Strict bool
	// FontName overrides DefaultFontName.
	FontName string
}

// Build translates desc into an abstract graph description.
//
// States referenced by transitions but missing from desc.States are declared on first
// use unless opts.Strict is set.
func Build(desc domain.FSMDescription, opts Options) (*Graph, error) {
	if desc.StartState == "" {
		return nil, &domain.MalformedInputError{Source: desc.Filename, Field: domain.KeyStartState, Reason: "must not be empty"}
	}
	if err := checkReserved(desc); err != nil {
		return nil, err
	}

	tr := label.Transformer{Epsilon: opts.Epsilon}

	name := desc.Filename
	if name == "" {
		name = DefaultName
	}
	g := NewGraph(name)
	applyLayout(g, opts.FontName)

	pseudo := g.Declare(domain.PseudoStartNode, ShapePoint)
	pseudo.Invisible = true

	if opts.Strict && !desc.HasState(desc.StartState) {
		return nil, &domain.UnknownStateError{State: desc.StartState, Context: domain.KeyStartState}
	}
	start := g.Declare(tr.State(desc.StartState), shapeFor(desc, desc.StartState))
	g.AddEdge(&Edge{From: pseudo.ID, To: start.ID, Implicit: true})

	for _, s := range desc.States {
		g.Declare(tr.State(s), shapeFor(desc, s))
	}

	for _, t := range desc.Transitions {
		for _, endpoint := range []string{t.From, t.To} {
			id := tr.State(endpoint)
			if g.Node(id) != nil {
				continue
			}
			if opts.Strict {
				return nil, &domain.UnknownStateError{State: endpoint, Context: fmt.Sprintf("transition %q", t.Raw)}
			}
			g.Declare(id, shapeFor(desc, endpoint))
		}
		g.AddEdge(&Edge{
			From:  tr.State(t.From),
			To:    tr.State(t.To),
			Label: tr.Transition(t.Label),
		})
	}

	return g, nil
}

// BuildFromRaw parses raw "from;to;label" transitions and builds the graph.
func BuildFromRaw(desc domain.FSMDescription, rawTransitions []string, opts Options) (*Graph, error) {
	transitions, err := domain.ParseTransitions(rawTransitions)
	if err != nil {
		return nil, err
	}
	desc.Transitions = transitions
	return Build(desc, opts)
}

func applyLayout(g *Graph, font string) {
	if font == "" {
		font = DefaultFontName
	}
	g.Attrs["rankdir"] = "LR"
	g.Attrs["size"] = "ideal"
	g.Attrs["ratio"] = "auto"
	g.Attrs["fontname"] = font
	g.NodeAttrs["fontname"] = font
	g.EdgeAttrs["fontname"] = font
}

func shapeFor(desc domain.FSMDescription, state string) string {
	if desc.IsFinal(state) {
		return ShapeDoubleCircle
	}
	return ShapeCircle
}

// checkReserved rejects descriptions that use the pseudo start node name as a state.
func checkReserved(desc domain.FSMDescription) error {
	reserved := func(field string) error {
		return &domain.MalformedInputError{
			Source: desc.Filename,
			Field:  field,
			Reason: fmt.Sprintf("%q is reserved for the start arrow and cannot name a state", domain.PseudoStartNode),
		}
	}
	if desc.StartState == domain.PseudoStartNode {
		return reserved(domain.KeyStartState)
	}
	for _, s := range desc.States {
		if s == domain.PseudoStartNode {
			return reserved(domain.KeyStates)
		}
	}
	for _, t := range desc.Transitions {
		if t.From == domain.PseudoStartNode || t.To == domain.PseudoStartNode {
			return reserved(domain.KeyTransitions)
		}
	}
	return nil
}
