package graph_test

import (
	"strings"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T, epsilon bool) *graph.Graph {
	t.Helper()
	desc := domain.FSMDescription{
		Filename:    "m",
		StartState:  "q_0",
		States:      []string{"q_0", "q_1"},
		FinalStates: []string{"q_1"},
		Transitions: mustTransitions(t, "q_0;q_1;a", "q_1;q_1;E"),
	}
	g, err := graph.Build(desc, graph.Options{Epsilon: epsilon})
	require.NoError(t, err)
	return g
}

func TestEncodeDOT(t *testing.T) {
	got := graph.EncodeDOT(buildSample(t, true))

	want := `digraph m {
  graph [fontname="Arial,sans-serif", rankdir=LR, ratio=auto, size=ideal]
  node [fontname="Arial,sans-serif"]
  edge [fontname="Arial,sans-serif"]
  "none" [shape=point, style=invis]
  "q₀" [shape=circle]
  "q₁" [shape=doublecircle]
  "none" -> "q₀"
  "q₀" -> "q₁" [label=a]
  "q₁" -> "q₁" [label="ε"]
}
`
	// "none" is a bare identifier, so it is not quoted.
	want = strings.ReplaceAll(want, `"none"`, "none")
	assert.Equal(t, want, got)
}

func TestEncodeDOT_Quoting(t *testing.T) {
	g := graph.NewGraph("my machine")
	g.Declare("node", graph.ShapeCircle)
	g.Declare(`say "hi"`, graph.ShapeCircle)
	g.Declare("1x", graph.ShapeCircle)
	g.Declare("-1.5", graph.ShapeCircle)
	g.AddEdge(&graph.Edge{From: "node", To: "1x", Label: ""})

	got := graph.EncodeDOT(g)

	assert.Contains(t, got, `digraph "my machine" {`)
	assert.Contains(t, got, `  "node" [shape=circle]`)
	assert.Contains(t, got, `  "say \"hi\"" [shape=circle]`)
	assert.Contains(t, got, `  "1x" [shape=circle]`)
	assert.Contains(t, got, `  -1.5 [shape=circle]`)
	assert.Contains(t, got, `  "node" -> "1x" [label=""]`)
}

func TestEncodeDOT_Nil(t *testing.T) {
	assert.Empty(t, graph.EncodeDOT(nil))
}

func TestEncodeDOT_ParsesAsGraphviz(t *testing.T) {
	desc := domain.FSMDescription{
		Filename:    "parity",
		StartState:  "even",
		States:      []string{"even", "odd"},
		FinalStates: []string{"even"},
		Transitions: mustTransitions(t, "even;odd;1", "odd;even;1", "even;even;0", "odd;odd;0"),
	}
	g, err := graph.Build(desc, graph.Options{})
	require.NoError(t, err)

	parsed, err := gographviz.Read([]byte(graph.EncodeDOT(g)))
	require.NoError(t, err)

	assert.True(t, parsed.Directed)
	assert.Equal(t, "parity", parsed.Name)
	assert.Len(t, parsed.Nodes.Nodes, 3)
	require.Len(t, parsed.Edges.Edges, 5)
	assert.Equal(t, "none", parsed.Edges.Edges[0].Src)
	assert.Equal(t, "even", parsed.Edges.Edges[0].Dst)
	assert.Equal(t, "odd", parsed.Edges.Edges[1].Dst)
}
