package fsmd_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/fsmd"
	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
	"github.com/aretw0/fsmd/pkg/loader"
)

// ExampleEngine_Encode renders a description loaded from YAML as DOT text.
// Text formats need no Graphviz installation.
func ExampleEngine_Encode() {
	desc, err := loader.LoadFile("examples/even_ones.yaml")
	if err != nil {
		log.Fatal(err)
	}

	out, err := fsmd.New().Encode(context.Background(), desc, domain.FormatDOT, graph.Options{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))

	// Output:
	// digraph even_ones {
	//   graph [fontname="Arial,sans-serif", rankdir=LR, ratio=auto, size=ideal]
	//   node [fontname="Arial,sans-serif"]
	//   edge [fontname="Arial,sans-serif"]
	//   none [shape=point, style=invis]
	//   "q₀" [shape=doublecircle]
	//   "q₁" [shape=circle]
	//   none -> "q₀"
	//   "q₀" -> "q₁" [label=1]
	//   "q₁" -> "q₀" [label=1]
	//   "q₀" -> "q₀" [label=0]
	//   "q₁" -> "q₁" [label=0]
	// }
}

// ExampleEngine_Encode_epsilon shows epsilon mode on transition labels.
func ExampleEngine_Encode_epsilon() {
	desc, err := loader.LoadFile("examples/epsilon_nfa.yaml")
	if err != nil {
		log.Fatal(err)
	}

	g, err := fsmd.New().Build(desc, graph.Options{Epsilon: true})
	if err != nil {
		log.Fatal(err)
	}
	for _, e := range g.OutgoingEdges("q₀") {
		fmt.Printf("%s -> %s [%s]\n", e.From, e.To, e.Label)
	}

	// Output:
	// q₀ -> q₁ [ε]
	// q₀ -> q₂ [ε]
}
