/*
Package fsmd renders finite-state-machine descriptions as diagrams.

A description lists a start state, the states, the accepting (final) states and the
transitions as "from;to;label" triples. FSMD translates it into a directed graph where an
invisible arrow points at the start state and accepting states are double circles, then
hands the graph to Graphviz for layout.

# Labels

State names written with an underscore and a digit are subscripted, so "q_0" is drawn as
"q₀". Only one digit follows each underscore: "q_12" becomes "q₁2". In epsilon mode every
uppercase "E" in a transition label is drawn as "ε", which is convenient for
non-deterministic automata.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/fsmd"
		"github.com/aretw0/fsmd/pkg/loader"
	)

	func main() {
		desc, err := loader.LoadFile("machine.yaml")
		if err != nil {
			log.Fatal(err)
		}

		eng := fsmd.New()
		path, err := eng.Create(context.Background(), fsmd.Request{
			Description: desc,
			Format:      "svg",
			OutputDir:   "out",
			Epsilon:     true,
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("File output to:", path)
	}

Formats "png" and "svg" require the Graphviz dot command; "dot" and "mermaid" are
produced without it.
*/
package fsmd
