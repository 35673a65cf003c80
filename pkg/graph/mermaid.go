package graph

import (
	"fmt"
	"strings"
)

// EncodeMermaid produces a Mermaid flowchart for g.
// It applies the same shape rules as the DOT output:
// - Accepting: (((Double circle)))
// - Other states: ((Circle))
// - Pseudo start: hidden point
func EncodeMermaid(g *Graph) string {
	if g == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	ids := mermaidIDs(g)

	var hidden []string
	for _, n := range g.Nodes {
		id := ids[n.ID]
		if n.Invisible {
			sb.WriteString(fmt.Sprintf("    %s(( ))\n", id))
			hidden = append(hidden, id)
			continue
		}

		opener, closer := "((", "))"
		if n.Shape == ShapeDoubleCircle {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeMermaid(n.ID), closer))
	}

	for _, e := range g.Edges {
		arrow := "-->"
		if !e.Implicit && e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeMermaid(e.Label))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", ids[e.From], arrow, ids[e.To]))
	}

	for _, id := range hidden {
		sb.WriteString(fmt.Sprintf("    style %s fill:none,stroke:none\n", id))
	}

	return sb.String()
}

// mermaidIDs maps node IDs to unique Mermaid-safe identifiers.
func mermaidIDs(g *Graph) map[string]string {
	ids := make(map[string]string, len(g.Nodes))
	used := make(map[string]bool, len(g.Nodes))

	assign := func(id string) {
		if _, ok := ids[id]; ok {
			return
		}
		safe := sanitizeMermaidID(id)
		candidate := safe
		for i := 2; used[candidate]; i++ {
			candidate = fmt.Sprintf("%s_%d", safe, i)
		}
		used[candidate] = true
		ids[id] = candidate
	}

	for _, n := range g.Nodes {
		assign(n.ID)
	}
	for _, e := range g.Edges {
		assign(e.From)
		assign(e.To)
	}
	return ids
}

func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, ch := range id {
		if ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			sb.WriteRune(ch)
			continue
		}
		sb.WriteRune('_')
	}
	safe := sb.String()
	switch {
	case safe == "":
		return "n"
	case strings.EqualFold(safe, "end"):
		// "end" closes a Mermaid block
		return safe + "_"
	}
	return safe
}

// escapeMermaid replaces double quotes, which would end a Mermaid label early.
func escapeMermaid(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
