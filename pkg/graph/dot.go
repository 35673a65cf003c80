package graph

import (
	"fmt"
	"sort"
	"strings"
)

// dotKeywords must be quoted when used as IDs.
var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true,
}

// EncodeDOT converts g to Graphviz DOT text.
// Nodes and edges are written in insertion order; attributes are sorted by key.
func EncodeDOT(g *Graph) string {
	if g == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", quoteID(g.Name))

	if len(g.Attrs) > 0 {
		fmt.Fprintf(&b, "  graph [%s]\n", formatAttrs(g.Attrs))
	}
	if len(g.NodeAttrs) > 0 {
		fmt.Fprintf(&b, "  node [%s]\n", formatAttrs(g.NodeAttrs))
	}
	if len(g.EdgeAttrs) > 0 {
		fmt.Fprintf(&b, "  edge [%s]\n", formatAttrs(g.EdgeAttrs))
	}

	for _, n := range g.Nodes {
		attrs := n.Attrs()
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %s\n", quoteID(n.ID))
			continue
		}
		fmt.Fprintf(&b, "  %s [%s]\n", quoteID(n.ID), formatAttrs(attrs))
	}

	for _, e := range g.Edges {
		attrs := e.Attrs()
		if len(attrs) == 0 {
			fmt.Fprintf(&b, "  %s -> %s\n", quoteID(e.From), quoteID(e.To))
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s [%s]\n", quoteID(e.From), quoteID(e.To), formatAttrs(attrs))
	}

	b.WriteString("}\n")
	return b.String()
}

// formatAttrs renders key=value pairs with sorted keys.
func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+quoteID(attrs[k]))
	}
	return strings.Join(parts, ", ")
}

// quoteID returns val bare when it is a plain DOT identifier or numeral,
// and as an escaped double-quoted string otherwise.
func quoteID(val string) string {
	if isBareID(val) {
		return val
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range val {
		switch ch {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(ch)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareID(val string) bool {
	if val == "" || dotKeywords[strings.ToLower(val)] {
		return false
	}
	if isNumeral(val) {
		return true
	}
	for i, ch := range val {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isNumeral(val string) bool {
	start := 0
	if val[0] == '-' {
		if len(val) == 1 {
			return false
		}
		start = 1
	}
	hasDot, hasDigit := false, false
	for i := start; i < len(val); i++ {
		switch ch := val[i]; {
		case ch == '.':
			if hasDot {
				return false
			}
			hasDot = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasDigit
}
