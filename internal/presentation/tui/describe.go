package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/label"
)

// Describe summarizes desc as Markdown: its states and its transition table.
func Describe(desc domain.FSMDescription, epsilon bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", desc.Filename)
	fmt.Fprintf(&sb, "Start state: **%s**\n\n", label.SubscriptDigits(desc.StartState))

	sb.WriteString("## States\n\n")
	sb.WriteString("| State | Accepting |\n|---|---|\n")
	for _, s := range desc.States {
		accepting := ""
		if desc.IsFinal(s) {
			accepting = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", escapeCell(label.SubscriptDigits(s)), accepting)
	}

	sb.WriteString("\n## Transitions\n\n")
	if len(desc.Transitions) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| From | To | Label |\n|---|---|---|\n")
	for _, t := range desc.Transitions {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n",
			escapeCell(label.SubscriptDigits(t.From)),
			escapeCell(label.SubscriptDigits(t.To)),
			escapeCell(label.SubstituteEpsilon(t.Label, epsilon)))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
