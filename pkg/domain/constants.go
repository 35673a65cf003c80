package domain

// Keys of the FSM description document.
const (
	KeyFilename    = "filename"
	KeyStartState  = "startstate"
	KeyStates      = "states"
	KeyFinalStates = "finalstates"
	KeyTransitions = "transitions"

	// KeyEdges is the name older description files used for the transition list.
	KeyEdges = "edges"
)

// TransitionSeparator splits the fields of a transition triple.
const TransitionSeparator = ";"

// PseudoStartNode is the invisible node the start arrow originates from.
// It carries no meaning and can never be used as a state name.
const PseudoStartNode = "none"

// Output formats understood by the renderer.
const (
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Formats lists every supported output format.
var Formats = []string{FormatPNG, FormatSVG, FormatDOT, FormatMermaid}

// IsImageFormat reports whether format requires the Graphviz layout engine.
func IsImageFormat(format string) bool {
	return format == FormatPNG || format == FormatSVG
}

// IsSupportedFormat reports whether format is one of Formats.
func IsSupportedFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
