package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/fsmd/pkg/domain"
	"github.com/aretw0/fsmd/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `filename: m
startstate: q0
states:
  - q0
  - q1
finalstates:
  - q1
transitions:
  - "q0;q1;a"
  - "q1;q1;"
`

func TestParse(t *testing.T) {
	desc, err := Parse([]byte(sample), "m.yaml")
	require.NoError(t, err)

	assert.Equal(t, "m", desc.Filename)
	assert.Equal(t, "q0", desc.StartState)
	assert.Equal(t, []string{"q0", "q1"}, desc.States)
	assert.Equal(t, []string{"q1"}, desc.FinalStates)
	require.Len(t, desc.Transitions, 2)
	assert.Equal(t, domain.TransitionSpec{From: "q0", To: "q1", Label: "a", Raw: "q0;q1;a", Index: 0}, desc.Transitions[0])
	assert.Equal(t, "", desc.Transitions[1].Label)
}

func TestParse_NumericStates(t *testing.T) {
	doc := `filename: numbers
startstate: 0
states: [0, 1, 2]
finalstates: [2]
transitions: ["0;1;a", "1;2;b"]
`
	desc, err := Parse([]byte(doc), "n.yaml")
	require.NoError(t, err)

	assert.Equal(t, "0", desc.StartState)
	assert.Equal(t, []string{"0", "1", "2"}, desc.States)
	assert.Equal(t, []string{"2"}, desc.FinalStates)
}

func TestParse_ScalarIdentifiersKeepSourceText(t *testing.T) {
	doc := `filename: m
startstate: true
states: [true, false, 1.0, 007]
finalstates: [false]
transitions: ['true;false;a', 'false;1.0;b', '1.0;007;c']
`
	desc, err := Parse([]byte(doc), "s.yaml")
	require.NoError(t, err)

	assert.Equal(t, "true", desc.StartState)
	assert.Equal(t, []string{"true", "false", "1.0", "007"}, desc.States)
	assert.Equal(t, []string{"false"}, desc.FinalStates)
	for _, tr := range desc.Transitions {
		assert.True(t, desc.HasState(tr.From), "from %q is declared", tr.From)
		assert.True(t, desc.HasState(tr.To), "to %q is declared", tr.To)
	}

	g, err := graph.Build(desc, graph.Options{Strict: true})
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 5, "pseudo node plus one node per declared state")
	assert.Equal(t, graph.ShapeDoubleCircle, g.Node("false").Shape)
}

func TestParse_JSON(t *testing.T) {
	doc := `{"filename":"j","startstate":"a","states":["a"],"finalstates":[],"transitions":["a;a;x"]}`
	desc, err := Parse([]byte(doc), "j.json")
	require.NoError(t, err)
	assert.Equal(t, "j", desc.Filename)
	assert.Len(t, desc.Transitions, 1)
}

func TestParse_LegacyForm(t *testing.T) {
	doc := `filename: old
startstate:
  state: q0
  isfinal: true
states: [q0, q1]
finalstates: [q1]
edges:
  - "q0;q1;a"
`
	desc, err := Parse([]byte(doc), "old.yaml")
	require.NoError(t, err)

	assert.Equal(t, "q0", desc.StartState)
	require.Len(t, desc.Transitions, 1)
	assert.Equal(t, "q1", desc.Transitions[0].To)
	assert.False(t, desc.IsFinal("q0"), "isfinal does not make the start state accepting")
}

func TestParse_NullLists(t *testing.T) {
	doc := `filename: empty
startstate: q0
states:
finalstates:
transitions:
`
	desc, err := Parse([]byte(doc), "e.yaml")
	require.NoError(t, err)
	assert.Empty(t, desc.States)
	assert.Empty(t, desc.Transitions)
}

func TestParse_MissingKeys(t *testing.T) {
	for _, key := range requiredKeys {
		t.Run(key, func(t *testing.T) {
			var lines []string
			for _, line := range strings.Split(sample, "\n") {
				if strings.HasPrefix(line, key+":") {
					continue
				}
				lines = append(lines, line)
			}
			doc := strings.Join(lines, "\n")
			if key == domain.KeyStates || key == domain.KeyFinalStates || key == domain.KeyTransitions {
				// drop the list items as well so the YAML stays valid
				doc = dropListUnder(sample, key)
			}

			_, err := Parse([]byte(doc), "m.yaml")
			var mie *domain.MalformedInputError
			require.ErrorAs(t, err, &mie)
			assert.Equal(t, key, mie.Field)
			assert.Equal(t, "m.yaml", mie.Source)
		})
	}
}

func dropListUnder(doc, key string) string {
	var out []string
	skipping := false
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, key+":") {
			skipping = true
			continue
		}
		if skipping && strings.HasPrefix(line, "  - ") {
			continue
		}
		skipping = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not yaml", "filename: [unclosed", ""},
		{"not a mapping", "- a\n- b\n", ""},
		{"empty document", "", domain.KeyFilename},
		{"null start", "filename: m\nstartstate:\nstates: []\nfinalstates: []\ntransitions: []\n", domain.KeyStartState},
		{"list start", "filename: m\nstartstate: [a, b]\nstates: []\nfinalstates: []\ntransitions: []\n", domain.KeyStartState},
		{"legacy start without state", "filename: m\nstartstate: {isfinal: true}\nstates: []\nfinalstates: []\ntransitions: []\n", domain.KeyStartState},
		{"empty filename", "filename: \"\"\nstartstate: a\nstates: []\nfinalstates: []\ntransitions: []\n", domain.KeyFilename},
		{"states mapping", "filename: m\nstartstate: a\nstates: {a: 1}\nfinalstates: []\ntransitions: []\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "bad.yaml")
			var mie *domain.MalformedInputError
			require.ErrorAs(t, err, &mie)
			assert.Equal(t, tt.field, mie.Field)
		})
	}
}

func TestParse_MalformedTransition(t *testing.T) {
	doc := strings.Replace(sample, `"q1;q1;"`, `"q1;q1"`, 1)

	_, err := Parse([]byte(doc), "m.yaml")
	var mte *domain.MalformedTransitionError
	require.ErrorAs(t, err, &mte)
	assert.Equal(t, "q1;q1", mte.Raw)
	assert.Equal(t, 1, mte.Index)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "machine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	desc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "m", desc.Filename)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	desc, err := Load(strings.NewReader(sample), "stdin")
	require.NoError(t, err)
	assert.Equal(t, "q0", desc.StartState)
}
