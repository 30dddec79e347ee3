package fsafile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	automaton "github.com/geange/nfa2dfa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeStateNFA = "{q2}\t{q0}\t{q1}\n" +
	"a\tb\n" +
	"{q0}\n" +
	"{q2}\n" +
	"{q0}, a = {q0}\n" +
	"{q0}, a = {q1}\n" +
	"{q1}, b = {q2}\n"

const threeStateDFA = "EM\t{q0}\t{q1}\t{q2}\t{q0, q1}\t{q0, q2}\t{q1, q2}\t{q0, q1, q2}\n" +
	"a\tb\n" +
	"{q0}\n" +
	"{q2}\n" +
	"{q0}, a = {q0, q1}\n" +
	"{q0}, b = EM\n" +
	"{q0, q1}, a = {q0, q1}\n" +
	"{q0, q1}, b = {q2}\n" +
	"EM, a = EM\n" +
	"EM, b = EM\n" +
	"{q2}, a = EM\n" +
	"{q2}, b = EM\n"

func TestRead(t *testing.T) {
	a, err := Read(strings.NewReader(threeStateNFA + "\n\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"{q0}", "{q1}", "{q2}"}, stateNames(a.States()))
	assert.Equal(t, []string{"a", "b"}, a.Alphabet())
	assert.Equal(t, "{q0}", a.Initial().String())
	assert.Equal(t, []string{"{q2}"}, stateNames(a.AcceptStates()))
	assert.Len(t, a.Transitions(), 3)
	assert.Equal(t, "{q1}, b = {q2}", a.Transitions()[2].String())
	assert.False(t, a.IsDeterministic())
}

func TestReadEpsilon(t *testing.T) {
	in := "{a}\t{b}\n" +
		"x\n" +
		"{a}\n" +
		"{b}\n" +
		"{a} , EPS= {b}\n"
	a, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, a.Transitions(), 1)
	assert.True(t, a.Transitions()[0].IsEpsilon())
}

func TestReadWithoutTransitions(t *testing.T) {
	a, err := Read(strings.NewReader("{q0}\na\n{q0}\n{q0}\n"))
	require.NoError(t, err)
	assert.Empty(t, a.Transitions())

	dfa, err := a.ConvertToDFA()
	require.NoError(t, err)
	assert.Equal(t, []string{"{q0}, a = EM", "EM, a = EM"}, transitionLines(dfa.Transitions()))
	assert.Equal(t, []string{"{q0}"}, stateNames(dfa.AcceptStates()))
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
		line string
	}{
		{"TooFewLines", "{q0}\na\n{q0}\n", ErrTooFewLines, ""},
		{"StateWithoutBraces", "q0\na\n{q0}\n{q0}\n", ErrMalformedState, "line 1"},
		{"EmptyState", "{}\na\n{q0}\n{q0}\n", ErrMalformedState, "line 1"},
		{"BadInitial", "{q0}\na\n{q0\n{q0}\n", ErrMalformedState, "line 3"},
		{"BadAccept", "{q0}\na\n{q0}\nq0}\n", ErrMalformedState, "line 4"},
		{"TransitionWithoutComma", "{q0}\na\n{q0}\n{q0}\n{q0} a = {q0}\n", ErrMalformedTransition, "line 5"},
		{"TransitionEqualsFirst", "{q0}\na\n{q0}\n{q0}\n{q0} = a, {q0}\n", ErrMalformedTransition, "line 5"},
		{"TransitionBadEnd", "{q0}\na\n{q0}\n{q0}\n{q0}, a = q0\n", ErrMalformedState, "line 5"},
		{"ReservedSymbol", "{q0}\na\tEPS\n{q0}\n{q0}\n", automaton.ErrReservedSymbol, "line 2"},
		{"UnknownInitial", "{q0}\na\n{q1}\n{q0}\n", automaton.ErrUnknownInitialState, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			if tt.line != "" {
				assert.Contains(t, err.Error(), tt.line+":")
			}
		})
	}
}

func TestWrite(t *testing.T) {
	nfa, err := Read(strings.NewReader(threeStateNFA))
	require.NoError(t, err)
	dfa, err := nfa.ConvertToDFA()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, dfa))
	assert.Equal(t, threeStateDFA, buf.String())
}

func TestWriteReadNFA(t *testing.T) {
	nfa, err := Read(strings.NewReader(threeStateNFA))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nfa))

	again, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, stateNames(nfa.States()), stateNames(again.States()))
	assert.Equal(t, nfa.Alphabet(), again.Alphabet())
	assert.Equal(t, nfa.Initial().String(), again.Initial().String())
	assert.Equal(t, stateNames(nfa.AcceptStates()), stateNames(again.AcceptStates()))
	assert.Equal(t, len(nfa.Transitions()), len(again.Transitions()))
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.NFA")
	out := filepath.Join(dir, "output.DFA")
	require.NoError(t, os.WriteFile(in, []byte(threeStateNFA), 0o644))

	nfa, err := ReadFile(in)
	require.NoError(t, err)
	dfa, err := nfa.ConvertToDFA()
	require.NoError(t, err)
	require.NoError(t, WriteFile(out, dfa))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, threeStateDFA, string(got))

	_, err = ReadFile(filepath.Join(dir, "missing.NFA"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport(t *testing.T) {
	nfa, err := Read(strings.NewReader(threeStateNFA))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "NFA", nfa))
	want := "=== NFA ===\n" +
		"States: [{q0}, {q1}, {q2}]\n" +
		"Alphabet: [a, b]\n" +
		"Initial State: {q0}\n" +
		"Accept States: [{q2}]\n" +
		"Transitions (3):\n" +
		"{q0}, a = {q0}\n" +
		"{q0}, a = {q1}\n" +
		"{q1}, b = {q2}\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestCompareLabels(t *testing.T) {
	assert.Negative(t, compareLabels("a", "q"))
	// '}' sorts after digits, as it does in the display form
	assert.Negative(t, compareLabels("q0", "q"))
	assert.Zero(t, compareLabels("q0", "q0"))
}

func stateNames(states []*automaton.State) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.String()
	}
	return out
}

func transitionLines(transitions []automaton.Transition) []string {
	out := make([]string, len(transitions))
	for i, t := range transitions {
		out[i] = t.String()
	}
	return out
}
