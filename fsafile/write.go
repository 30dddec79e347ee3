package fsafile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	automaton "github.com/geange/nfa2dfa"
)

// WriteFile writes a to path, creating or truncating it.
func WriteFile(path string, a *automaton.Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes a in the format Read accepts.
func Write(w io.Writer, a *automaton.Automaton) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, joinStates(a.States()))
	fmt.Fprintln(bw, strings.Join(a.Alphabet(), "\t"))
	fmt.Fprintln(bw, a.Initial())
	fmt.Fprintln(bw, joinStates(a.AcceptStates()))
	for _, t := range a.Transitions() {
		fmt.Fprintln(bw, t)
	}
	return bw.Flush()
}

// Report prints a under a title, the way the command line tool shows the
// automata it reads and produces.
func Report(w io.Writer, title string, a *automaton.Automaton) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "=== %s ===\n", title)
	fmt.Fprintf(bw, "States: %s\n", listStates(a.States()))
	fmt.Fprintf(bw, "Alphabet: [%s]\n", strings.Join(a.Alphabet(), ", "))
	fmt.Fprintf(bw, "Initial State: %s\n", a.Initial())
	fmt.Fprintf(bw, "Accept States: %s\n", listStates(a.AcceptStates()))

	transitions := a.Transitions()
	fmt.Fprintf(bw, "Transitions (%d):\n", len(transitions))
	for _, t := range transitions {
		fmt.Fprintln(bw, t)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

func joinStates(states []*automaton.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.String()
	}
	return strings.Join(names, "\t")
}

func listStates(states []*automaton.State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
