package fsafile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	automaton "github.com/geange/nfa2dfa"
)

var (
	ErrTooFewLines         = errors.New("input must have at least 4 lines")
	ErrMalformedState      = errors.New(`state must be enclosed by curly braces {}`)
	ErrMalformedTransition = errors.New(`transition rule should be of the form "A, x = B"`)
)

const headerLines = 4

// ReadFile reads the automaton stored at path.
func ReadFile(path string) (*automaton.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses an automaton. The state list is sorted the same way states
// are sorted after conversion.
func Read(r io.Reader) (*automaton.Automaton, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < headerLines {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLines, len(lines))
	}

	b := automaton.NewBuilder()

	states, err := parseStates(lines[0], 1)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(states, compareLabels)
	for _, name := range states {
		if err := b.AddState(name); err != nil {
			return nil, lineError(1, err)
		}
	}

	if err := b.SetAlphabet(splitTabs(lines[1])...); err != nil {
		return nil, lineError(2, err)
	}

	initial, err := parseState(lines[2])
	if err != nil {
		return nil, lineError(3, err)
	}
	if err := b.SetInitial(initial); err != nil {
		return nil, lineError(3, err)
	}

	accept, err := parseStates(lines[3], 4)
	if err != nil {
		return nil, err
	}
	for _, name := range accept {
		if err := b.AddAccept(name); err != nil {
			return nil, lineError(4, err)
		}
	}

	for i := headerLines; i < len(lines); i++ {
		start, symbol, end, err := parseTransition(lines[i])
		if err != nil {
			return nil, lineError(i+1, err)
		}
		if err := b.AddTransition(start, symbol, end); err != nil {
			return nil, lineError(i+1, err)
		}
	}

	return b.Finish()
}

// readLines returns the lines of r without trailing blank lines.
func readLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

func lineError(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}

func splitTabs(line string) []string {
	fields := strings.Split(line, "\t")
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseStates(line string, lineNo int) ([]string, error) {
	tokens := splitTabs(line)
	names := make([]string, 0, len(tokens))
	for _, token := range tokens {
		name, err := parseState(token)
		if err != nil {
			return nil, lineError(lineNo, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// parseState returns the label of a "{name}" token. The whole content of the
// braces is one label.
func parseState(token string) (string, error) {
	token = strings.TrimSpace(token)
	if len(token) <= 2 || token[0] != '{' || token[len(token)-1] != '}' {
		return "", fmt.Errorf("%w: %q", ErrMalformedState, token)
	}
	return token[1 : len(token)-1], nil
}

func parseTransition(line string) (start, symbol, end string, err error) {
	comma := strings.IndexByte(line, ',')
	equals := strings.IndexByte(line, '=')
	if comma < 0 || equals < 0 || equals <= comma {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedTransition, line)
	}

	if start, err = parseState(line[:comma]); err != nil {
		return "", "", "", err
	}
	symbol = strings.TrimSpace(line[comma+1 : equals])
	if end, err = parseState(line[equals+1:]); err != nil {
		return "", "", "", err
	}
	return start, symbol, end, nil
}

// compareLabels orders labels the way automaton.CompareStates orders their
// singleton states.
func compareLabels(a, b string) int {
	return strings.Compare("{"+a+"}", "{"+b+"}")
}
