// Command nfa2dfa converts an automaton description into an equivalent
// deterministic automaton and writes it to a file.
package main

import (
	"flag"
	"fmt"
	"os"

	u "github.com/araddon/gou"
	automaton "github.com/geange/nfa2dfa"
	"github.com/geange/nfa2dfa/fsafile"
)

var (
	outFile   *string = flag.String("out", "output.DFA", "file the converted automaton is written to")
	logLevel  *string = flag.String("loglevel", "info", "log level [debug|info|warn|error]")
	maxStates *int    = flag.Int("max-states", automaton.DefaultMaxStates, "largest number of input states to convert")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	u.SetupLogging(*logLevel)
	u.SetColorIfTerminal()

	if flag.NArg() < 1 {
		u.Errorf("input path must be specified")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *outFile, *maxStates); err != nil {
		u.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, maxStates int) error {
	nfa, err := fsafile.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}
	if err := fsafile.Report(os.Stdout, "NFA", nfa); err != nil {
		return err
	}

	dfa, err := nfa.ConvertToDFA(automaton.WithMaxStates(maxStates))
	if err != nil {
		return fmt.Errorf("convert %s: %w", inPath, err)
	}
	if err := fsafile.Report(os.Stdout, "DFA", dfa); err != nil {
		return err
	}

	if err := fsafile.WriteFile(outPath, dfa); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	u.Infof("wrote %d states and %d transitions to %s", len(dfa.States()), len(dfa.Transitions()), outPath)
	return nil
}
