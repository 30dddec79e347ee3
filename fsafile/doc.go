// Package fsafile reads and writes finite automata in a line oriented text
// format and prints them for humans.
//
// The format is:
//
//	line 1: states, tab separated, e.g. {q0}	{q1}
//	line 2: alphabet symbols, tab separated
//	line 3: the initial state
//	line 4: accepting states, tab separated
//	line 5 onwards: one transition per line, {q0}, a = {q1}
//
// EPS is the epsilon symbol and EM the empty state of a converted automaton.
package fsafile
