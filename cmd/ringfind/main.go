// Command ringfind streams stdin through a ringsearch.Searcher, one pattern
// per command-line argument, printing each match as it is reported.
package main

import (
	"fmt"
	"os"

	"github.com/coregx/ringsearch"
)

const ringCapacity = 1024

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(patterns []string, stdin *os.File, stdout *os.File) error {
	searcher := ringsearch.New(ringCapacity)

	for _, pattern := range patterns {
		if _, err := searcher.AddPatternFromString(pattern); err != nil {
			return err
		}
	}

	return searcher.Drive(stdin, func(searchID int, m ringsearch.Match, data ringsearch.MatchData) {
		fmt.Fprintf(stdout, "#%d %s\n", searchID, formatMatch(m))
		fmt.Fprintf(stdout, "> %s\n", data.ToStringLossy())
	})
}

func formatMatch(m ringsearch.Match) string {
	if m.Start == nil {
		return fmt.Sprintf("Match { start: None, end: %d }", m.End)
	}
	return fmt.Sprintf("Match { start: Some(%d), end: %d }", *m.Start, m.End)
}
