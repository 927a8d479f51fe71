package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a history database file (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/history.db")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region modes

// runDBMode re-evaluates every recorded calculation and compares it with the
// stored result.
func runDBMode(dbPath string) int {
	store, err := history.NewStore(dbPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer store.Close()

	entries, err := store.List(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list history: %v\n", err)
		return 2
	}
	f := replay.FromHistory(dbPath, entries)
	if len(f.Cases) == 0 {
		fmt.Fprintln(os.Stderr, "no replayable history entries found")
		return 2
	}
	return printComparison(f)
}

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	return printComparison(f)
}

// #endregion modes

// #region output

// printComparison replays f, prints one row per case, and returns the exit code.
func printComparison(f *replay.Fixture) int {
	results, mismatches := replay.Run(f)
	byID := make(map[string][]replay.Mismatch)
	for _, m := range mismatches {
		byID[m.ID] = append(byID[m.ID], m)
	}

	fmt.Printf("%-24s| %-9s| %-15s| %-15s| %s\n", "Case", "Op", "Expected", "Replayed", "Match")
	fmt.Printf("%-24s+%-10s+%-16s+%-16s+%s\n",
		"------------------------", "----------", "----------------", "----------------", "------")

	for i, r := range results {
		match := "OK"
		if len(byID[r.ID]) > 0 {
			match = "DIFF"
		}
		fmt.Printf("%-24s| %-9s| %-15s| %-15s| %s\n", r.ID, r.Op, f.Cases[i].Expect.Outcome, r.Outcome, match)
	}

	if len(mismatches) > 0 {
		fmt.Println("\nDifferences:")
		for _, m := range mismatches {
			fmt.Printf("  %s\n", m)
		}
	}

	s := replay.Summarize(results, mismatches)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", s.TotalCases, s.Passed, s.Failed)
	outcomes := make([]string, 0, len(s.ByOutcome))
	for o := range s.ByOutcome {
		outcomes = append(outcomes, o)
	}
	sort.Strings(outcomes)
	for _, o := range outcomes {
		fmt.Printf("  %-16s %d\n", o, s.ByOutcome[o])
	}

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion output
