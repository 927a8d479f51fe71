package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a history database file")
	last := flag.Int("last", 20, "number of most recent calculations to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	desc := flag.String("desc", "", "fixture description (default: exported from <db>)")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/history.db --out path/to/fixture.json [--last N] [--desc text]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *outPath, *desc); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath string, last int, outPath, desc string) error {
	store, err := history.NewStore(dbPath, 0)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	entries, err := store.List(last)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if desc == "" {
		desc = fmt.Sprintf("exported from %s", dbPath)
	}

	f := replay.FromHistory(desc, entries)
	if len(f.Cases) == 0 {
		return fmt.Errorf("no replayable entries in last %d calculations", last)
	}

	// Refuse to write a baseline that does not reproduce today.
	if _, mismatches := replay.Run(f); len(mismatches) > 0 {
		for _, m := range mismatches {
			fmt.Fprintf(os.Stderr, "  %s\n", m)
		}
		return fmt.Errorf("%d recorded results no longer reproduce", len(mismatches))
	}

	if err := replay.WriteFixture(outPath, f); err != nil {
		return err
	}
	fmt.Printf("Wrote %d cases to %s (skipped %d)\n", len(f.Cases), outPath, len(entries)-len(f.Cases))
	return nil
}

// #endregion export
