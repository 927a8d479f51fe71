package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielpatrickdp/sigma-calc/internal/history"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a history database file")
	last := flag.Int("last", 20, "show N most recent calculations")
	id := flag.String("id", "", "show single entry detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/history.db [--last N] [--id id] [--json]")
		os.Exit(2)
	}

	store, err := history.NewStore(*dbPath, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *id != "" {
		err = runDetailMode(store, *id, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runListMode(store *history.Store, last int, jsonOut bool) error {
	entries, err := store.List(last)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no history found")
		return nil
	}
	total, err := store.Count()
	if err != nil {
		return err
	}

	fmt.Printf("%-8s  %-24s  %-16s  %s\n", "ID", "Expression", "Result", "When")
	fmt.Printf("%-8s+-%-24s+-%-16s+-%s\n", "--------", "------------------------", "----------------", "--------------")

	// Store returns newest first; print chronologically.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("%-8s  %-24s  %-16s  %s\n", shortID(e.ID), e.Expression, e.Result, humanize.Time(e.CreatedAt))
	}
	fmt.Printf("\nshowing %s of %s (limit %s)\n",
		humanize.Comma(int64(len(entries))), humanize.Comma(int64(total)), humanize.Comma(int64(store.Limit())))
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetailMode(store *history.Store, id string, jsonOut bool) error {
	e, err := store.Get(id)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(e)
	}
	fmt.Printf("ID:         %s\n", e.ID)
	fmt.Printf("Expression: %s\n", e.Expression)
	fmt.Printf("Result:     %s\n", e.Result)
	fmt.Printf("Created:    %s (%s)\n", e.CreatedAt.Format(time.RFC3339), humanize.Time(e.CreatedAt))
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
