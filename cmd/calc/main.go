package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/danielpatrickdp/sigma-calc/internal/config"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/keypad"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

// #region main
func main() {
	cfg := config.Load()
	dbPath := flag.String("db", cfg.DBPath, "history DSN (default in-memory, CALC_DB)")
	scientific := flag.Bool("scientific", false, "start with the scientific keypad")
	flag.Parse()

	store, err := history.NewStore(*dbPath, cfg.HistoryLimit)
	if err != nil {
		log.Fatalf("failed to open history: %v", err)
	}
	defer store.Close()

	mode := keypad.Standard
	if *scientific {
		mode = keypad.Scientific
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive {
		fmt.Println("Sigma calculator ready.")
		fmt.Printf("  History: %s | Mode: %s\n", *dbPath, mode)
		fmt.Println("Type an expression, 'help', or 'quit':")
	}

	s := newSession(os.Stdout, store, plot.NewSampler(cfg.MaxSamples), mode)
	if err := s.run(os.Stdin, interactive); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

// #endregion main
