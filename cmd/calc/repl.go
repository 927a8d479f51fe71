package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/shlex"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
	"github.com/danielpatrickdp/sigma-calc/internal/history"
	"github.com/danielpatrickdp/sigma-calc/internal/keypad"
	"github.com/danielpatrickdp/sigma-calc/internal/plot"
)

const helpText = `commands:
  <expression>                 evaluate arithmetic, e.g. (1+2)*3 or 50%
  eval <expression>            same, explicitly
  plot <fn> [min max step]     sample fn of x, default sin(x) over -10..10 step 0.5
  sci <fn> [operand]           sin cos tan log ln sqrt pow2 pi e
  press <key>...               drive the keypad, e.g. press 1 2 + 7 =
  mode standard|scientific     switch keypad
  history [n]                  newest n calculations
  clear                        forget history
  quit`

var errUsage = errors.New("usage")

// #region session
// session is one REPL: a keypad, a history store, and a sampler.
type session struct {
	out     io.Writer
	store   *history.Store
	sampler *plot.Sampler
	pad     *keypad.Keypad
	now     func() time.Time
}

func newSession(out io.Writer, store *history.Store, sampler *plot.Sampler, mode keypad.Mode) *session {
	return &session{
		out:     out,
		store:   store,
		sampler: sampler,
		pad:     keypad.New(mode, store),
		now:     time.Now,
	}
}

// run reads commands until EOF or quit. Command failures are printed and the
// loop continues; only read errors are returned.
func (s *session) run(in io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := s.exec(line)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// #endregion session

// #region dispatch
func (s *session) exec(line string) (bool, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return false, nil
	}
	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
		return false, nil
	case "eval":
		return false, s.eval(strings.Join(args[1:], " "))
	case "plot":
		return false, s.plot(args[1:])
	case "sci":
		return false, s.sci(args[1:])
	case "press":
		return false, s.press(args[1:])
	case "mode":
		return false, s.mode(args[1:])
	case "history":
		return false, s.history(args[1:])
	case "clear":
		n, err := s.store.Clear()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "cleared %d %s\n", n, plural(n, "entry", "entries"))
		return false, nil
	default:
		return false, s.eval(line)
	}
}

// #endregion dispatch

// #region commands
func (s *session) eval(src string) error {
	res, err := calc.Evaluate(src)
	if err != nil {
		return err
	}
	if _, err := s.store.Add(res.Expression, res.Display); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	fmt.Fprintf(s.out, "%s = %s\n", res.Expression, res.Display)
	return nil
}

func (s *session) plot(args []string) error {
	fn := plot.DefaultFunction
	r := plot.DefaultRange()
	switch len(args) {
	case 0:
	case 1:
		fn = args[0]
	case 4:
		fn = args[0]
		bounds := make([]float64, 3)
		for i, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("plot bound %q: %w", a, err)
			}
			bounds[i] = v
		}
		r = plot.Range{Min: bounds[0], Max: bounds[1], Step: bounds[2]}
	default:
		return fmt.Errorf("%w: plot <fn> [min max step]", errUsage)
	}

	points, err := s.sampler.Sample(fn, r)
	if err != nil {
		return err
	}
	for _, p := range points {
		fmt.Fprintf(s.out, "%10s  %12s\n", formatCoord(p.X), formatCoord(p.Y))
	}
	ext, ok := plot.Bounds(points)
	if !ok {
		fmt.Fprintln(s.out, "no points")
		return nil
	}
	fmt.Fprintf(s.out, "%s points, x in [%s, %s], y in [%s, %s]\n",
		humanize.Comma(int64(len(points))),
		formatCoord(ext.MinX), formatCoord(ext.MaxX),
		formatCoord(ext.MinY), formatCoord(ext.MaxY))
	return nil
}

func (s *session) sci(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: sci <fn> [operand]", errUsage)
	}
	f, err := calc.ParseFunc(args[0])
	if err != nil {
		return err
	}
	operand := ""
	if len(args) == 2 {
		operand = args[1]
	}
	res, err := calc.Apply(f, operand)
	if err != nil {
		return err
	}
	if _, err := s.store.Add(res.Expression, res.Display); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	fmt.Fprintf(s.out, "%s = %s\n", res.Expression, res.Display)
	return nil
}

func (s *session) press(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: press <key>...", errUsage)
	}
	err := s.pad.PressAll(keys...)
	fmt.Fprintf(s.out, "[%s] %s%s\n", s.pad.Mode(), s.pad.Pending(), s.pad.Display())
	return err
}

func (s *session) mode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: mode standard|scientific", errUsage)
	}
	var m keypad.Mode
	switch strings.ToLower(args[0]) {
	case "standard":
		m = keypad.Standard
	case "scientific":
		m = keypad.Scientific
	default:
		return fmt.Errorf("unknown mode %q", args[0])
	}
	s.pad = keypad.New(m, s.store)
	fmt.Fprintf(s.out, "mode %s\n", m)
	return nil
}

func (s *session) history(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: history [n]", errUsage)
		}
		limit = n
	}
	entries, err := s.store.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "no history")
		return nil
	}
	now := s.now()
	for _, e := range entries {
		fmt.Fprintf(s.out, "%-20s = %-14s  %s\n", e.Expression, e.Result, humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}
	return nil
}

// #endregion commands

// #region helpers
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// #endregion helpers
