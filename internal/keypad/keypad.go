package keypad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/sigma-calc/internal/calc"
)

// #region keypad
// Keypad holds the display and the pending-operator buffer of one calculator
// panel. It is owned by a single caller and is not safe for concurrent use.
type Keypad struct {
	mode    Mode
	display string
	pending string
	failed  bool
	rec     Recorder
}

// New creates a cleared keypad. rec may be nil.
func New(mode Mode, rec Recorder) *Keypad {
	return &Keypad{mode: mode, display: "0", rec: rec}
}

// Display returns the current operand, a result, or ErrorDisplay.
func (k *Keypad) Display() string { return k.display }

// Pending returns the accumulated operands and operators not yet evaluated.
func (k *Keypad) Pending() string { return k.pending }

// Mode returns the keypad's key set.
func (k *Keypad) Mode() Mode { return k.mode }

// #endregion keypad

// #region press
// Press applies one key. A failed calculation leaves ErrorDisplay on screen
// and returns the evaluation error; the next key starts from a cleared pad.
func (k *Keypad) Press(key string) error {
	if k.failed && key != "AC" {
		k.clear()
	}
	switch {
	case key == "AC":
		k.clear()
		return nil
	case key == "=":
		return k.equals()
	case isOperator(key):
		k.pending += k.display + key
		k.display = "0"
		return nil
	case key == "x" && k.mode == Scientific:
		k.pending += k.display + "*"
		k.display = "0"
		return nil
	case key == ".":
		if !strings.Contains(k.display, ".") {
			k.display += "."
		}
		return nil
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		if k.display == "0" {
			k.display = key
		} else {
			k.display += key
		}
		return nil
	}

	if k.mode == Standard {
		switch key {
		case "DEL":
			if len(k.display) > 1 {
				k.display = k.display[:len(k.display)-1]
			} else {
				k.display = "0"
			}
			return nil
		case "%":
			return k.percent()
		}
		return fmt.Errorf("%s key %q: %w", k.mode, key, ErrUnknownKey)
	}

	f, err := calc.ParseFunc(key)
	if err != nil {
		return fmt.Errorf("%s key %q: %w", k.mode, key, ErrUnknownKey)
	}
	return k.function(f)
}

// PressAll applies keys in order and stops at the first error.
func (k *Keypad) PressAll(keys ...string) error {
	for _, key := range keys {
		if err := k.Press(key); err != nil {
			return err
		}
	}
	return nil
}

// #endregion press

// #region actions
func (k *Keypad) clear() {
	k.display = "0"
	k.pending = ""
	k.failed = false
}

func (k *Keypad) fail(err error) error {
	k.display = ErrorDisplay
	k.pending = ""
	k.failed = true
	return err
}

func (k *Keypad) equals() error {
	full := k.pending + k.display
	if k.mode == Scientific {
		full = strings.ReplaceAll(full, "x", "*")
	}
	res, err := calc.Evaluate(full)
	if err != nil {
		return k.fail(err)
	}
	k.display = res.Display
	k.pending = ""
	return k.record(res.Expression, res.Display)
}

func (k *Keypad) percent() error {
	v, err := strconv.ParseFloat(k.display, 64)
	if err != nil {
		return k.fail(fmt.Errorf("percent of %q: %w", k.display, err))
	}
	k.display = strconv.FormatFloat(v/100, 'f', -1, 64)
	return nil
}

func (k *Keypad) function(f calc.Func) error {
	res, err := calc.Apply(f, k.display)
	if err != nil {
		return k.fail(err)
	}
	k.display = res.Display
	return k.record(res.Expression, res.Display)
}

func (k *Keypad) record(expression, result string) error {
	if k.rec == nil {
		return nil
	}
	if err := k.rec.Record(expression, result); err != nil {
		return fmt.Errorf("record %q: %w", expression, err)
	}
	return nil
}

func isOperator(key string) bool {
	return key == "+" || key == "-" || key == "*" || key == "/"
}

// #endregion actions
