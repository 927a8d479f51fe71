package keypad

import "errors"

// #region errors
var (
	// ErrUnknownKey indicates a key the current mode does not have.
	ErrUnknownKey = errors.New("keypad: unknown key")
)

// #endregion errors

// #region mode
// Mode selects the key set.
type Mode int

const (
	Standard Mode = iota
	Scientific
)

func (m Mode) String() string {
	if m == Scientific {
		return "scientific"
	}
	return "standard"
}

// #endregion mode

// #region recorder
// Recorder receives every successful calculation, e.g. a history store.
type Recorder interface {
	Record(expression, result string) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(expression, result string) error

func (f RecorderFunc) Record(expression, result string) error { return f(expression, result) }

// #endregion recorder

// ErrorDisplay is shown in place of a value after a failed calculation.
const ErrorDisplay = "Error"
