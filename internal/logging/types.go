package logging

import (
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
)

// #region call-entry
// CallEntry is one logged RPC.
type CallEntry struct {
	Method   string
	Code     codes.Code
	Reason   string // ErrorInfo reason, empty on success
	Duration time.Duration
}

// String renders the entry as a single key=value log line.
func (e CallEntry) String() string {
	line := fmt.Sprintf("rpc method=%s code=%s dur=%s", e.Method, e.Code, e.Duration)
	if e.Reason != "" {
		line += " reason=" + e.Reason
	}
	return line
}

// #endregion call-entry
