package history

import "time"

// DefaultLimit is how many entries the store keeps.
const DefaultLimit = 50

// #region entry
// Entry is one recorded calculation.
type Entry struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}

// #endregion entry
