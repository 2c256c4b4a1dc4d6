// README: Monthly generation allowance errors and defaults.
package aiusage

import "errors"

// ErrInsufficientTokens is returned when a user has no tokens remaining for the current month.
var ErrInsufficientTokens = errors.New("monthly generation allowance used up")

// DefaultTokens is the number of generations granted per month.
const DefaultTokens = 100

// Usage is a caller's allowance for the current month.
type Usage struct {
	TokensRemaining int    `json:"tokensRemaining"`
	Month           string `json:"month"`
}
