// Package idgen allocates account identifiers: random 11-digit numeric
// strings, re-drawn until they miss every identifier already live.
package idgen

import (
	"math/rand/v2"
	"strconv"
)

// Width is the fixed number of digits in an account identifier.
const Width = 11

const (
	low  = 10_000_000_000 // smallest 11-digit number
	span = 90_000_000_000
)

// Func produces a fresh account identifier that is not currently taken.
type Func func(taken func(string) bool) string

// Random draws random 11-digit identifiers and rejects collisions via
// the taken callback. With ~9e10 possible values the loop terminates
// immediately in practice for any realistic account count.
func Random(taken func(string) bool) string {
	for {
		id := strconv.FormatInt(low+rand.Int64N(span), 10)
		if taken == nil || !taken(id) {
			return id
		}
	}
}
