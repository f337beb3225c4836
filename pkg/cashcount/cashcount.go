// Package cashcount turns a bill/coin breakdown into a monetary total.
//
// It is used for both the opening float and the closing drawer audit and has
// no side effects: persisting the resulting total is the caller's job.
package cashcount

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Count maps a denomination (in the currency's unit) to the number of
// bills or coins counted.
type Count map[int64]int

// Line is one row of a tally, ready for display or printing.
type Line struct {
	Denomination int64           `json:"denomination"`
	Count        int             `json:"count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Total returns Σ(denomination × count). Negative counts contribute nothing.
func Total(c Count) decimal.Decimal {
	total := decimal.Zero
	for denom, n := range c {
		if n <= 0 {
			continue
		}
		total = total.Add(decimal.NewFromInt(denom).Mul(decimal.NewFromInt(int64(n))))
	}
	return total
}

// Validate rejects non-positive denominations.
func Validate(c Count) error {
	for denom := range c {
		if denom <= 0 {
			return fmt.Errorf("cashcount: invalid denomination %d", denom)
		}
	}
	return nil
}

// Tally is an editable count. Counts never go below zero.
type Tally struct {
	counts Count
}

// NewTally creates a tally pre-populated with zero counts for the given
// denominations.
func NewTally(denominations ...int64) *Tally {
	t := &Tally{counts: make(Count, len(denominations))}
	for _, d := range denominations {
		t.counts[d] = 0
	}
	return t
}

// FromCount builds a tally from an existing count, clamping negatives.
func FromCount(c Count) *Tally {
	t := &Tally{counts: make(Count, len(c))}
	for d, n := range c {
		t.Set(d, n)
	}
	return t
}

// Set replaces the count for a denomination; values below zero become zero.
func (t *Tally) Set(denomination int64, count int) {
	if count < 0 {
		count = 0
	}
	t.counts[denomination] = count
}

// Add adjusts the count for a denomination by delta, clamped at zero.
func (t *Tally) Add(denomination int64, delta int) {
	t.Set(denomination, t.counts[denomination]+delta)
}

// Get returns the count for a denomination.
func (t *Tally) Get(denomination int64) int {
	return t.counts[denomination]
}

// Total returns the monetary value of the tally.
func (t *Tally) Total() decimal.Decimal {
	return Total(t.counts)
}

// Count returns a copy of the underlying counts.
func (t *Tally) Count() Count {
	out := make(Count, len(t.counts))
	for d, n := range t.counts {
		out[d] = n
	}
	return out
}

// Lines returns the tally sorted by denomination, largest first.
func (t *Tally) Lines() []Line {
	denoms := make([]int64, 0, len(t.counts))
	for d := range t.counts {
		denoms = append(denoms, d)
	}
	sort.Slice(denoms, func(i, j int) bool { return denoms[i] > denoms[j] })

	lines := make([]Line, 0, len(denoms))
	for _, d := range denoms {
		n := t.counts[d]
		lines = append(lines, Line{
			Denomination: d,
			Count:        n,
			Subtotal:     decimal.NewFromInt(d).Mul(decimal.NewFromInt(int64(n))),
		})
	}
	return lines
}
