package cashcount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	c := Count{1000: 3, 500: 2, 100: 5, 20: 1}

	assert.True(t, Total(c).Equal(decimal.NewFromInt(4520)))
}

func TestTotalEmpty(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
	assert.True(t, Total(Count{}).IsZero())
}

func TestTotalIgnoresNegativeCounts(t *testing.T) {
	assert.True(t, Total(Count{200: -4, 50: 2}).Equal(decimal.NewFromInt(100)))
}

func TestTallyClampsAtZero(t *testing.T) {
	tally := NewTally(1000, 500, 100)
	tally.Set(500, 3)
	tally.Add(500, -5)
	tally.Set(100, -2)
	tally.Add(1000, 2)

	assert.Equal(t, 0, tally.Get(500))
	assert.Equal(t, 0, tally.Get(100))
	assert.True(t, tally.Total().Equal(decimal.NewFromInt(2000)))
}

func TestFromCountClamps(t *testing.T) {
	tally := FromCount(Count{100: -1, 50: 4})

	assert.Equal(t, 0, tally.Get(100))
	assert.True(t, tally.Total().Equal(decimal.NewFromInt(200)))
}

func TestLinesSortedDescending(t *testing.T) {
	tally := FromCount(Count{50: 1, 1000: 2, 200: 3})

	lines := tally.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(1000), lines[0].Denomination)
	assert.Equal(t, int64(200), lines[1].Denomination)
	assert.Equal(t, int64(50), lines[2].Denomination)
	assert.True(t, lines[1].Subtotal.Equal(decimal.NewFromInt(600)))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Count{100: 1}))
	assert.Error(t, Validate(Count{0: 1}))
	assert.Error(t, Validate(Count{-50: 1}))
}
