package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineTotalRoundsToTwoPlaces(t *testing.T) {
	total := LineTotal(decimal.RequireFromString("1.255"), decimal.RequireFromString("3"))
	assert.Equal(t, "3.77", total.StringFixed(2))

	total = LineTotal(decimal.NewFromInt(2), decimal.NewFromInt(30))
	assert.True(t, total.Equal(decimal.NewFromInt(60)))
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, ClampZero(decimal.NewFromInt(4)).Equal(decimal.NewFromInt(4)))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(decimal.NewFromInt(50), decimal.NewFromInt(80)).Equal(decimal.NewFromInt(130)))
}
