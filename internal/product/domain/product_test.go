package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		quantity string
		expected StockStatus
	}{
		{"25", StockIn},
		{"10.5", StockIn},
		{"10", StockLow},
		{"0.25", StockLow},
		{"0", StockOut},
	}

	for _, tt := range tests {
		t.Run(tt.quantity, func(t *testing.T) {
			p := Product{Quantity: decimal.RequireFromString(tt.quantity)}
			assert.Equal(t, tt.expected, p.StockStatus(10))
		})
	}
}

func TestUnitValid(t *testing.T) {
	assert.True(t, UnitLiter.Valid())
	assert.True(t, UnitPacket.Valid())
	assert.False(t, Unit("Gallon").Valid())
}
