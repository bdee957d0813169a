package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStockStatus_Boundaries(t *testing.T) {
	cases := []struct {
		stock int64
		want  StockStatus
	}{
		{-5, StockStatusOutOfStock},
		{0, StockStatusOutOfStock},
		{1, StockStatusLowStock},
		{5, StockStatusLowStock},
		{10, StockStatusLowStock},
		{11, StockStatusInStock},
		{100, StockStatusInStock},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, DeriveStockStatus(c.stock), "stock=%d", c.stock)
	}
}

func TestDeriveStockStatus_ThresholdIsTen(t *testing.T) {
	assert.Equal(t, int64(10), LowStockThreshold)

	//しきい値ちょうどはlow、超えたらin
	assert.Equal(t, StockStatusLowStock, DeriveStockStatus(LowStockThreshold))
	assert.Equal(t, StockStatusInStock, DeriveStockStatus(LowStockThreshold+1))
}
