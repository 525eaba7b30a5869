package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestFoodEffectivePrice(t *testing.T) {
	tests := []struct {
		name string
		food Food
		want float64
	}{
		{"sale price wins", Food{MRP: 120, SalePrice: price(99)}, 99},
		{"mrp without sale", Food{MRP: 120}, 120},
		{"zero sale falls back to mrp", Food{MRP: 120, SalePrice: price(0)}, 120},
		{"price only", Food{Price: 42}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.food.EffectivePrice())
		})
	}
}

func TestFoodDerive(t *testing.T) {
	f := Food{MRP: 200, SalePrice: price(150), StockQuantity: 3}
	f.Derive(DefaultMinStockLevel)

	assert.Equal(t, 150.0, f.Price)
	assert.True(t, f.IsOnSale)
	require.NotNil(t, f.DiscountPercentage)
	assert.Equal(t, 25.0, *f.DiscountPercentage)
	assert.Equal(t, 50.0, f.Savings)
	assert.True(t, f.IsLowStock)

	f = Food{MRP: 90, StockQuantity: 40}
	f.Derive(DefaultMinStockLevel)
	assert.Equal(t, 90.0, f.Price)
	assert.False(t, f.IsOnSale)
	assert.Nil(t, f.DiscountPercentage)
	assert.Zero(t, f.Savings)
	assert.False(t, f.IsLowStock)
}

func TestFoodDeriveRoundsDiscount(t *testing.T) {
	f := Food{MRP: 300, SalePrice: price(200)}
	f.Derive(DefaultMinStockLevel)

	require.NotNil(t, f.DiscountPercentage)
	assert.Equal(t, 33.33, *f.DiscountPercentage)
}

func TestFoodRecordToDTO(t *testing.T) {
	record := FoodRecord{
		ID:            7,
		Name:          "Cold Pressed Groundnut Oil",
		MRP:           decimal.NewFromInt(400),
		SalePrice:     decimal.NewNullDecimal(decimal.NewFromInt(350)),
		CategoryID:    2,
		Category:      CategoryRecord{ID: 2, Name: "Oils"},
		IsAvailable:   true,
		StockQuantity: 12,
		MinStockLevel: DefaultMinStockLevel,
	}

	dto := record.ToDTO()
	assert.Equal(t, 7, dto.FoodID)
	assert.Equal(t, "Oils", dto.CategoryName)
	require.NotNil(t, dto.SalePrice)
	assert.Equal(t, 350.0, dto.EffectivePrice())
	assert.True(t, dto.IsOnSale)
	assert.Equal(t, "350", record.EffectivePrice().String())
}

func TestShippingFor(t *testing.T) {
	assert.True(t, ShippingFor(decimal.Zero).IsZero())
	assert.Equal(t, "50", ShippingFor(decimal.NewFromFloat(499.99)).String())
	assert.True(t, ShippingFor(decimal.NewFromInt(500)).IsZero())
}

func TestLineTotalAvoidsFloatDrift(t *testing.T) {
	total := LineTotal(0.1, 3)
	assert.Equal(t, 0.3, RoundMoney(total))
	assert.Equal(t, "0.3", total.String())
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusShipped))
	assert.False(t, ValidOrderStatus("Completed"))
}
