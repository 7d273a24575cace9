package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleCart() Cart {
	return Cart{Items: []CartItem{
		{
			Product:     Product{ID: "p1", Name: "Assam Gold"},
			VariantSize: "100g",
			Quantity:    2,
			Price:       200,
		},
		{
			Product:     Product{ID: "p2", Name: "Darjeeling First Flush"},
			VariantSize: "250g",
			Quantity:    1,
			Price:       350,
		},
	}}
}

func TestRecalculateDerivesTotals(t *testing.T) {
	cart := sampleCart()
	cart.Recalculate()

	assert.Equal(t, 400.0, cart.Items[0].ItemTotal)
	assert.Equal(t, 350.0, cart.Items[1].ItemTotal)
	assert.Equal(t, 750.0, cart.TotalPrice)

	// derived fields are rederived, never left stale
	cart.Items[0].Quantity = 3
	cart.Recalculate()
	assert.Equal(t, 600.0, cart.Items[0].ItemTotal)
	assert.Equal(t, 950.0, cart.TotalPrice)

	sum := 0.0
	for _, item := range cart.Items {
		sum += item.ItemTotal
	}
	assert.Equal(t, sum, cart.TotalPrice)
}

func TestFindMatchesProductAndVariant(t *testing.T) {
	cart := sampleCart()

	assert.Equal(t, 0, cart.Find("p1", "100g"))
	assert.Equal(t, 1, cart.Find("p2", "250g"))
	assert.Equal(t, -1, cart.Find("p1", "250g"))
	assert.Equal(t, -1, cart.Find("p3", "100g"))
}

func TestItemCountSumsQuantities(t *testing.T) {
	cart := sampleCart()
	assert.Equal(t, 3, cart.ItemCount())

	empty := Cart{}
	assert.Equal(t, 0, empty.ItemCount())
}

func TestOrderItemsDropsPrice(t *testing.T) {
	cart := sampleCart()
	items := cart.OrderItems()

	assert.Len(t, items, 2)
	assert.Equal(t, OrderItem{ProductID: "p1", VariantSize: "100g", Quantity: 2}, items[0])
	assert.Equal(t, OrderItem{ProductID: "p2", VariantSize: "250g", Quantity: 1}, items[1])
}

func TestVariantBySize(t *testing.T) {
	p := Product{ID: "p1", Variants: []Variant{
		{Size: "100g", Price: 200},
		{Size: "250g", Price: 450},
	}}

	v, ok := p.VariantBySize("250g")
	assert.True(t, ok)
	assert.Equal(t, 450.0, v.Price)

	_, ok = p.VariantBySize("500g")
	assert.False(t, ok)
}
