package models

// Variant is one purchasable size/weight option of a product (e.g. "100g").
type Variant struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
}

// Product is owned by the remote catalog. Carts hold it by reference only;
// master data is never mutated here.
type Product struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Variants []Variant `json:"variants"`
}

// VariantBySize resolves the variant matching the given size discriminator.
func (p Product) VariantBySize(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}

type CartItem struct {
	Product     Product `json:"product"`
	VariantSize string  `json:"variantSize"`
	Quantity    int     `json:"quantity"`
	// Price is the unit price snapshotted from the variant at add time. A later
	// catalog price change does not alter a pending cart's total.
	Price     float64 `json:"price"`
	ItemTotal float64 `json:"itemTotal"`
}

type Cart struct {
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// Recalculate rederives every ItemTotal and the cart TotalPrice. Called after
// every mutation and on every read so derived fields are never stale.
func (c *Cart) Recalculate() {
	total := 0.0
	for i := range c.Items {
		c.Items[i].ItemTotal = c.Items[i].Price * float64(c.Items[i].Quantity)
		total += c.Items[i].ItemTotal
	}
	c.TotalPrice = total
}

// Find returns the index of the line keyed by (productID, variantSize), or -1.
// At most one line exists per key.
func (c *Cart) Find(productID, variantSize string) int {
	for i, item := range c.Items {
		if item.Product.ID == productID && item.VariantSize == variantSize {
			return i
		}
	}
	return -1
}

// ItemCount sums line quantities, for the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// OrderItem is the minimal projection an order-creation call needs. Price is
// deliberately dropped: the server is authoritative for pricing at order time.
type OrderItem struct {
	ProductID   string `json:"productId"`
	VariantSize string `json:"variantSize"`
	Quantity    int    `json:"quantity"`
}

// OrderItems projects the cart into order-creation shape.
func (c *Cart) OrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem{
			ProductID:   item.Product.ID,
			VariantSize: item.VariantSize,
			Quantity:    item.Quantity,
		})
	}
	return items
}
