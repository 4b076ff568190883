package domain

// CartLine is one (product, quantity) pairing within a cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Cart is the ordered sequence of cart lines. Insertion order is preserved on
// add and never reordered on update. At most one line exists per product ID;
// adding the same product again merges by summing quantity.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// FindLineIndex returns the index of the line matching the given product ID,
// or -1 if the product is not in the cart.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount returns the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total returns the cart total: effective unit price times quantity, summed
// per line with no cross-line rounding.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Product.EffectivePrice() * float64(line.Quantity)
	}
	return total
}
