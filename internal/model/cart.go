package model

// LineItem represents one product entry in the local cart.
// Field names match the persisted wire shape.
type LineItem struct {
	ID         string  `json:"id"`
	ItemName   string  `json:"item_name"`
	ItemAmount float64 `json:"item_amount"`
	ItemPrice  float64 `json:"item_price"`
}

// Total returns the line total (quantity times unit price).
func (i LineItem) Total() float64 {
	return i.ItemAmount * i.ItemPrice
}

// CartTotal returns the grand total of a list of line items.
func CartTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Total()
	}
	return total
}
