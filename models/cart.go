package models

// SelectedVariant is the shallow projection of a variant carried in a cart payload
type SelectedVariant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PriceDiff float64 `json:"priceDiff"`
}

// CartPayload is the "add to cart" event handed to the cart collaborator
// Example:
// {
//   "id": "1",
//   "name": "Shirt",
//   "image": "https://example.com/shirt.png",
//   "price": 22.5,
//   "basePrice": 20,
//   "selectedVariant": {"id": "m", "name": "Medium", "priceDiff": 2.5},
//   "qty": 1
// }
type CartPayload struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Image           string           `json:"image,omitempty"`
	Price           float64          `json:"price"`
	BasePrice       float64          `json:"basePrice"`
	SelectedVariant *SelectedVariant `json:"selectedVariant"`
	Qty             int              `json:"qty"`
}

// CartLine is a cart payload as recorded by a cart collaborator
type CartLine struct {
	LineID  string      `json:"lineId"`
	Payload CartPayload `json:"payload"`
	AddedAt string      `json:"addedAt"` // RFC3339
}
