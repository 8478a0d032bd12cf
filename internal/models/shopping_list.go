package models

// ShoppingListItem is one aggregated row of a user's shopping list: the
// summed amount of a single (name, unit) ingredient across every recipe in
// the cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
