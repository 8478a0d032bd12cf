package models

// Ingredient is a canonical catalog entry. The (name, measurement_unit) pair
// is unique across the whole catalog.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey" json:"id" example:"1"`
	Name            string `gorm:"size:200;index;uniqueIndex:idx_ingredient_name_unit" json:"name" example:"flour"`
	MeasurementUnit string `gorm:"size:50;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit" example:"g"`
}
