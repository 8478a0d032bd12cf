package models

import "time"

// Favorite and ShoppingCart are independent (user, recipe) membership records.
// Each table carries its own composite unique index; the index, not the
// application pre-check, is what actually prevents duplicate pairs under
// concurrent identical requests.

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}
