package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	Email     string         `gorm:"uniqueIndex;size:254" json:"email" example:"user@example.com"`
	Username  string         `gorm:"uniqueIndex;size:150" json:"username" example:"chef_vasya"`
	FirstName string         `gorm:"size:150" json:"first_name" example:"Vasya"`
	LastName  string         `gorm:"size:150" json:"last_name" example:"Ivanov"`
	Password  string         `json:"-"`
	// Avatar is an opaque blob reference (base64 payload or storage URL);
	// only presence is validated here, never content.
	Avatar string `json:"avatar"`
}
