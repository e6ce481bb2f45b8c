package models

import "time"

type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StoreID uint `gorm:"index;not null" json:"store_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Brand       string `gorm:"size:50;index" json:"brand"`
	ModelName   string `gorm:"size:100" json:"model_name"`
	Storage     string `gorm:"size:20" json:"storage"`
	Color       string `gorm:"size:30" json:"color"`
	Condition   string `gorm:"size:20;default:'new'" json:"condition"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:512" json:"image_url"`

	Price  int64 `gorm:"not null" json:"price"`
	Stock  int   `gorm:"default:0" json:"stock"`
	Active bool  `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
