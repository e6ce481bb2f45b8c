package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"uniqueIndex:ux_reviews_user_store;not null" json:"user_id"`
	User    User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	StoreID uint `gorm:"uniqueIndex:ux_reviews_user_store;index;not null" json:"store_id"`

	AuthorName string `gorm:"size:100" json:"author_name"`
	Rating     int    `gorm:"not null" json:"rating"`
	Content    string `gorm:"type:text" json:"content"`
	Hidden     bool   `gorm:"default:false;index" json:"hidden"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
