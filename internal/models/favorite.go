package models

import "time"

type Favorite struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint  `gorm:"uniqueIndex:ux_favorites_user_store;not null" json:"user_id"`
	StoreID uint  `gorm:"uniqueIndex:ux_favorites_user_store;not null" json:"store_id"`
	Store   Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"store"`

	CreatedAt time.Time `json:"created_at"`
}
