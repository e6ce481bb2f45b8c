package models

import (
	"time"

	"github.com/BruksfildServices01/phone-reserve/internal/domain/availability"
)

type Store struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"uniqueIndex;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Phone       string `gorm:"size:20" json:"phone"`
	Address     string `gorm:"size:255" json:"address"`
	Region      string `gorm:"size:50;index" json:"region"`
	ImageURL    string `gorm:"size:512" json:"image_url"`
	Timezone    string `gorm:"size:64;default:'Asia/Seoul'" json:"timezone"`

	OperatingHours availability.OperatingHours `gorm:"serializer:json;type:jsonb" json:"operating_hours"`

	// Mirrors the owner's seller approval; only approved stores are public.
	Approved bool `gorm:"default:false;index" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
