package models

import "time"

// ReservationSnapshot is copied from the product and store at booking time
// and never refreshed afterwards.
type ReservationSnapshot struct {
	ProductName  string `gorm:"size:100" json:"product_name"`
	Brand        string `gorm:"size:50" json:"brand"`
	ModelName    string `gorm:"size:100" json:"model_name"`
	Storage      string `gorm:"size:20" json:"storage"`
	Color        string `gorm:"size:30" json:"color"`
	Price        int64  `json:"price"`
	ImageURL     string `gorm:"size:512" json:"image_url"`
	StoreName    string `gorm:"size:100" json:"store_name"`
	StoreAddress string `gorm:"size:255" json:"store_address"`
	StorePhone   string `gorm:"size:20" json:"store_phone"`
}

type Reservation struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:12;uniqueIndex;not null" json:"code"`

	StoreID   uint  `gorm:"index:idx_reservations_store_date;not null" json:"store_id"`
	ProductID *uint `gorm:"index" json:"product_id"`
	UserID    uint  `gorm:"index;not null" json:"user_id"`

	ReservationDate string `gorm:"size:10;index:idx_reservations_store_date;not null" json:"reservation_date"`
	ReservationTime string `gorm:"size:5;not null" json:"reservation_time"`
	Status          string `gorm:"size:20;default:'pending';index" json:"status"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	Memo          string `gorm:"size:255" json:"memo"`
	CancelReason  string `gorm:"size:255" json:"cancel_reason,omitempty"`

	Snapshot ReservationSnapshot `gorm:"embedded;embeddedPrefix:snapshot_" json:"snapshot"`

	ConfirmedAt       *time.Time `json:"confirmed_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	CancelRequestedAt *time.Time `json:"cancel_requested_at"`
	CancelledAt       *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
