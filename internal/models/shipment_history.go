package models

import "time"

// ShipmentHistory is an append-only audit row for a shipment. The
// unique index on (awb_number, status) makes repeated inserts for the
// same status surface as a duplicate-key error, which callers may
// treat as already recorded.
type ShipmentHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AWBNumber string    `json:"awb_number" gorm:"column:awb_number;size:64;uniqueIndex:idx_history_awb_status;not null"`
	Status    string    `json:"status" gorm:"size:32;uniqueIndex:idx_history_awb_status;not null"`
	Location  string    `json:"location" gorm:"size:255"`
	Notes     string    `json:"notes" gorm:"size:1000"`
	PhotoURL  *string   `json:"photo_url" gorm:"size:500"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the upstream table name.
func (ShipmentHistory) TableName() string {
	return "shipment_history"
}
