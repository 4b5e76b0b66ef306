package models

import "time"

// Shipment is a tracked package. Rows are keyed by AWB number and are
// never hard-deleted.
type Shipment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	AWBNumber       string    `json:"awb_number" gorm:"column:awb_number;size:64;uniqueIndex;not null"`
	CurrentStatus   string    `json:"current_status" gorm:"size:32;index;not null"`
	SenderName      string    `json:"sender_name" gorm:"size:255"`
	SenderAddress   string    `json:"sender_address" gorm:"size:500"`
	SenderPhone     string    `json:"sender_phone" gorm:"size:32"`
	ReceiverName    string    `json:"receiver_name" gorm:"size:255"`
	ReceiverAddress string    `json:"receiver_address" gorm:"size:500"`
	ReceiverPhone   string    `json:"receiver_phone" gorm:"size:32"`
	WeightKg        float64   `json:"weight" gorm:"column:weight"`
	Dimensions      string    `json:"dimensions" gorm:"size:32"`
	ServiceType     string    `json:"service_type" gorm:"size:32"`
	CourierID       *uint     `json:"courier_id" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName keeps the upstream table name.
func (Shipment) TableName() string {
	return "shipments"
}
