package repository

import "time"

// BookingListFilter filters the pending booking list.
type BookingListFilter struct {
	Page         int
	PageSize     int
	Status       string
	AWBNo        string
	OriginBranch string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// ShipmentListFilter filters shipment lookups.
type ShipmentListFilter struct {
	Page      int
	PageSize  int
	Status    string
	CourierID uint
	Search    string
}
