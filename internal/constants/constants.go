package constants

// Shipment status constants
const (
	ShipmentStatusProcessed      = "processed"
	ShipmentStatusShipped        = "shipped"
	ShipmentStatusInTransit      = "in_transit"
	ShipmentStatusOutForDelivery = "out_for_delivery"
	ShipmentStatusDelivered      = "delivered"
	ShipmentStatusException      = "exception"
)

// ShipmentStatuses lists every accepted shipment status.
var ShipmentStatuses = []string{
	ShipmentStatusProcessed,
	ShipmentStatusShipped,
	ShipmentStatusInTransit,
	ShipmentStatusOutForDelivery,
	ShipmentStatusDelivered,
	ShipmentStatusException,
}

// IsValidShipmentStatus reports whether the given status is accepted.
func IsValidShipmentStatus(status string) bool {
	for _, s := range ShipmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Booking status constants
const (
	BookingStatusPending  = "pending"
	BookingStatusVerified = "verified"
	BookingStatusRejected = "rejected"
)

// Payment settlement status constants (branch manifest)
const (
	SettlementStatusOutstanding = "outstanding"
	SettlementStatusLunas       = "lunas"
)

// Account role constants
const (
	RoleAdmin   = "admin"
	RoleCabang  = "cabang"
	RoleCourier = "courier"
	RoleAgent   = "agent"
)

// Account status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Manifest source constants
const (
	ManifestSourceCentral = "central"
	ManifestSourceBranch  = "branch"
	ManifestSourceNone    = "none"
)

// Auto-created shipment placeholders
const (
	PlaceholderName        = "Auto Generated"
	PlaceholderWeightKg    = 1
	PlaceholderDimensions  = "10x10x10"
	PlaceholderServiceType = "Standard"
)

// Bulk scan defaults
const (
	ScanLocationSortingCenter = "Sorting Center"
)

// Branch sync scan event constants
const (
	ScanEventKeluar = "scan_keluar"
	ScanEventTTD    = "scan_ttd"
)

// Queue constants
const (
	QueueDefault          = "default"
	TaskWhatsAppDelivered = "shipment:whatsapp_delivered"
	TaskWhatsAppText      = "shipment:whatsapp_text"
	TaskBranchSyncScan    = "shipment:branch_sync_scan"
)

// Cache key prefix defaults
const (
	RedisPrefixDefault = "bce"
)

// Captcha provider constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Site locale constants
const (
	LocaleIDID = "id-ID"
	LocaleEnUS = "en-US"
)

// SupportedLocales lists locales in fallback order.
var SupportedLocales = []string{LocaleIDID, LocaleEnUS}
