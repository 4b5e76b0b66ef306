package models

import "time"

// Booking is an agent booking awaiting branch verification. Pending
// bookings transition exactly once to verified or rejected.
type Booking struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	AWBNo          string     `json:"awb_no" gorm:"column:awb_no;size:64;index;not null"`
	AgentID        *uint      `json:"agent_id" gorm:"index"`
	AgentName      string     `json:"agent_name" gorm:"size:255"`
	NamaPengirim   string     `json:"nama_pengirim" gorm:"size:255"`
	AlamatPengirim string     `json:"alamat_pengirim" gorm:"size:500"`
	NoPengirim     string     `json:"no_pengirim" gorm:"size:32"`
	NamaPenerima   string     `json:"nama_penerima" gorm:"size:255"`
	AlamatPenerima string     `json:"alamat_penerima" gorm:"size:500"`
	NoPenerima     string     `json:"no_penerima" gorm:"size:32"`
	Coli           int        `json:"coli"`
	BeratKg        Money      `json:"berat_kg" gorm:"column:berat_kg;type:decimal(12,2)"`
	HargaPerKg     Money      `json:"harga_per_kg" gorm:"column:harga_per_kg;type:decimal(12,2)"`
	SubTotal       Money      `json:"sub_total" gorm:"column:sub_total;type:decimal(12,2)"`
	BiayaAdmin     Money      `json:"biaya_admin" gorm:"column:biaya_admin;type:decimal(12,2)"`
	BiayaPackaging Money      `json:"biaya_packaging" gorm:"column:biaya_packaging;type:decimal(12,2)"`
	BiayaTransit   Money      `json:"biaya_transit" gorm:"column:biaya_transit;type:decimal(12,2)"`
	Total          Money      `json:"total" gorm:"column:total;type:decimal(12,2)"`
	Kirim          string     `json:"kirim" gorm:"size:32"`
	Status         string     `json:"status" gorm:"size:32;index;not null"`
	OriginBranch   string     `json:"origin_branch" gorm:"size:64;index"`
	Catatan        string     `json:"catatan" gorm:"size:500"`
	VerifiedBy     string     `json:"verified_by" gorm:"size:255"`
	VerifiedTime   *time.Time `json:"verified_time"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName keeps the upstream table name.
func (Booking) TableName() string {
	return "manifest_booking"
}
