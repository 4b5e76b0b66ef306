package models

import "time"

// ManifestEntry is a row in the central manifest. The tracking API
// only reads this table; rows are produced by the central system.
type ManifestEntry struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	AWBNo          string    `json:"awb_no" gorm:"column:awb_no;size:64;index;not null"`
	NamaPengirim   string    `json:"nama_pengirim" gorm:"size:255"`
	AlamatPengirim string    `json:"alamat_pengirim" gorm:"size:500"`
	NoPengirim     string    `json:"no_pengirim" gorm:"size:32"`
	NamaPenerima   string    `json:"nama_penerima" gorm:"size:255"`
	AlamatPenerima string    `json:"alamat_penerima" gorm:"size:500"`
	NoPenerima     string    `json:"no_penerima" gorm:"size:32"`
	BeratKg        float64   `json:"berat_kg" gorm:"column:berat_kg"`
	Coli           int       `json:"coli"`
	Kirim          string    `json:"kirim" gorm:"size:32"`
	OriginBranch   string    `json:"origin_branch" gorm:"size:64;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName keeps the upstream table name.
func (ManifestEntry) TableName() string {
	return "manifest"
}

// BranchManifestEntry is a row in the branch manifest. Besides rows
// mirrored from branch operations it also receives a row for every
// verified agent booking.
type BranchManifestEntry struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	AWBNo           string    `json:"awb_no" gorm:"column:awb_no;size:64;index;not null"`
	NamaPengirim    string    `json:"nama_pengirim" gorm:"size:255"`
	AlamatPengirim  string    `json:"alamat_pengirim" gorm:"size:500"`
	NoPengirim      string    `json:"no_pengirim" gorm:"size:32"`
	NamaPenerima    string    `json:"nama_penerima" gorm:"size:255"`
	AlamatPenerima  string    `json:"alamat_penerima" gorm:"size:500"`
	NoPenerima      string    `json:"no_penerima" gorm:"size:32"`
	BeratKg         Money     `json:"berat_kg" gorm:"column:berat_kg;type:decimal(12,2)"`
	Coli            int       `json:"coli"`
	HargaPerKg      Money     `json:"harga_per_kg" gorm:"column:harga_per_kg;type:decimal(12,2)"`
	SubTotal        Money     `json:"sub_total" gorm:"column:sub_total;type:decimal(12,2)"`
	BiayaAdmin      Money     `json:"biaya_admin" gorm:"column:biaya_admin;type:decimal(12,2)"`
	BiayaPackaging  Money     `json:"biaya_packaging" gorm:"column:biaya_packaging;type:decimal(12,2)"`
	BiayaTransit    Money     `json:"biaya_transit" gorm:"column:biaya_transit;type:decimal(12,2)"`
	Total           Money     `json:"total" gorm:"column:total;type:decimal(12,2)"`
	Buktimembayar   bool      `json:"buktimembayar" gorm:"column:buktimembayar"`
	Potongan        Money     `json:"potongan" gorm:"column:potongan;type:decimal(12,2)"`
	StatusPelunasan string    `json:"status_pelunasan" gorm:"column:status_pelunasan;size:32"`
	OriginBranch    string    `json:"origin_branch" gorm:"size:64;index"`
	Kirim           string    `json:"kirim" gorm:"size:32"`
	Catatan         string    `json:"catatan" gorm:"size:500"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName keeps the upstream table name.
func (BranchManifestEntry) TableName() string {
	return "manifest_cabang"
}
