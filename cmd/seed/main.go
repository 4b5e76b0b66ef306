package main

import (
	"fmt"

	"github.com/bcexpress/tracking-api/internal/authz"
	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz service: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap builtin roles: %v", err)
	}

	// Staff accounts. Couriers and agents authenticate with JWT only and
	// never hit the casbin enforcer, so only staff get role bindings.
	users := []struct {
		Username     string
		Name         string
		Password     string
		Role         string
		OriginBranch string
		Phone        string
		IsSuper      bool
		AuthzRoles   []string
	}{
		{Username: "admin", Name: "Administrator", Password: "admin123", Role: constants.RoleAdmin, IsSuper: true, AuthzRoles: []string{"admin"}},
		{Username: "cabang.jakarta", Name: "Cabang Jakarta", Password: "cabang123", Role: constants.RoleCabang, OriginBranch: "JAKARTA", Phone: "6281200010001", AuthzRoles: []string{"cabang"}},
		{Username: "cabang.surabaya", Name: "Cabang Surabaya", Password: "cabang123", Role: constants.RoleCabang, OriginBranch: "SURABAYA", Phone: "6281200010002", AuthzRoles: []string{"cabang"}},
		{Username: "kurir.budi", Name: "Budi Santoso", Password: "kurir123", Role: constants.RoleCourier, OriginBranch: "JAKARTA", Phone: "6281200020001"},
		{Username: "agen.maju", Name: "Agen Maju Jaya", Password: "agen123", Role: constants.RoleAgent, OriginBranch: "JAKARTA", Phone: "6281200030001"},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("username = ?", u.Username).First(&existing).Error; err != nil {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				stdLog.Printf("Failed to hash password for %s: %v", u.Username, hashErr)
				continue
			}
			existing = models.User{
				Username:     u.Username,
				Name:         u.Name,
				PasswordHash: string(hash),
				Role:         u.Role,
				OriginBranch: u.OriginBranch,
				Phone:        u.Phone,
				Status:       constants.UserStatusActive,
				IsSuper:      u.IsSuper,
			}
			if err := models.DB.Create(&existing).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Username, err)
				continue
			}
			stdLog.Printf("Created user: %s (%s)", u.Username, u.Role)
		} else {
			stdLog.Printf("User already exists: %s", u.Username)
		}
		userIDs[u.Username] = existing.ID

		if len(u.AuthzRoles) > 0 {
			if err := authzService.SetUserRoles(existing.ID, u.AuthzRoles); err != nil {
				stdLog.Printf("Failed to bind roles for %s: %v", u.Username, err)
			}
		}
	}

	courierID := userIDs["kurir.budi"]

	// Shipments in various lifecycle stages, with matching history rows.
	shipments := []struct {
		Shipment models.Shipment
		History  []models.ShipmentHistory
	}{
		{
			Shipment: models.Shipment{
				AWBNumber:       "BCE2026010001",
				CurrentStatus:   constants.ShipmentStatusDelivered,
				SenderName:      "Toko Sinar Abadi",
				SenderAddress:   "Jl. Mangga Besar No. 12, Jakarta Barat",
				SenderPhone:     "6281311110001",
				ReceiverName:    "Siti Rahma",
				ReceiverAddress: "Jl. Diponegoro No. 45, Surabaya",
				ReceiverPhone:   "6281311110002",
				WeightKg:        2.5,
				Dimensions:      "30x20x15",
				ServiceType:     "Express",
				CourierID:       &courierID,
			},
			History: []models.ShipmentHistory{
				{Status: constants.ShipmentStatusProcessed, Location: "Jakarta Hub", Notes: "Paket diterima di gudang"},
				{Status: constants.ShipmentStatusInTransit, Location: "Surabaya Hub", Notes: "Dalam perjalanan ke kota tujuan"},
				{Status: constants.ShipmentStatusOutForDelivery, Location: "Surabaya", Notes: "Kurir menuju alamat penerima"},
				{Status: constants.ShipmentStatusDelivered, Location: "Surabaya", Notes: "Diterima oleh Siti Rahma"},
			},
		},
		{
			Shipment: models.Shipment{
				AWBNumber:       "BCE2026010002",
				CurrentStatus:   constants.ShipmentStatusInTransit,
				SenderName:      "CV Berkah Logistik",
				SenderAddress:   "Jl. Gatot Subroto Km 4, Jakarta Selatan",
				SenderPhone:     "6281311110003",
				ReceiverName:    "Andi Wijaya",
				ReceiverAddress: "Jl. Ahmad Yani No. 8, Medan",
				ReceiverPhone:   "6281311110004",
				WeightKg:        12,
				Dimensions:      "60x40x40",
				ServiceType:     "Cargo",
			},
			History: []models.ShipmentHistory{
				{Status: constants.ShipmentStatusProcessed, Location: "Jakarta Hub", Notes: "Paket diterima di gudang"},
				{Status: constants.ShipmentStatusInTransit, Location: "Jakarta Hub", Notes: "Berangkat menuju Medan"},
			},
		},
		{
			Shipment: models.Shipment{
				AWBNumber:       "BCE2026010003",
				CurrentStatus:   constants.ShipmentStatusProcessed,
				SenderName:      "Agen Maju Jaya",
				SenderAddress:   "Jl. Kebon Jeruk Raya No. 3, Jakarta Barat",
				SenderPhone:     "6281200030001",
				ReceiverName:    "Dewi Lestari",
				ReceiverAddress: "Jl. Malioboro No. 21, Yogyakarta",
				ReceiverPhone:   "6281311110005",
				WeightKg:        1,
				Dimensions:      "20x15x10",
				ServiceType:     "Standard",
			},
			History: []models.ShipmentHistory{
				{Status: constants.ShipmentStatusProcessed, Location: "Jakarta Hub", Notes: "Paket diterima di gudang"},
			},
		},
	}

	for _, plan := range shipments {
		var existing models.Shipment
		if err := models.DB.Where("awb_number = ?", plan.Shipment.AWBNumber).First(&existing).Error; err != nil {
			if err := models.DB.Create(&plan.Shipment).Error; err != nil {
				stdLog.Printf("Failed to create shipment %s: %v", plan.Shipment.AWBNumber, err)
				continue
			}
			stdLog.Printf("Created shipment: %s", plan.Shipment.AWBNumber)
		} else {
			stdLog.Printf("Shipment already exists: %s", plan.Shipment.AWBNumber)
		}

		for _, h := range plan.History {
			h.AWBNumber = plan.Shipment.AWBNumber
			var existingHistory models.ShipmentHistory
			if err := models.DB.Where("awb_number = ? AND status = ?", h.AWBNumber, h.Status).First(&existingHistory).Error; err != nil {
				if err := models.DB.Create(&h).Error; err != nil {
					stdLog.Printf("Failed to create history %s/%s: %v", h.AWBNumber, h.Status, err)
				}
			}
		}
	}

	// Central manifest rows matching the shipments above.
	manifestEntries := []models.ManifestEntry{
		{
			AWBNo:          "BCE2026010001",
			NamaPengirim:   "Toko Sinar Abadi",
			AlamatPengirim: "Jl. Mangga Besar No. 12, Jakarta Barat",
			NoPengirim:     "6281311110001",
			NamaPenerima:   "Siti Rahma",
			AlamatPenerima: "Jl. Diponegoro No. 45, Surabaya",
			NoPenerima:     "6281311110002",
			BeratKg:        2.5,
			Coli:           1,
			Kirim:          "Express",
			OriginBranch:   "JAKARTA",
		},
		{
			AWBNo:          "BCE2026010002",
			NamaPengirim:   "CV Berkah Logistik",
			AlamatPengirim: "Jl. Gatot Subroto Km 4, Jakarta Selatan",
			NoPengirim:     "6281311110003",
			NamaPenerima:   "Andi Wijaya",
			AlamatPenerima: "Jl. Ahmad Yani No. 8, Medan",
			NoPenerima:     "6281311110004",
			BeratKg:        12,
			Coli:           3,
			Kirim:          "Cargo",
			OriginBranch:   "JAKARTA",
		},
	}

	for _, entry := range manifestEntries {
		var existing models.ManifestEntry
		if err := models.DB.Where("awb_no = ?", entry.AWBNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&entry).Error; err != nil {
				stdLog.Printf("Failed to create manifest entry %s: %v", entry.AWBNo, err)
			} else {
				stdLog.Printf("Created manifest entry: %s", entry.AWBNo)
			}
		} else {
			stdLog.Printf("Manifest entry already exists: %s", entry.AWBNo)
		}
	}

	// Branch manifest row for a shipment booked through a branch office.
	branchEntries := []models.BranchManifestEntry{
		{
			AWBNo:           "BCE2026010003",
			NamaPengirim:    "Agen Maju Jaya",
			AlamatPengirim:  "Jl. Kebon Jeruk Raya No. 3, Jakarta Barat",
			NoPengirim:      "6281200030001",
			NamaPenerima:    "Dewi Lestari",
			AlamatPenerima:  "Jl. Malioboro No. 21, Yogyakarta",
			NoPenerima:      "6281311110005",
			BeratKg:         models.NewMoneyFromDecimal(decimal.NewFromFloat(1)),
			Coli:            1,
			HargaPerKg:      models.NewMoneyFromDecimal(decimal.NewFromInt(15000)),
			SubTotal:        models.NewMoneyFromDecimal(decimal.NewFromInt(15000)),
			BiayaAdmin:      models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			BiayaPackaging:  models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			BiayaTransit:    models.NewMoneyFromDecimal(decimal.NewFromInt(0)),
			Total:           models.NewMoneyFromDecimal(decimal.NewFromInt(22000)),
			StatusPelunasan: constants.SettlementStatusLunas,
			OriginBranch:    "JAKARTA",
			Kirim:           "Standard",
		},
	}

	for _, entry := range branchEntries {
		var existing models.BranchManifestEntry
		if err := models.DB.Where("awb_no = ?", entry.AWBNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&entry).Error; err != nil {
				stdLog.Printf("Failed to create branch manifest entry %s: %v", entry.AWBNo, err)
			} else {
				stdLog.Printf("Created branch manifest entry: %s", entry.AWBNo)
			}
		} else {
			stdLog.Printf("Branch manifest entry already exists: %s", entry.AWBNo)
		}
	}

	// Pending agent bookings waiting for branch verification.
	agentID := userIDs["agen.maju"]
	bookings := []models.Booking{
		{
			AWBNo:          "BCE2026020001",
			AgentID:        &agentID,
			AgentName:      "Agen Maju Jaya",
			NamaPengirim:   "Rudi Hartono",
			AlamatPengirim: "Jl. Palmerah Barat No. 7, Jakarta Barat",
			NoPengirim:     "6281311120001",
			NamaPenerima:   "Lina Kusuma",
			AlamatPenerima: "Jl. Pemuda No. 30, Semarang",
			NoPenerima:     "6281311120002",
			Coli:           2,
			BeratKg:        models.NewMoneyFromDecimal(decimal.NewFromFloat(4.5)),
			HargaPerKg:     models.NewMoneyFromDecimal(decimal.NewFromInt(12000)),
			SubTotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(54000)),
			BiayaAdmin:     models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			BiayaPackaging: models.NewMoneyFromDecimal(decimal.NewFromInt(0)),
			BiayaTransit:   models.NewMoneyFromDecimal(decimal.NewFromInt(0)),
			Total:          models.NewMoneyFromDecimal(decimal.NewFromInt(56000)),
			Kirim:          "Standard",
			Status:         constants.BookingStatusPending,
			OriginBranch:   "JAKARTA",
		},
		{
			AWBNo:          "BCE2026020002",
			AgentID:        &agentID,
			AgentName:      "Agen Maju Jaya",
			NamaPengirim:   "PT Sumber Rejeki",
			AlamatPengirim: "Jl. Daan Mogot Km 11, Jakarta Barat",
			NoPengirim:     "6281311120003",
			NamaPenerima:   "Hendra Gunawan",
			AlamatPenerima: "Jl. Veteran No. 5, Bandung",
			NoPenerima:     "6281311120004",
			Coli:           1,
			BeratKg:        models.NewMoneyFromDecimal(decimal.NewFromFloat(8)),
			HargaPerKg:     models.NewMoneyFromDecimal(decimal.NewFromInt(10000)),
			SubTotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(80000)),
			BiayaAdmin:     models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			BiayaPackaging: models.NewMoneyFromDecimal(decimal.NewFromInt(8000)),
			BiayaTransit:   models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			Total:          models.NewMoneyFromDecimal(decimal.NewFromInt(95000)),
			Kirim:          "Cargo",
			Status:         constants.BookingStatusPending,
			OriginBranch:   "JAKARTA",
		},
	}

	for _, booking := range bookings {
		var existing models.Booking
		if err := models.DB.Where("awb_no = ?", booking.AWBNo).First(&existing).Error; err != nil {
			if err := models.DB.Create(&booking).Error; err != nil {
				stdLog.Printf("Failed to create booking %s: %v", booking.AWBNo, err)
			} else {
				stdLog.Printf("Created booking: %s", booking.AWBNo)
			}
		} else {
			stdLog.Printf("Booking already exists: %s", booking.AWBNo)
		}
	}

	fmt.Println("\nSeed data ready.")
	fmt.Println("Summary:")
	fmt.Println("- 5 users (admin, 2 branch staff, courier, agent)")
	fmt.Println("- 3 shipments with history")
	fmt.Println("- 2 central manifest entries, 1 branch manifest entry")
	fmt.Println("- 2 pending agent bookings")
}
