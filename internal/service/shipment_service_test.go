package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Shipment{},
		&models.ShipmentHistory{},
		&models.ManifestEntry{},
		&models.BranchManifestEntry{},
		&models.Booking{},
	); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func newShipmentTestService(t *testing.T, db *gorm.DB) *ShipmentService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Shipment.OpTimeoutSeconds = 15
	cfg.Shipment.DefaultServiceType = "Standard"
	queueClient, _ := queue.NewClient(nil)
	branchSync := NewBranchSyncService(config.BranchSyncConfig{AWBPrefix: "BE"})
	return NewShipmentService(
		cfg,
		repository.NewShipmentRepository(db),
		repository.NewShipmentHistoryRepository(db),
		repository.NewManifestRepository(db),
		queueClient,
		branchSync,
	)
}

func TestUpdateStatusRequiresFields(t *testing.T) {
	svc := newShipmentTestService(t, newSvcDB(t))

	cases := []UpdateStatusInput{
		{Status: "delivered", Location: "Jakarta"},
		{AWBNumber: "BE1", Location: "Jakarta"},
		{AWBNumber: "BE1", Status: "delivered"},
	}
	for _, input := range cases {
		if _, err := svc.UpdateStatus(context.Background(), input); !errors.Is(err, ErrFieldsRequired) {
			t.Fatalf("expected ErrFieldsRequired for %+v, got %v", input, err)
		}
	}

	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "BE1", Status: "teleported", Location: "Jakarta",
	}); !errors.Is(err, ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
}

func TestUpdateStatusCoordinatesBothOrNeither(t *testing.T) {
	svc := newShipmentTestService(t, newSvcDB(t))
	lat := -6.2

	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "BE2", Status: "in_transit", Location: "Jakarta", Latitude: &lat,
	}); !errors.Is(err, ErrCoordinatesInvalid) {
		t.Fatalf("expected ErrCoordinatesInvalid, got %v", err)
	}

	lng := 106.8
	if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "BE2", Status: "in_transit", Location: "Jakarta", Latitude: &lat, Longitude: &lng,
	}); err != nil {
		t.Fatalf("expected both coordinates to pass, got %v", err)
	}
}

func TestUpdateStatusAutoCreatesFromCentralManifest(t *testing.T) {
	db := newSvcDB(t)
	svc := newShipmentTestService(t, db)

	db.Create(&models.ManifestEntry{
		AWBNo:        "BE300",
		NamaPengirim: "Toko Sumber Rejeki",
		NamaPenerima: "Budi Santoso",
		BeratKg:      4.5,
		OriginBranch: "JAKARTA",
	})
	// A branch row for the same AWB must lose to the central row.
	db.Create(&models.BranchManifestEntry{
		AWBNo:        "BE300",
		NamaPengirim: "Cabang Bandung",
	})

	shipment, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "be300", Status: "in_transit", Location: "Jakarta Hub", UpdatedBy: "kurniawan",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if shipment.SenderName != "Toko Sumber Rejeki" {
		t.Fatalf("expected central manifest detail, got %q", shipment.SenderName)
	}
	if shipment.WeightKg != 4.5 {
		t.Fatalf("expected manifest weight, got %v", shipment.WeightKg)
	}
	if shipment.CurrentStatus != "in_transit" {
		t.Fatalf("expected in_transit, got %s", shipment.CurrentStatus)
	}

	var history []models.ShipmentHistory
	db.Where("awb_number = ?", "BE300").Find(&history)
	if len(history) != 1 {
		t.Fatalf("expected one history row, got %d", len(history))
	}
	if history[0].Notes != "Updated by kurniawan" {
		t.Fatalf("expected annotated notes, got %q", history[0].Notes)
	}
}

func TestUpdateStatusFallsBackToBranchThenPlaceholder(t *testing.T) {
	db := newSvcDB(t)
	svc := newShipmentTestService(t, db)

	db.Create(&models.BranchManifestEntry{
		AWBNo:        "BE301",
		NamaPengirim: "Cabang Bandung",
		BeratKg:      models.NewMoneyFromInt(3),
	})

	fromBranch, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "BE301", Status: "processed", Location: "Bandung",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if fromBranch.SenderName != "Cabang Bandung" {
		t.Fatalf("expected branch manifest detail, got %q", fromBranch.SenderName)
	}

	placeholder, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		AWBNumber: "BE302", Status: "processed", Location: "Bandung",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if placeholder.SenderName != constants.PlaceholderName {
		t.Fatalf("expected placeholder sender, got %q", placeholder.SenderName)
	}
	if placeholder.WeightKg != constants.PlaceholderWeightKg {
		t.Fatalf("expected placeholder weight, got %v", placeholder.WeightKg)
	}
}

func TestUpdateStatusToleratesReplayedHistory(t *testing.T) {
	db := newSvcDB(t)
	svc := newShipmentTestService(t, db)

	for i := 0; i < 2; i++ {
		if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			AWBNumber: "BE303", Status: "delivered", Location: "Jakarta", UpdatedBy: "dewi",
		}); err != nil {
			t.Fatalf("attempt %d failed: %v", i, err)
		}
	}

	var count int64
	db.Model(&models.ShipmentHistory{}).Where("awb_number = ?", "BE303").Count(&count)
	if count != 1 {
		t.Fatalf("expected a single history row, got %d", count)
	}
}

func TestTrackReturnsOrderedTrail(t *testing.T) {
	db := newSvcDB(t)
	svc := newShipmentTestService(t, db)

	for _, status := range []string{"processed", "in_transit", "delivered"} {
		if _, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
			AWBNumber: "BE304", Status: status, Location: "Jakarta",
		}); err != nil {
			t.Fatalf("seed update failed: %v", err)
		}
	}

	shipment, history, err := svc.Track(context.Background(), "BE304")
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if shipment.CurrentStatus != "delivered" {
		t.Fatalf("expected delivered, got %s", shipment.CurrentStatus)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history rows, got %d", len(history))
	}
	if history[0].Status != "processed" || history[2].Status != "delivered" {
		t.Fatalf("expected oldest-first ordering, got %+v", history)
	}

	if _, _, err := svc.Track(context.Background(), "BE999"); !errors.Is(err, ErrShipmentNotFound) {
		t.Fatalf("expected ErrShipmentNotFound, got %v", err)
	}
}

func TestAnnotateNotes(t *testing.T) {
	if got := annotateNotes("", "dewi"); got != "Updated by dewi" {
		t.Fatalf("unexpected annotation: %q", got)
	}
	if got := annotateNotes("left at door", "dewi"); got != "left at door - Updated by dewi" {
		t.Fatalf("unexpected annotation: %q", got)
	}
	if got := annotateNotes("left at door", ""); got != "left at door" {
		t.Fatalf("unexpected annotation: %q", got)
	}
}
