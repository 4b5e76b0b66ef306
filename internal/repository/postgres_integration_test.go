//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.ShipmentHistory{},
		&models.Shipment{},
		&models.Booking{},
		&models.BranchManifestEntry{},
		&models.ManifestEntry{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Shipment{},
		&models.ShipmentHistory{},
		&models.Booking{},
		&models.ManifestEntry{},
		&models.BranchManifestEntry{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresShipmentSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	repo := NewShipmentRepository(db)

	if err := repo.Upsert(ctx, &models.Shipment{
		AWBNumber:     "BCE9000000001",
		CurrentStatus: constants.ShipmentStatusInTransit,
		SenderName:    "Toko Sinar Abadi",
		ReceiverName:  "Siti Rahma",
	}); err != nil {
		t.Fatalf("upsert shipment failed: %v", err)
	}

	rows, total, err := repo.List(ctx, ShipmentListFilter{Page: 1, PageSize: 10, Search: "siti"})
	if err != nil {
		t.Fatalf("list by lowercase receiver failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("lowercase search want 1 row got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ctx, ShipmentListFilter{Page: 1, PageSize: 10, Search: "bce900"})
	if err != nil {
		t.Fatalf("list by awb fragment failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("awb search want 1 row got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresHistoryDuplicateStatus(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	repo := NewShipmentHistoryRepository(db)

	entry := &models.ShipmentHistory{
		AWBNumber: "BCE9000000002",
		Status:    constants.ShipmentStatusProcessed,
		Location:  "Jakarta Hub",
	}
	if err := repo.Append(ctx, entry); err != nil {
		t.Fatalf("first append failed: %v", err)
	}

	dup := &models.ShipmentHistory{
		AWBNumber: "BCE9000000002",
		Status:    constants.ShipmentStatusProcessed,
		Location:  "Jakarta Hub",
	}
	if err := repo.Append(ctx, dup); err == nil {
		t.Fatalf("duplicate status append should fail on the unique index")
	}

	exists, err := repo.ExistsForStatus(ctx, "BCE9000000002", constants.ShipmentStatusProcessed)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatalf("history row should exist after first append")
	}
}

func TestPostgresBookingResolvePendingOnce(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)

	booking := &models.Booking{
		AWBNo:        "BCE9000000003",
		AgentName:    "Agen Maju Jaya",
		Status:       constants.BookingStatusPending,
		OriginBranch: "JAKARTA",
		BeratKg:      models.NewMoneyFromDecimal(decimal.NewFromFloat(2.5)),
		Total:        models.NewMoneyFromDecimal(decimal.NewFromInt(30000)),
	}
	if err := repo.Create(ctx, booking); err != nil {
		t.Fatalf("create booking failed: %v", err)
	}

	affected, err := repo.ResolvePending(ctx, booking.ID, map[string]interface{}{
		"status":      constants.BookingStatusVerified,
		"verified_by": "cabang.jakarta",
	})
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first resolve want 1 row got %d", affected)
	}

	affected, err = repo.ResolvePending(ctx, booking.ID, map[string]interface{}{
		"status": constants.BookingStatusRejected,
	})
	if err != nil {
		t.Fatalf("second resolve errored: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second resolve must not match, got %d rows", affected)
	}

	rows, total, err := repo.List(ctx, BookingListFilter{
		Page:         1,
		PageSize:     10,
		Status:       constants.BookingStatusVerified,
		OriginBranch: "JAKARTA",
	})
	if err != nil {
		t.Fatalf("list verified failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("verified list want 1 row got total=%d len=%d", total, len(rows))
	}
	if rows[0].VerifiedBy != "cabang.jakarta" {
		t.Fatalf("verified_by want cabang.jakarta got %s", rows[0].VerifiedBy)
	}
}
