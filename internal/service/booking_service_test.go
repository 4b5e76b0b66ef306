package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/repository"

	"gorm.io/gorm"
)

func newBookingTestService(t *testing.T, db *gorm.DB) *BookingService {
	t.Helper()
	return NewBookingService(
		&config.Config{},
		repository.NewBookingRepository(db),
		repository.NewManifestRepository(db),
	)
}

func intPtr(v int) *int { return &v }

func moneyPtr(v int64) *models.Money {
	m := models.NewMoneyFromInt(v)
	return &m
}

func seedPendingBooking(t *testing.T, db *gorm.DB, awbNo, branch string) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		AWBNo:        awbNo,
		NamaPengirim: "Agen Cikini",
		NamaPenerima: "Siti Rahma",
		Status:       constants.BookingStatusPending,
		OriginBranch: branch,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	return booking
}

func TestVerifyComputesTotalsAndWritesManifest(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	booking := seedPendingBooking(t, db, "BE500", "JAKARTA")

	input := VerifyBookingInput{
		Coli:           intPtr(2),
		BeratKg:        moneyPtr(2),
		HargaPerKg:     moneyPtr(15000),
		BiayaAdmin:     moneyPtr(5000),
		BiayaPackaging: moneyPtr(2000),
		BiayaTransit:   moneyPtr(3000),
		VerifiedBy:     "admin",
	}
	verified, err := svc.Verify(context.Background(), booking.ID, input, BookingScope{Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Status != constants.BookingStatusVerified {
		t.Fatalf("expected verified, got %s", verified.Status)
	}
	if verified.SubTotal.String() != "30000.00" {
		t.Fatalf("expected sub_total 30000.00, got %s", verified.SubTotal)
	}
	if verified.Total.String() != "40000.00" {
		t.Fatalf("expected total 40000.00, got %s", verified.Total)
	}
	if verified.VerifiedTime == nil {
		t.Fatalf("expected verified_time set")
	}

	var entry models.BranchManifestEntry
	if err := db.Where("awb_no = ?", "BE500").First(&entry).Error; err != nil {
		t.Fatalf("manifest row missing: %v", err)
	}
	if entry.Buktimembayar {
		t.Fatalf("expected unpaid manifest row")
	}
	if entry.StatusPelunasan != constants.SettlementStatusOutstanding {
		t.Fatalf("expected outstanding settlement, got %s", entry.StatusPelunasan)
	}
	if entry.Potongan.String() != "0.00" {
		t.Fatalf("expected zero potongan, got %s", entry.Potongan)
	}
	if entry.Catatan != "Verified from agent booking BE500" {
		t.Fatalf("unexpected catatan: %q", entry.Catatan)
	}
	if entry.Total.String() != "40000.00" {
		t.Fatalf("expected manifest total 40000.00, got %s", entry.Total)
	}
}

func TestVerifyKeepsBookingValuesForOmittedFields(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	booking := &models.Booking{
		AWBNo:        "BE506",
		NamaPengirim: "Agen Maju",
		NamaPenerima: "Budi Santoso",
		Status:       constants.BookingStatusPending,
		OriginBranch: "JAKARTA",
		Coli:         3,
		BeratKg:      models.NewMoneyFromInt(4),
		HargaPerKg:   models.NewMoneyFromInt(12000),
		BiayaAdmin:   models.NewMoneyFromInt(2000),
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// The verifier only corrects the rate; everything else stays as the
	// agent entered it.
	input := VerifyBookingInput{
		HargaPerKg: moneyPtr(15000),
		VerifiedBy: "admin",
	}
	verified, err := svc.Verify(context.Background(), booking.ID, input, BookingScope{Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if verified.Coli != 3 {
		t.Fatalf("expected coli 3, got %d", verified.Coli)
	}
	if verified.BeratKg.String() != "4.00" {
		t.Fatalf("expected berat_kg 4.00, got %s", verified.BeratKg)
	}
	if verified.SubTotal.String() != "60000.00" {
		t.Fatalf("expected sub_total 60000.00, got %s", verified.SubTotal)
	}
	if verified.Total.String() != "62000.00" {
		t.Fatalf("expected total 62000.00, got %s", verified.Total)
	}

	var entry models.BranchManifestEntry
	if err := db.Where("awb_no = ?", "BE506").First(&entry).Error; err != nil {
		t.Fatalf("manifest row missing: %v", err)
	}
	if entry.BiayaAdmin.String() != "2000.00" {
		t.Fatalf("expected manifest biaya_admin 2000.00, got %s", entry.BiayaAdmin)
	}
	if entry.Coli != 3 {
		t.Fatalf("expected manifest coli 3, got %d", entry.Coli)
	}
}

func TestVerifyIsExactlyOnce(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	booking := seedPendingBooking(t, db, "BE501", "JAKARTA")

	input := VerifyBookingInput{
		Coli:       intPtr(1),
		BeratKg:    moneyPtr(1),
		HargaPerKg: moneyPtr(10000),
	}
	scope := BookingScope{Role: constants.RoleAdmin}
	if _, err := svc.Verify(context.Background(), booking.ID, input, scope); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	if _, err := svc.Verify(context.Background(), booking.ID, input, scope); !errors.Is(err, ErrBookingAlreadyResolved) {
		t.Fatalf("expected ErrBookingAlreadyResolved, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), booking.ID, "sudah diverifikasi", scope, "admin"); !errors.Is(err, ErrBookingAlreadyResolved) {
		t.Fatalf("expected ErrBookingAlreadyResolved on reject, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	booking := seedPendingBooking(t, db, "BE502", "JAKARTA")

	if _, err := svc.Reject(context.Background(), booking.ID, "   ", BookingScope{Role: constants.RoleAdmin}, "admin"); !errors.Is(err, ErrRejectReasonRequired) {
		t.Fatalf("expected ErrRejectReasonRequired, got %v", err)
	}

	var fresh models.Booking
	db.First(&fresh, booking.ID)
	if fresh.Status != constants.BookingStatusPending {
		t.Fatalf("expected booking untouched, got %s", fresh.Status)
	}
}

func TestRejectMarksBookingWithoutManifestRow(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	booking := seedPendingBooking(t, db, "BE503", "JAKARTA")

	rejected, err := svc.Reject(context.Background(), booking.ID, "alamat tidak lengkap", BookingScope{Role: constants.RoleAdmin}, "admin")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != constants.BookingStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	if rejected.Catatan != "DITOLAK: alamat tidak lengkap" {
		t.Fatalf("unexpected catatan: %q", rejected.Catatan)
	}
	if rejected.VerifiedTime == nil {
		t.Fatalf("expected verified_time set on rejection")
	}

	var count int64
	db.Model(&models.BranchManifestEntry{}).Where("awb_no = ?", "BE503").Count(&count)
	if count != 0 {
		t.Fatalf("expected no manifest row after rejection, got %d", count)
	}
}

func TestBranchScopeHidesOtherBranches(t *testing.T) {
	db := newSvcDB(t)
	svc := newBookingTestService(t, db)
	seedPendingBooking(t, db, "BE504", "JAKARTA")
	other := seedPendingBooking(t, db, "BE505", "BANDUNG")

	scope := BookingScope{Role: constants.RoleCabang, OriginBranch: "JAKARTA"}

	bookings, total, err := svc.ListPending(context.Background(), scope, 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(bookings) != 1 || bookings[0].AWBNo != "BE504" {
		t.Fatalf("expected only own-branch booking, got total=%d %+v", total, bookings)
	}

	if _, err := svc.FindPendingByAWB(context.Background(), "BE505", scope); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for other branch, got %v", err)
	}
	if _, err := svc.Verify(context.Background(), other.ID, VerifyBookingInput{}, scope); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound on verify, got %v", err)
	}

	adminScope := BookingScope{Role: constants.RoleAdmin}
	if _, err := svc.FindPendingByAWB(context.Background(), "BE505", adminScope); err != nil {
		t.Fatalf("admin should see every branch: %v", err)
	}
}
