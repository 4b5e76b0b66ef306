package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/repository"

	"github.com/shopspring/decimal"
)

// BookingScope carries the caller's role and branch. Branch-scoped
// roles only see their own branch; anything outside behaves as absent.
type BookingScope struct {
	Role         string
	OriginBranch string
}

// branchBound reports whether the scope is limited to one branch.
func (sc BookingScope) branchBound() bool {
	return sc.Role == constants.RoleCabang && strings.TrimSpace(sc.OriginBranch) != ""
}

func (sc BookingScope) covers(booking *models.Booking) bool {
	if booking == nil {
		return false
	}
	if !sc.branchBound() {
		return true
	}
	return strings.EqualFold(booking.OriginBranch, sc.OriginBranch)
}

// VerifyBookingInput carries the fields a verifier may adjust before
// accepting a booking. A nil field keeps the value the agent entered
// on the booking.
type VerifyBookingInput struct {
	Coli           *int          `json:"coli"`
	BeratKg        *models.Money `json:"berat_kg"`
	HargaPerKg     *models.Money `json:"harga_per_kg"`
	BiayaAdmin     *models.Money `json:"biaya_admin"`
	BiayaPackaging *models.Money `json:"biaya_packaging"`
	BiayaTransit   *models.Money `json:"biaya_transit"`
	VerifiedBy     string        `json:"-"`
}

// BookingService verifies and rejects agent bookings.
type BookingService struct {
	cfg          *config.Config
	bookingRepo  repository.BookingRepository
	manifestRepo repository.ManifestRepository
}

// NewBookingService builds a booking service.
func NewBookingService(
	cfg *config.Config,
	bookingRepo repository.BookingRepository,
	manifestRepo repository.ManifestRepository,
) *BookingService {
	return &BookingService{
		cfg:          cfg,
		bookingRepo:  bookingRepo,
		manifestRepo: manifestRepo,
	}
}

// ListPending returns pending bookings visible to the caller.
func (s *BookingService) ListPending(ctx context.Context, scope BookingScope, page, pageSize int) ([]models.Booking, int64, error) {
	filter := repository.BookingListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   constants.BookingStatusPending,
	}
	if scope.branchBound() {
		filter.OriginBranch = scope.OriginBranch
	}
	return s.bookingRepo.List(ctx, filter)
}

// FindPendingByAWB returns the pending booking for an AWB. A row the
// caller cannot see behaves as not found, never as forbidden.
func (s *BookingService) FindPendingByAWB(ctx context.Context, awbNo string, scope BookingScope) (*models.Booking, error) {
	awbNo = strings.ToUpper(strings.TrimSpace(awbNo))
	if awbNo == "" {
		return nil, ErrFieldsRequired
	}
	booking, err := s.bookingRepo.GetPendingByAWB(ctx, awbNo)
	if err != nil {
		return nil, err
	}
	if booking == nil || !scope.covers(booking) {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// Verify accepts a pending booking with the verifier's adjusted
// numbers and mirrors it into the branch manifest. The booking flip is
// exactly-once; a manifest insert failure after the flip is surfaced
// but never rolled back, so the operator can re-create the manifest
// row by hand.
func (s *BookingService) Verify(ctx context.Context, bookingID uint, input VerifyBookingInput, scope BookingScope) (*models.Booking, error) {
	booking, err := s.loadScoped(ctx, bookingID, scope)
	if err != nil {
		return nil, err
	}
	if booking.Status != constants.BookingStatusPending {
		return nil, ErrBookingAlreadyResolved
	}

	coli := booking.Coli
	if input.Coli != nil {
		coli = *input.Coli
	}
	beratKg := booking.BeratKg
	if input.BeratKg != nil {
		beratKg = *input.BeratKg
	}
	hargaPerKg := booking.HargaPerKg
	if input.HargaPerKg != nil {
		hargaPerKg = *input.HargaPerKg
	}
	biayaAdmin := booking.BiayaAdmin
	if input.BiayaAdmin != nil {
		biayaAdmin = *input.BiayaAdmin
	}
	biayaPackaging := booking.BiayaPackaging
	if input.BiayaPackaging != nil {
		biayaPackaging = *input.BiayaPackaging
	}
	biayaTransit := booking.BiayaTransit
	if input.BiayaTransit != nil {
		biayaTransit = *input.BiayaTransit
	}

	subTotal := models.NewMoneyFromDecimal(beratKg.Mul(hargaPerKg.Decimal))
	total := models.NewMoneyFromDecimal(
		subTotal.Add(biayaAdmin.Decimal).
			Add(biayaPackaging.Decimal).
			Add(biayaTransit.Decimal))

	now := time.Now()
	updates := map[string]interface{}{
		"status":          constants.BookingStatusVerified,
		"coli":            coli,
		"berat_kg":        beratKg,
		"harga_per_kg":    hargaPerKg,
		"sub_total":       subTotal,
		"biaya_admin":     biayaAdmin,
		"biaya_packaging": biayaPackaging,
		"biaya_transit":   biayaTransit,
		"total":           total,
		"verified_by":     strings.TrimSpace(input.VerifiedBy),
		"verified_time":   now,
	}
	rows, err := s.bookingRepo.ResolvePending(ctx, booking.ID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingAlreadyResolved
	}

	entry := &models.BranchManifestEntry{
		AWBNo:           booking.AWBNo,
		NamaPengirim:    booking.NamaPengirim,
		AlamatPengirim:  booking.AlamatPengirim,
		NoPengirim:      booking.NoPengirim,
		NamaPenerima:    booking.NamaPenerima,
		AlamatPenerima:  booking.AlamatPenerima,
		NoPenerima:      booking.NoPenerima,
		BeratKg:         beratKg,
		Coli:            coli,
		HargaPerKg:      hargaPerKg,
		SubTotal:        subTotal,
		BiayaAdmin:      biayaAdmin,
		BiayaPackaging:  biayaPackaging,
		BiayaTransit:    biayaTransit,
		Total:           total,
		Buktimembayar:   false,
		Potongan:        models.NewMoneyFromDecimal(decimal.Zero),
		StatusPelunasan: constants.SettlementStatusOutstanding,
		OriginBranch:    booking.OriginBranch,
		Kirim:           booking.Kirim,
		Catatan:         fmt.Sprintf("Verified from agent booking %s", booking.AWBNo),
	}
	if err := s.manifestRepo.CreateBranchEntry(ctx, entry); err != nil {
		logger.Errorw("booking_manifest_insert_failed",
			"booking_id", booking.ID,
			"awb_no", booking.AWBNo,
			"error", err,
		)
		return nil, ErrManifestInsertFailed
	}

	refreshed, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil || refreshed == nil {
		booking.Status = constants.BookingStatusVerified
		return booking, nil
	}
	return refreshed, nil
}

// Reject declines a pending booking. A reason is required before any
// write happens.
func (s *BookingService) Reject(ctx context.Context, bookingID uint, reason string, scope BookingScope, rejectedBy string) (*models.Booking, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectReasonRequired
	}

	booking, err := s.loadScoped(ctx, bookingID, scope)
	if err != nil {
		return nil, err
	}
	if booking.Status != constants.BookingStatusPending {
		return nil, ErrBookingAlreadyResolved
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":        constants.BookingStatusRejected,
		"catatan":       "DITOLAK: " + reason,
		"verified_by":   strings.TrimSpace(rejectedBy),
		"verified_time": now,
	}
	rows, err := s.bookingRepo.ResolvePending(ctx, booking.ID, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrBookingAlreadyResolved
	}

	refreshed, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil || refreshed == nil {
		booking.Status = constants.BookingStatusRejected
		return booking, nil
	}
	return refreshed, nil
}

func (s *BookingService) loadScoped(ctx context.Context, bookingID uint, scope BookingScope) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || !scope.covers(booking) {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
