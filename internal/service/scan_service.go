package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bcexpress/tracking-api/internal/cache"
	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/repository"
)

// ScanInput is one QR bulk scan.
type ScanInput struct {
	AWBNumber   string
	CourierID   uint
	CourierName string
}

// ScanResult is the per-scan outcome shown to the operator.
type ScanResult struct {
	AWBNumber  string `json:"awb_number"`
	Status     string `json:"status"`
	Created    bool   `json:"created"`
	Reassigned bool   `json:"reassigned"`
}

// ScanService is the QR bulk path. Every scan lands the shipment on
// out_for_delivery at the sorting center, assigned to the scanning
// courier.
type ScanService struct {
	cfg          *config.Config
	shipmentRepo repository.ShipmentRepository
	historyRepo  repository.ShipmentHistoryRepository
	manifestRepo repository.ManifestRepository
	queueClient  *queue.Client
	branchSync   *BranchSyncService
	debouncer    *cache.ScanDebouncer
}

// NewScanService builds a scan service.
func NewScanService(
	cfg *config.Config,
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.ShipmentHistoryRepository,
	manifestRepo repository.ManifestRepository,
	queueClient *queue.Client,
	branchSync *BranchSyncService,
) *ScanService {
	window := 2 * time.Second
	if cfg != nil && cfg.Shipment.ScanDebounceSeconds > 0 {
		window = time.Duration(cfg.Shipment.ScanDebounceSeconds) * time.Second
	}
	return &ScanService{
		cfg:          cfg,
		shipmentRepo: shipmentRepo,
		historyRepo:  historyRepo,
		manifestRepo: manifestRepo,
		queueClient:  queueClient,
		branchSync:   branchSync,
		debouncer:    cache.NewScanDebouncer(window),
	}
}

func (s *ScanService) scanLocation() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Shipment.ScanLocation) != "" {
		return s.cfg.Shipment.ScanLocation
	}
	return constants.ScanLocationSortingCenter
}

// ProcessScan handles one scan. Duplicate scans inside the debounce
// window return ErrScanDebounced; a courier losing a concurrent handoff
// returns ErrScanConflict.
func (s *ScanService) ProcessScan(ctx context.Context, input ScanInput) (*ScanResult, error) {
	input.AWBNumber = strings.ToUpper(strings.TrimSpace(input.AWBNumber))
	if input.AWBNumber == "" {
		return nil, ErrFieldsRequired
	}

	allowed, err := s.debouncer.Allow(ctx, input.CourierID, input.AWBNumber)
	if err != nil {
		// Redis being down must not block the scanner gun.
		logger.Warnw("scan_debounce_check_failed", "awb_number", input.AWBNumber, "error", err)
	} else if !allowed {
		return nil, ErrScanDebounced
	}

	timeout := 15 * time.Second
	if s.cfg != nil && s.cfg.Shipment.OpTimeoutSeconds > 0 {
		timeout = time.Duration(s.cfg.Shipment.OpTimeoutSeconds) * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := &ScanResult{
		AWBNumber: input.AWBNumber,
		Status:    constants.ShipmentStatusOutForDelivery,
	}

	existing, err := s.shipmentRepo.GetByAWB(opCtx, input.AWBNumber)
	if err != nil {
		return nil, mapTimeout(err)
	}

	switch {
	case existing == nil:
		if err := s.createForCourier(opCtx, input); err != nil {
			return nil, mapTimeout(err)
		}
		result.Created = true
	case existing.CurrentStatus == constants.ShipmentStatusOutForDelivery:
		// Another courier holds the package. The conditional update is
		// the only arbiter; losing it means the package moved on.
		rows, err := s.shipmentRepo.ReassignCourier(opCtx, input.AWBNumber, input.CourierID)
		if err != nil {
			return nil, mapTimeout(err)
		}
		if rows == 0 {
			return nil, ErrScanConflict
		}
		result.Reassigned = existing.CourierID != nil && *existing.CourierID != input.CourierID
	default:
		// Only the status moves here; the courier on record keeps the
		// package.
		if err := s.shipmentRepo.UpdateStatus(opCtx, input.AWBNumber, constants.ShipmentStatusOutForDelivery, nil); err != nil {
			return nil, mapTimeout(err)
		}
	}

	if err := s.appendHistoryOnce(opCtx, input); err != nil {
		return nil, mapTimeout(err)
	}

	s.enqueueScanKeluar(input)

	return result, nil
}

func (s *ScanService) createForCourier(ctx context.Context, input ScanInput) error {
	courierID := input.CourierID
	shipment := &models.Shipment{
		AWBNumber:     input.AWBNumber,
		CurrentStatus: constants.ShipmentStatusOutForDelivery,
		SenderName:    constants.PlaceholderName,
		ReceiverName:  constants.PlaceholderName,
		WeightKg:      constants.PlaceholderWeightKg,
		Dimensions:    constants.PlaceholderDimensions,
		ServiceType:   constants.PlaceholderServiceType,
		CourierID:     &courierID,
	}
	return s.shipmentRepo.Upsert(ctx, shipment)
}

func (s *ScanService) appendHistoryOnce(ctx context.Context, input ScanInput) error {
	exists, err := s.historyRepo.ExistsForStatus(ctx, input.AWBNumber, constants.ShipmentStatusOutForDelivery)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	entry := &models.ShipmentHistory{
		AWBNumber: input.AWBNumber,
		Status:    constants.ShipmentStatusOutForDelivery,
		Location:  s.scanLocation(),
		Notes:     fmt.Sprintf("Bulk update - Out for Delivery by %s", input.CourierName),
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		// A concurrent scan may have inserted the row between the check
		// and the insert.
		if errors.Is(err, repository.ErrHistoryDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

func (s *ScanService) enqueueScanKeluar(input ScanInput) {
	if s.branchSync == nil || !s.branchSync.ShouldSync(input.AWBNumber) || s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueBranchSyncScan(queue.BranchSyncScanPayload{
		Event:     constants.ScanEventKeluar,
		AWBNumber: input.AWBNumber,
		Courier:   input.CourierName,
		Scanner:   s.scanLocation(),
	})
	if err != nil {
		logger.Warnw("branch_sync_enqueue_failed", "awb_number", input.AWBNumber, "event", constants.ScanEventKeluar, "error", err)
	}
}
