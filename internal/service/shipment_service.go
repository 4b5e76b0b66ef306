package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/repository"
)

// UpdateStatusInput is the manual courier update payload.
type UpdateStatusInput struct {
	AWBNumber string
	Status    string
	Location  string
	Notes     string
	PhotoURL  *string
	Latitude  *float64
	Longitude *float64
	UpdatedBy string
}

// ManifestDetail is the resolved origin of a shipment's descriptive
// fields. Source is one of the manifest source constants.
type ManifestDetail struct {
	Source          string
	SenderName      string
	SenderAddress   string
	SenderPhone     string
	ReceiverName    string
	ReceiverAddress string
	ReceiverPhone   string
	WeightKg        float64
	Dimensions      string
	ServiceType     string
}

// ShipmentService drives the shipment lifecycle.
type ShipmentService struct {
	cfg          *config.Config
	shipmentRepo repository.ShipmentRepository
	historyRepo  repository.ShipmentHistoryRepository
	manifestRepo repository.ManifestRepository
	queueClient  *queue.Client
	branchSync   *BranchSyncService
}

// NewShipmentService builds a shipment service.
func NewShipmentService(
	cfg *config.Config,
	shipmentRepo repository.ShipmentRepository,
	historyRepo repository.ShipmentHistoryRepository,
	manifestRepo repository.ManifestRepository,
	queueClient *queue.Client,
	branchSync *BranchSyncService,
) *ShipmentService {
	return &ShipmentService{
		cfg:          cfg,
		shipmentRepo: shipmentRepo,
		historyRepo:  historyRepo,
		manifestRepo: manifestRepo,
		queueClient:  queueClient,
		branchSync:   branchSync,
	}
}

func (s *ShipmentService) opTimeout() time.Duration {
	seconds := 15
	if s.cfg != nil && s.cfg.Shipment.OpTimeoutSeconds > 0 {
		seconds = s.cfg.Shipment.OpTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// mapTimeout converts a store deadline into the user-facing retry error.
func mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

// UpdateStatus applies a manual status update from a courier. The
// update itself is durable before any notification is enqueued;
// notification failures are logged and never surfaced.
func (s *ShipmentService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Shipment, error) {
	input.AWBNumber = strings.ToUpper(strings.TrimSpace(input.AWBNumber))
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	input.Location = strings.TrimSpace(input.Location)
	input.Notes = strings.TrimSpace(input.Notes)

	if input.AWBNumber == "" || input.Status == "" || input.Location == "" {
		return nil, ErrFieldsRequired
	}
	if !constants.IsValidShipmentStatus(input.Status) {
		return nil, ErrStatusInvalid
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, ErrCoordinatesInvalid
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout())
	defer cancel()

	shipment, err := s.ensureShipment(opCtx, input.AWBNumber, input.Status)
	if err != nil {
		return nil, mapTimeout(err)
	}

	if err := s.shipmentRepo.UpdateStatus(opCtx, input.AWBNumber, input.Status, nil); err != nil {
		return nil, mapTimeout(err)
	}
	shipment.CurrentStatus = input.Status

	notes := annotateNotes(input.Notes, input.UpdatedBy)
	entry := &models.ShipmentHistory{
		AWBNumber: input.AWBNumber,
		Status:    input.Status,
		Location:  input.Location,
		Notes:     notes,
		PhotoURL:  input.PhotoURL,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := s.historyRepo.Append(opCtx, entry); err != nil {
		// A replayed update lands on the same (awb, status) row. The
		// status write above already succeeded, so treat it as done.
		if !errors.Is(err, repository.ErrHistoryDuplicate) {
			return nil, mapTimeout(err)
		}
	}

	s.enqueueNotifications(input, notes)

	return shipment, nil
}

// Track returns a shipment and its ordered audit trail.
func (s *ShipmentService) Track(ctx context.Context, awbNumber string) (*models.Shipment, []models.ShipmentHistory, error) {
	awbNumber = strings.ToUpper(strings.TrimSpace(awbNumber))
	if awbNumber == "" {
		return nil, nil, ErrFieldsRequired
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout())
	defer cancel()

	shipment, err := s.shipmentRepo.GetByAWB(opCtx, awbNumber)
	if err != nil {
		return nil, nil, mapTimeout(err)
	}
	if shipment == nil {
		return nil, nil, ErrShipmentNotFound
	}

	history, err := s.historyRepo.ListByAWB(opCtx, awbNumber)
	if err != nil {
		return nil, nil, mapTimeout(err)
	}
	return shipment, history, nil
}

// History returns the audit trail for an existing shipment.
func (s *ShipmentService) History(ctx context.Context, awbNumber string) ([]models.ShipmentHistory, error) {
	_, history, err := s.Track(ctx, awbNumber)
	return history, err
}

// ensureShipment returns the row for an AWB, creating it from manifest
// data (central first, branch second, placeholder last) when absent.
func (s *ShipmentService) ensureShipment(ctx context.Context, awbNumber, status string) (*models.Shipment, error) {
	existing, err := s.shipmentRepo.GetByAWB(ctx, awbNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	detail, err := s.resolveManifestDetail(ctx, awbNumber)
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		AWBNumber:       awbNumber,
		CurrentStatus:   status,
		SenderName:      detail.SenderName,
		SenderAddress:   detail.SenderAddress,
		SenderPhone:     detail.SenderPhone,
		ReceiverName:    detail.ReceiverName,
		ReceiverAddress: detail.ReceiverAddress,
		ReceiverPhone:   detail.ReceiverPhone,
		WeightKg:        detail.WeightKg,
		Dimensions:      detail.Dimensions,
		ServiceType:     detail.ServiceType,
	}
	// Upsert instead of insert so concurrent first updates for the same
	// AWB converge on one row.
	if err := s.shipmentRepo.Upsert(ctx, shipment); err != nil {
		return nil, err
	}

	logger.Infow("shipment_auto_created",
		"awb_number", awbNumber,
		"manifest_source", detail.Source,
	)
	return shipment, nil
}

func (s *ShipmentService) resolveManifestDetail(ctx context.Context, awbNumber string) (ManifestDetail, error) {
	if central, err := s.manifestRepo.FindCentralByAWB(ctx, awbNumber); err != nil {
		return ManifestDetail{}, err
	} else if central != nil {
		return ManifestDetail{
			Source:          constants.ManifestSourceCentral,
			SenderName:      central.NamaPengirim,
			SenderAddress:   central.AlamatPengirim,
			SenderPhone:     central.NoPengirim,
			ReceiverName:    central.NamaPenerima,
			ReceiverAddress: central.AlamatPenerima,
			ReceiverPhone:   central.NoPenerima,
			WeightKg:        central.BeratKg,
			Dimensions:      constants.PlaceholderDimensions,
			ServiceType:     s.defaultServiceType(),
		}, nil
	}

	if branch, err := s.manifestRepo.FindBranchByAWB(ctx, awbNumber); err != nil {
		return ManifestDetail{}, err
	} else if branch != nil {
		return ManifestDetail{
			Source:          constants.ManifestSourceBranch,
			SenderName:      branch.NamaPengirim,
			SenderAddress:   branch.AlamatPengirim,
			SenderPhone:     branch.NoPengirim,
			ReceiverName:    branch.NamaPenerima,
			ReceiverAddress: branch.AlamatPenerima,
			ReceiverPhone:   branch.NoPenerima,
			WeightKg:        branch.BeratKg.InexactFloat64(),
			Dimensions:      constants.PlaceholderDimensions,
			ServiceType:     s.defaultServiceType(),
		}, nil
	}

	return ManifestDetail{
		Source:          constants.ManifestSourceNone,
		SenderName:      constants.PlaceholderName,
		SenderAddress:   constants.PlaceholderName,
		SenderPhone:     "",
		ReceiverName:    constants.PlaceholderName,
		ReceiverAddress: constants.PlaceholderName,
		ReceiverPhone:   "",
		WeightKg:        constants.PlaceholderWeightKg,
		Dimensions:      constants.PlaceholderDimensions,
		ServiceType:     s.defaultServiceType(),
	}, nil
}

func (s *ShipmentService) defaultServiceType() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Shipment.DefaultServiceType) != "" {
		return s.cfg.Shipment.DefaultServiceType
	}
	return constants.PlaceholderServiceType
}

// enqueueNotifications pushes the best-effort side effects of a status
// change. Failures are logged, never returned.
func (s *ShipmentService) enqueueNotifications(input UpdateStatusInput, notes string) {
	if s.branchSync != nil && s.branchSync.ShouldSync(input.AWBNumber) && s.queueClient != nil {
		courier := ExtractCourierName(notes, input.Location)
		switch {
		case input.Status == constants.ShipmentStatusOutForDelivery:
			err := s.queueClient.EnqueueBranchSyncScan(queue.BranchSyncScanPayload{
				Event:     constants.ScanEventKeluar,
				AWBNumber: input.AWBNumber,
				Courier:   courier,
				Scanner:   input.Location,
			})
			if err != nil {
				logger.Warnw("branch_sync_enqueue_failed", "awb_number", input.AWBNumber, "event", constants.ScanEventKeluar, "error", err)
			}
		case input.Status == constants.ShipmentStatusDelivered && input.PhotoURL != nil && *input.PhotoURL != "":
			err := s.queueClient.EnqueueBranchSyncScan(queue.BranchSyncScanPayload{
				Event:     constants.ScanEventTTD,
				AWBNumber: input.AWBNumber,
				Courier:   courier,
				Scanner:   input.Location,
				PhotoURL:  *input.PhotoURL,
			})
			if err != nil {
				logger.Warnw("branch_sync_enqueue_failed", "awb_number", input.AWBNumber, "event", constants.ScanEventTTD, "error", err)
			}
		}
	}

	if input.Status == constants.ShipmentStatusDelivered && s.queueClient != nil {
		minDelay, maxDelay := s.deliveredDelayWindow()
		err := s.queueClient.EnqueueWhatsAppDelivered(queue.WhatsAppDeliveredPayload{
			AWBNumber: input.AWBNumber,
			Status:    input.Status,
			Location:  input.Location,
			Notes:     notes,
		}, minDelay, maxDelay)
		if err != nil {
			logger.Warnw("whatsapp_enqueue_failed", "awb_number", input.AWBNumber, "error", err)
		}
	}
}

func (s *ShipmentService) deliveredDelayWindow() (time.Duration, time.Duration) {
	min, max := 15, 35
	if s.cfg != nil {
		if s.cfg.WhatsApp.DeliveredDelay.MinSeconds > 0 {
			min = s.cfg.WhatsApp.DeliveredDelay.MinSeconds
		}
		if s.cfg.WhatsApp.DeliveredDelay.MaxSeconds >= min {
			max = s.cfg.WhatsApp.DeliveredDelay.MaxSeconds
		} else {
			max = min
		}
	}
	return time.Duration(min) * time.Second, time.Duration(max) * time.Second
}

func annotateNotes(notes, updatedBy string) string {
	updatedBy = strings.TrimSpace(updatedBy)
	if updatedBy == "" {
		return notes
	}
	suffix := fmt.Sprintf("Updated by %s", updatedBy)
	if notes == "" {
		return suffix
	}
	if strings.Contains(notes, suffix) {
		return notes
	}
	return notes + " - " + suffix
}
