package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bcexpress/tracking-api/internal/constants"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/provider"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles async notification tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer builds a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWhatsAppDelivered, c.handleWhatsAppDelivered)
	mux.HandleFunc(queue.TaskWhatsAppText, c.handleWhatsAppText)
	mux.HandleFunc(queue.TaskBranchSyncScan, c.handleBranchSyncScan)
}

func (c *Consumer) handleWhatsAppDelivered(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_whatsapp_delivered_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WhatsAppDeliveredPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_whatsapp_delivered_unmarshal_failed", "error", err)
		return err
	}
	if payload.AWBNumber == "" {
		logger.Debugw("worker_whatsapp_delivered_skip_invalid_payload")
		return nil
	}
	if c.WhatsAppService == nil || !c.WhatsAppService.Enabled() {
		logger.Debugw("worker_whatsapp_delivered_skip_disabled", "awb_number", payload.AWBNumber)
		return nil
	}

	text := service.DeliveredText(payload.AWBNumber, payload.Status, payload.Location, payload.Notes)
	if err := c.WhatsAppService.SendGroupText(ctx, text); err != nil {
		if errors.Is(err, service.ErrWhatsAppDisabled) {
			logger.Debugw("worker_whatsapp_delivered_skip_disabled", "awb_number", payload.AWBNumber)
			return nil
		}
		logger.Warnw("worker_whatsapp_delivered_send_failed", "awb_number", payload.AWBNumber, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleWhatsAppText(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_whatsapp_text_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WhatsAppTextPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_whatsapp_text_unmarshal_failed", "error", err)
		return err
	}
	if payload.Target == "" || payload.Text == "" {
		logger.Debugw("worker_whatsapp_text_skip_invalid_payload", "target", payload.Target)
		return nil
	}
	if c.WhatsAppService == nil || !c.WhatsAppService.Enabled() {
		logger.Debugw("worker_whatsapp_text_skip_disabled", "target", payload.Target)
		return nil
	}
	if err := c.WhatsAppService.SendText(ctx, payload.Target, payload.Text); err != nil {
		if errors.Is(err, service.ErrWhatsAppDisabled) {
			return nil
		}
		logger.Warnw("worker_whatsapp_text_send_failed", "target", payload.Target, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleBranchSyncScan(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_branch_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.BranchSyncScanPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_branch_sync_unmarshal_failed", "error", err)
		return err
	}
	if payload.AWBNumber == "" {
		logger.Debugw("worker_branch_sync_skip_invalid_payload")
		return nil
	}
	if c.BranchSyncService == nil || !c.BranchSyncService.Enabled() {
		logger.Debugw("worker_branch_sync_skip_disabled", "awb_number", payload.AWBNumber)
		return nil
	}

	var err error
	switch payload.Event {
	case constants.ScanEventKeluar:
		err = c.BranchSyncService.SendScanKeluar(ctx, service.ScanKeluarInput{
			NoResi:    payload.AWBNumber,
			NamaKurir: payload.Courier,
			Pemindai:  payload.Scanner,
		})
	case constants.ScanEventTTD:
		err = c.BranchSyncService.SendScanTTD(ctx, service.ScanTTDInput{
			NoResi:    payload.AWBNumber,
			NamaKurir: payload.Courier,
			Gambar:    payload.PhotoURL,
			Pemindai:  payload.Scanner,
		})
	default:
		logger.Debugw("worker_branch_sync_skip_unknown_event", "event", payload.Event, "awb_number", payload.AWBNumber)
		return nil
	}
	if err != nil {
		if errors.Is(err, service.ErrBranchSyncDisabled) {
			return nil
		}
		logger.Warnw("worker_branch_sync_send_failed", "event", payload.Event, "awb_number", payload.AWBNumber, "error", err)
		return err
	}
	return nil
}
