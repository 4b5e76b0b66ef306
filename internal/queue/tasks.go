package queue

import (
	"encoding/json"

	"github.com/bcexpress/tracking-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWhatsAppDelivered posts the delivered notice to the group chat.
	TaskWhatsAppDelivered = constants.TaskWhatsAppDelivered
	// TaskWhatsAppText sends a direct WhatsApp message.
	TaskWhatsAppText = constants.TaskWhatsAppText
	// TaskBranchSyncScan mirrors a scan event into the branch system.
	TaskBranchSyncScan = constants.TaskBranchSyncScan
)

// WhatsAppDeliveredPayload carries the delivered group notice.
type WhatsAppDeliveredPayload struct {
	AWBNumber string `json:"awb_number"`
	Status    string `json:"status"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

// WhatsAppTextPayload carries a direct message.
type WhatsAppTextPayload struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// BranchSyncScanPayload carries a scan event for the branch system.
// Event is scan_keluar or scan_ttd.
type BranchSyncScanPayload struct {
	Event     string `json:"event"`
	AWBNumber string `json:"awb_number"`
	Courier   string `json:"courier"`
	Scanner   string `json:"scanner"`
	PhotoURL  string `json:"photo_url"`
}

// NewWhatsAppDeliveredTask creates a delivered notice task.
func NewWhatsAppDeliveredTask(payload WhatsAppDeliveredPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWhatsAppDelivered, body), nil
}

// NewWhatsAppTextTask creates a direct message task.
func NewWhatsAppTextTask(payload WhatsAppTextPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWhatsAppText, body), nil
}

// NewBranchSyncScanTask creates a branch sync task.
func NewBranchSyncScanTask(payload BranchSyncScanPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBranchSyncScan, body), nil
}
