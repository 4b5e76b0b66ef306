package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/provider"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/service"

	"github.com/hibiken/asynq"
)

func TestHandleBranchSyncScanRoutesEvents(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	consumer := NewConsumer(&provider.Container{
		BranchSyncService: service.NewBranchSyncService(config.BranchSyncConfig{
			Enabled: true,
			BaseURL: server.URL,
		}),
	})

	keluar, _ := json.Marshal(queue.BranchSyncScanPayload{
		Event: "scan_keluar", AWBNumber: "BE1", Courier: "Agus", Scanner: "Sorting Center",
	})
	if err := consumer.handleBranchSyncScan(context.Background(), asynq.NewTask(queue.TaskBranchSyncScan, keluar)); err != nil {
		t.Fatalf("scan_keluar handler failed: %v", err)
	}

	ttd, _ := json.Marshal(queue.BranchSyncScanPayload{
		Event: "scan_ttd", AWBNumber: "BE1", Courier: "Agus", PhotoURL: "/uploads/x.jpg",
	})
	if err := consumer.handleBranchSyncScan(context.Background(), asynq.NewTask(queue.TaskBranchSyncScan, ttd)); err != nil {
		t.Fatalf("scan_ttd handler failed: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/api/scan/keluar" || paths[1] != "/api/scan/ttd" {
		t.Fatalf("unexpected endpoints hit: %v", paths)
	}
}

func TestHandleBranchSyncScanSkipsUnknownEvent(t *testing.T) {
	consumer := NewConsumer(&provider.Container{
		BranchSyncService: service.NewBranchSyncService(config.BranchSyncConfig{Enabled: true, BaseURL: "http://127.0.0.1:1"}),
	})
	payload, _ := json.Marshal(queue.BranchSyncScanPayload{Event: "scan_unknown", AWBNumber: "BE1"})
	if err := consumer.handleBranchSyncScan(context.Background(), asynq.NewTask(queue.TaskBranchSyncScan, payload)); err != nil {
		t.Fatalf("expected unknown event to be dropped, got %v", err)
	}
}

func TestHandleWhatsAppDeliveredSkipsWhenDisabled(t *testing.T) {
	consumer := NewConsumer(&provider.Container{
		WhatsAppService: service.NewWhatsAppService(config.WhatsAppConfig{Enabled: false}),
	})
	payload, _ := json.Marshal(queue.WhatsAppDeliveredPayload{AWBNumber: "BE1", Status: "delivered"})
	if err := consumer.handleWhatsAppDelivered(context.Background(), asynq.NewTask(queue.TaskWhatsAppDelivered, payload)); err != nil {
		t.Fatalf("expected disabled gateway to be a no-op, got %v", err)
	}
}

func TestHandleWhatsAppDeliveredSendsGroupNotice(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	consumer := NewConsumer(&provider.Container{
		WhatsAppService: service.NewWhatsAppService(config.WhatsAppConfig{
			Enabled: true,
			BaseURL: server.URL,
			GroupID: "grp",
		}),
	})
	payload, _ := json.Marshal(queue.WhatsAppDeliveredPayload{
		AWBNumber: "BE2", Status: "delivered", Location: "Kurir Agus", Notes: "ok",
	})
	if err := consumer.handleWhatsAppDelivered(context.Background(), asynq.NewTask(queue.TaskWhatsAppDelivered, payload)); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	text, _ := captured["text"].(string)
	if text != service.DeliveredText("BE2", "delivered", "Kurir Agus", "ok") {
		t.Fatalf("unexpected notice text: %q", text)
	}
	if chatID, _ := captured["chatId"].(string); chatID != "grp@g.us" {
		t.Fatalf("unexpected chat id: %q", chatID)
	}
}
