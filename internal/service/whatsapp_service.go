package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/logger"
)

// ErrWhatsAppDisabled marks a send attempted while the gateway is off.
var ErrWhatsAppDisabled = errors.New("whatsapp gateway disabled")

// WhatsAppService talks to a WAHA gateway. All sends are best effort;
// callers log failures and move on.
type WhatsAppService struct {
	cfg        config.WhatsAppConfig
	httpClient *http.Client
}

// NewWhatsAppService builds a WAHA client.
func NewWhatsAppService(cfg config.WhatsAppConfig) *WhatsAppService {
	timeout := cfg.TimeoutMS
	if timeout <= 0 {
		timeout = 8000
	}
	return &WhatsAppService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Millisecond,
		},
	}
}

// Enabled reports whether the gateway is configured.
func (s *WhatsAppService) Enabled() bool {
	return s != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.BaseURL) != ""
}

// DeliveredText renders the group notice for a delivered shipment.
func DeliveredText(awbNumber, status, location, notes string) string {
	return fmt.Sprintf("Paket Terkirim!\nAWB: %s\nStatus: %s\nKurir: %s\nNote: %s",
		awbNumber, status, location, notes)
}

// AutoReplyText is the fixed reply for inbound direct messages.
func AutoReplyText() string {
	return "Untuk pertanyaan mengenai pengiriman bisa hubungi Admin di area pengiriman.\n\n" +
		"Whatsapp ini hanya chat otomatis untuk laporan paket diterima.\n\n" +
		"Akses bcexp.id untuk tracking paket dengan input no AWB.\n\n" +
		"TERIMA KASIH."
}

// SendGroupText posts a message to the configured group chat.
func (s *WhatsAppService) SendGroupText(ctx context.Context, text string) error {
	if !s.Enabled() {
		return ErrWhatsAppDisabled
	}
	groupID := strings.TrimSpace(s.cfg.GroupID)
	if groupID == "" {
		return ErrWhatsAppDisabled
	}
	if !strings.HasSuffix(groupID, "@g.us") {
		groupID += "@g.us"
	}
	return s.sendText(ctx, groupID, text)
}

// SendText posts a direct message. The target may be a phone number or
// an already-resolved chat id.
func (s *WhatsAppService) SendText(ctx context.Context, phoneOrChat, text string) error {
	if !s.Enabled() {
		return ErrWhatsAppDisabled
	}
	chatID := strings.TrimSpace(phoneOrChat)
	if !strings.HasSuffix(chatID, "@c.us") && !strings.HasSuffix(chatID, "@g.us") {
		normalized := NormalizePhoneNumber(chatID)
		if normalized == "" {
			return fmt.Errorf("whatsapp target empty after normalization")
		}
		chatID = normalized + "@c.us"
	}
	return s.sendText(ctx, chatID, text)
}

func (s *WhatsAppService) sendText(ctx context.Context, chatID, text string) error {
	session := strings.TrimSpace(s.cfg.Session)
	if session == "" {
		session = "default"
	}
	payload := map[string]interface{}{
		"chatId":      chatID,
		"text":        text,
		"session":     session,
		"linkPreview": false,
	}

	// One retry keeps transient gateway hiccups from dropping notices
	// without letting the caller hang.
	var lastErr error
	for attempt := 0; attempt <= 1; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
		}
		if lastErr = s.postSendText(ctx, payload); lastErr == nil {
			return nil
		}
		logger.Warnw("whatsapp_send_retry", "chat_id", chatID, "attempt", attempt, "error", lastErr)
	}
	return lastErr
}

func (s *WhatsAppService) postSendText(ctx context.Context, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/") + "/api/sendText"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := strings.TrimSpace(s.cfg.APIKey); key != "" {
		req.Header.Set("X-Api-Key", key)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("waha status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

// NormalizePhoneNumber strips non-digits and rewrites local Indonesian
// prefixes to the international 62 form.
func NormalizePhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case d == "":
		return ""
	case strings.HasPrefix(d, "62"):
		return d
	case strings.HasPrefix(d, "08"):
		return "62" + d[1:]
	case strings.HasPrefix(d, "8"):
		return "62" + d
	default:
		return d
	}
}
