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
)

// ErrBranchSyncDisabled marks a sync attempted while the branch system
// integration is off.
var ErrBranchSyncDisabled = errors.New("branch sync disabled")

// ScanKeluarInput is the departure scan event sent to the branch system.
type ScanKeluarInput struct {
	NoResi     string `json:"no_resi"`
	NamaKurir  string `json:"nama_kurir"`
	Armada     string `json:"armada"`
	PlatArmada string `json:"plat_armada"`
	Pemindai   string `json:"pemindai"`
}

// ScanTTDInput is the proof-of-delivery scan event sent to the branch
// system.
type ScanTTDInput struct {
	NoResi     string `json:"no_resi"`
	NamaKurir  string `json:"nama_kurir"`
	Armada     string `json:"armada"`
	PlatArmada string `json:"plat_armada"`
	Gambar     string `json:"gambar"`
	Pemindai   string `json:"pemindai"`
}

// BranchSyncService mirrors lifecycle events into the legacy branch
// system. Only AWBs carrying the configured prefix are synced and every
// call is best effort.
type BranchSyncService struct {
	cfg        config.BranchSyncConfig
	httpClient *http.Client
}

// NewBranchSyncService builds a branch sync client.
func NewBranchSyncService(cfg config.BranchSyncConfig) *BranchSyncService {
	timeout := cfg.TimeoutMS
	if timeout <= 0 {
		timeout = 10000
	}
	return &BranchSyncService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Millisecond,
		},
	}
}

// Enabled reports whether the branch system integration is configured.
func (s *BranchSyncService) Enabled() bool {
	return s != nil && s.cfg.Enabled && strings.TrimSpace(s.cfg.BaseURL) != ""
}

// ShouldSync reports whether an AWB belongs to the branch system.
func (s *BranchSyncService) ShouldSync(awbNumber string) bool {
	if s == nil {
		return false
	}
	prefix := strings.TrimSpace(s.cfg.AWBPrefix)
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(awbNumber)), prefix)
}

// SendScanKeluar posts a departure scan event.
func (s *BranchSyncService) SendScanKeluar(ctx context.Context, input ScanKeluarInput) error {
	if !s.Enabled() {
		return ErrBranchSyncDisabled
	}
	s.applyDefaults(&input.Armada, &input.PlatArmada, &input.Pemindai)
	return s.postJSON(ctx, "/api/scan/keluar", input)
}

// SendScanTTD posts a proof-of-delivery scan event.
func (s *BranchSyncService) SendScanTTD(ctx context.Context, input ScanTTDInput) error {
	if !s.Enabled() {
		return ErrBranchSyncDisabled
	}
	s.applyDefaults(&input.Armada, &input.PlatArmada, &input.Pemindai)
	return s.postJSON(ctx, "/api/scan/ttd", input)
}

func (s *BranchSyncService) applyDefaults(armada, platArmada, pemindai *string) {
	if strings.TrimSpace(*armada) == "" {
		*armada = s.cfg.Armada
	}
	if strings.TrimSpace(*platArmada) == "" {
		*platArmada = s.cfg.PlatArmada
	}
	if strings.TrimSpace(*pemindai) == "" {
		*pemindai = "System"
	}
}

func (s *BranchSyncService) postJSON(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/") + path
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
		return fmt.Errorf("branch sync status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}

// ExtractCourierName pulls the courier name out of free-form update
// notes. Falls back to the location, then "System".
func ExtractCourierName(notes, location string) string {
	notes = strings.TrimSpace(notes)
	if notes != "" {
		if idx := strings.LastIndex(notes, "by "); idx >= 0 {
			name := strings.TrimSpace(notes[idx+len("by "):])
			if name != "" {
				return name
			}
		}
	}
	if location = strings.TrimSpace(location); location != "" {
		return location
	}
	return "System"
}
