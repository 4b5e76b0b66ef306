package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bcexpress/tracking-api/internal/config"
)

func TestExtractCourierName(t *testing.T) {
	cases := []struct {
		notes    string
		location string
		want     string
	}{
		{"Updated by Agus", "Jakarta", "Agus"},
		{"Bulk update - Out for Delivery by Bayu", "Sorting Center", "Bayu"},
		{"left at door - Updated by Citra", "Jakarta", "Citra"},
		{"no marker here", "Kurir Dedi", "Kurir Dedi"},
		{"", "Kurir Dedi", "Kurir Dedi"},
		{"", "", "System"},
	}
	for _, tc := range cases {
		if got := ExtractCourierName(tc.notes, tc.location); got != tc.want {
			t.Fatalf("ExtractCourierName(%q, %q) = %q, want %q", tc.notes, tc.location, got, tc.want)
		}
	}
}

func TestShouldSyncChecksPrefix(t *testing.T) {
	svc := NewBranchSyncService(config.BranchSyncConfig{AWBPrefix: "BE"})
	if !svc.ShouldSync("BE123") {
		t.Fatalf("expected BE prefix to sync")
	}
	if !svc.ShouldSync("be123") {
		t.Fatalf("expected case-insensitive match")
	}
	if svc.ShouldSync("JNE123") {
		t.Fatalf("expected foreign AWB to be skipped")
	}

	noPrefix := NewBranchSyncService(config.BranchSyncConfig{})
	if noPrefix.ShouldSync("BE123") {
		t.Fatalf("expected no sync without a prefix")
	}
}

func TestSendScanKeluarAppliesDefaults(t *testing.T) {
	var captured ScanKeluarInput
	var path, apiKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("X-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewBranchSyncService(config.BranchSyncConfig{
		Enabled:    true,
		BaseURL:    server.URL,
		APIKey:     "branch-key",
		AWBPrefix:  "BE",
		Armada:     "motor",
		PlatArmada: "BCEJKT",
	})
	err := svc.SendScanKeluar(context.Background(), ScanKeluarInput{
		NoResi:    "BE700",
		NamaKurir: "Agus",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if path != "/api/scan/keluar" {
		t.Fatalf("unexpected path %s", path)
	}
	if apiKey != "branch-key" {
		t.Fatalf("expected api key header, got %q", apiKey)
	}
	if captured.Armada != "motor" || captured.PlatArmada != "BCEJKT" {
		t.Fatalf("expected vehicle defaults, got %+v", captured)
	}
	if captured.Pemindai != "System" {
		t.Fatalf("expected System scanner default, got %q", captured.Pemindai)
	}
}

func TestSendScanTTDCarriesPhoto(t *testing.T) {
	var captured ScanTTDInput
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewBranchSyncService(config.BranchSyncConfig{
		Enabled: true,
		BaseURL: server.URL,
		Armada:  "motor",
	})
	err := svc.SendScanTTD(context.Background(), ScanTTDInput{
		NoResi:    "BE701",
		NamaKurir: "Bayu",
		Gambar:    "/uploads/proof-of-delivery/BE701-1.jpg",
		Pemindai:  "Jakarta",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if path != "/api/scan/ttd" {
		t.Fatalf("unexpected path %s", path)
	}
	if captured.Gambar != "/uploads/proof-of-delivery/BE701-1.jpg" {
		t.Fatalf("expected photo carried, got %q", captured.Gambar)
	}
	if captured.Pemindai != "Jakarta" {
		t.Fatalf("expected explicit scanner kept, got %q", captured.Pemindai)
	}
}
