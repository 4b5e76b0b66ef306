package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathTrackingDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != "tracking.log" {
		t.Fatalf("default log filename want tracking.log got %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("default log dir want %s got %s", defaultLogDirName, filepath.Base(filepath.Dir(got)))
	}
	info, err := os.Stat(filepath.Dir(got))
	if err != nil || !info.IsDir() {
		t.Fatalf("log dir should be created: %v", err)
	}
}

func TestResolveLogFilePathHonorsOverrides(t *testing.T) {
	tmpDir := t.TempDir()

	got, err := resolveLogFilePath(Options{Dir: tmpDir, Filename: "api.log"})
	if err != nil {
		t.Fatalf("resolve overridden log path failed: %v", err)
	}
	if got != filepath.Join(tmpDir, "api.log") {
		t.Fatalf("log path want %s got %s", filepath.Join(tmpDir, "api.log"), got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("log file should be touched: %v", err)
	}
}

func TestReleaseModeWritesJSONLines(t *testing.T) {
	tmpDir := t.TempDir()

	log := New("release", Options{Dir: tmpDir, Filename: "tracking.log"})
	log.Info("shipment_scan_recorded")
	_ = log.Sync()

	raw, err := os.ReadFile(filepath.Join(tmpDir, "tracking.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	line := strings.Split(strings.TrimSpace(string(raw)), "\n")[0]

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line should be JSON, got %q: %v", line, err)
	}
	if entry["message"] != "shipment_scan_recorded" {
		t.Fatalf("message want shipment_scan_recorded got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Fatalf("level want info got %v", entry["level"])
	}
}

func TestDebugModeStaysOffDisk(t *testing.T) {
	tmpDir := t.TempDir()

	log := New("debug", Options{Dir: tmpDir})
	log.Debug("scanner_gun_connected")
	_ = log.Sync()

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("read tmp dir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("debug mode must not write files, found %d entries", len(entries))
	}
}

func TestInitInstallsGlobalLogger(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	got := Init("debug", Options{})
	if got == nil {
		t.Fatalf("Init returned nil logger")
	}
	if L != got {
		t.Fatalf("Init should install the returned logger as L")
	}
	if S() == nil {
		t.Fatalf("sugared accessor should be usable after Init")
	}
}
