package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := NewFromPath(filepath.Join(t.TempDir(), "config.json"))

	if got := c.SilenceThreshold(); got != 0.02 {
		t.Errorf("SilenceThreshold = %v, ожидалось 0.02", got)
	}
	if got := c.SilenceDuration(); got != time.Second {
		t.Errorf("SilenceDuration = %v, ожидалось 1s", got)
	}
	if got := c.MinSpeechDuration(); got != 300*time.Millisecond {
		t.Errorf("MinSpeechDuration = %v, ожидалось 300ms", got)
	}
	if got := c.PreRecord(); got != 500*time.Millisecond {
		t.Errorf("PreRecord = %v, ожидалось 500ms", got)
	}
	if got := c.Engine(); got != EngineWhisper {
		t.Errorf("Engine = %v, ожидалось whisper", got)
	}
	if !c.AutoPunctuation() || !c.NoiseSuppression() || !c.NotificationsEnabled() {
		t.Error("булевые defaults должны быть включены")
	}
}

func TestFirstRunWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	NewFromPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("конфиг не записан при первом запуске: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("записан невалидный JSON: %v", err)
	}
	if _, ok := m["silence_threshold"]; !ok {
		t.Error("в записанном конфиге нет silence_threshold")
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"silence_threshold": 0.05, "engine": "whisper-server", "server_url": "http://localhost:8080"}`), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewFromPath(path)
	if got := c.SilenceThreshold(); got != 0.05 {
		t.Errorf("SilenceThreshold = %v, ожидалось 0.05", got)
	}
	if got := c.Engine(); got != EngineWhisperServer {
		t.Errorf("Engine = %v, ожидалось whisper-server", got)
	}
	// Отсутствующие ключи остаются default
	if got := c.SilenceDuration(); got != time.Second {
		t.Errorf("SilenceDuration = %v, ожидалось 1s", got)
	}
	if got := c.HighPassFreq(); got != 80 {
		t.Errorf("HighPassFreq = %v, ожидалось 80", got)
	}
}

func TestAudioDeviceEnvOverride(t *testing.T) {
	c := NewFromPath(filepath.Join(t.TempDir(), "config.json"))
	t.Setenv("DIKTOR_AUDIO_DEVICE", "USB Mic")

	if got := c.AudioDevice(); got != "USB Mic" {
		t.Errorf("AudioDevice = %q, ожидалось переопределение из окружения", got)
	}
}

func TestToggleNotificationsPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := NewFromPath(path)

	if got := c.ToggleNotifications(); got {
		t.Error("после выключения должно быть false")
	}

	reloaded := NewFromPath(path)
	if reloaded.NotificationsEnabled() {
		t.Error("выключенные уведомления не сохранились в файл")
	}
}

func TestHotkeyString(t *testing.T) {
	hk := HotkeyConfig{Modifiers: []Modifier{ModCtrl, ModShift}, Key: KeyD}
	if got := hk.String(); got != "ctrl+shift+d" {
		t.Errorf("String() = %q", got)
	}
}

func TestMonitorDefaults(t *testing.T) {
	c := NewMonitorFromPath(filepath.Join(t.TempDir(), "micmon.json"))

	if got := c.CheckInterval(); got != 500*time.Millisecond {
		t.Errorf("CheckInterval = %v, ожидалось 500ms", got)
	}
	if got := c.IndicatorType(); got != IndicatorTray {
		t.Errorf("IndicatorType = %v, ожидалось tray", got)
	}
	if !c.MonitorAllDevices() {
		t.Error("MonitorAllDevices должно быть true по умолчанию")
	}
}

func TestMonitorFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "micmon.json")
	body := `{"check_interval": 1.0, "indicator_type": "osd", "monitor_all_devices": false, "monitor_device": "usb", "ignore_devices": ["monitor", "loopback"]}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewMonitorFromPath(path)
	if got := c.CheckInterval(); got != time.Second {
		t.Errorf("CheckInterval = %v", got)
	}
	if got := c.IndicatorType(); got != IndicatorOSD {
		t.Errorf("IndicatorType = %v", got)
	}
	if c.MonitorAllDevices() {
		t.Error("MonitorAllDevices должно быть false")
	}
	if got := c.IgnoreDevices(); len(got) != 2 || got[0] != "monitor" {
		t.Errorf("IgnoreDevices = %v", got)
	}
}
