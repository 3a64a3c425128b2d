package micmon

import (
	"os"
	"path/filepath"
	"testing"

	"diktor/internal/config"
)

// monitorConfig собирает MonitorConfig из JSON во временном файле.
func monitorConfig(t *testing.T, body string) *config.MonitorConfig {
	t.Helper()
	path := filepath.Join(t.TempDir(), "micmon.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return config.NewMonitorFromPath(path)
}

func stubMonitor(cfg *config.MonitorConfig, sources map[string]Source, outputs []SourceOutput) *Monitor {
	m := New(cfg)
	m.sources = func() (map[string]Source, error) { return sources, nil }
	m.sourceOutputs = func() ([]SourceOutput, error) { return outputs, nil }
	return m
}

func testSources() map[string]Source {
	return map[string]Source{
		"0": {Index: "0", Name: "alsa_output.monitor", Description: "Monitor of Built-in Audio"},
		"1": {Index: "1", Name: "alsa_input.usb-yeti", Description: "Yeti Stereo Microphone"},
	}
}

func TestCheckActiveRecording(t *testing.T) {
	cfg := monitorConfig(t, `{"monitor_all_devices": true, "show_app_name": true}`)
	m := stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "parecord", SourceIndex: "1"},
	})

	active, desc := m.Check()
	if !active {
		t.Fatal("запись должна быть обнаружена")
	}
	if desc != "parecord (Yeti Stereo Microphone)" {
		t.Errorf("описание = %q", desc)
	}
}

func TestCheckNoOutputs(t *testing.T) {
	cfg := monitorConfig(t, `{"monitor_all_devices": true}`)
	m := stubMonitor(cfg, testSources(), nil)

	if active, _ := m.Check(); active {
		t.Error("без потоков записи быть не должно")
	}
}

func TestCheckMonitorDeviceFilter(t *testing.T) {
	cfg := monitorConfig(t, `{
		"monitor_all_devices": false,
		"monitor_device": "yeti",
		"show_app_name": true
	}`)

	// Запись с другого устройства игнорируется
	m := stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "obs", SourceIndex: "0"},
	})
	if active, _ := m.Check(); active {
		t.Error("запись с немониторимого устройства не должна учитываться")
	}

	// Запись с нужного устройства обнаруживается
	m = stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "obs", SourceIndex: "1"},
	})
	if active, _ := m.Check(); !active {
		t.Error("запись с мониторимого устройства должна учитываться")
	}
}

func TestCheckIgnoreDevices(t *testing.T) {
	cfg := monitorConfig(t, `{
		"monitor_all_devices": true,
		"ignore_devices": ["monitor of"]
	}`)
	m := stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "recorder", SourceIndex: "0"},
	})

	if active, _ := m.Check(); active {
		t.Error("устройство из списка игнорируемых должно пропускаться")
	}
}

func TestCheckShowAppNameDisabled(t *testing.T) {
	cfg := monitorConfig(t, `{"monitor_all_devices": true, "show_app_name": false}`)
	m := stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "parecord", SourceIndex: "1"},
	})

	_, desc := m.Check()
	if desc != "parecord" {
		t.Errorf("описание = %q, ожидалось только имя приложения", desc)
	}
}

func TestCheckUnknownSourceSkipped(t *testing.T) {
	cfg := monitorConfig(t, `{"monitor_all_devices": true}`)
	m := stubMonitor(cfg, testSources(), []SourceOutput{
		{App: "ghost", SourceIndex: "99"},
	})

	if active, _ := m.Check(); active {
		t.Error("поток с неизвестным устройством должен пропускаться")
	}
}
