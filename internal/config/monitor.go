package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// IndicatorType способ отображения индикатора активности микрофона.
type IndicatorType string

const (
	IndicatorTray         IndicatorType = "tray"
	IndicatorNotification IndicatorType = "notification"
	IndicatorOSD          IndicatorType = "osd"
)

// monitorData структура для сериализации настроек монитора.
type monitorData struct {
	CheckInterval     float64       `json:"check_interval"`
	IndicatorType     IndicatorType `json:"indicator_type"`
	ShowAppName       bool          `json:"show_app_name"`
	LogActivity       bool          `json:"log_activity"`
	MonitorAllDevices bool          `json:"monitor_all_devices"`
	MonitorDevice     string        `json:"monitor_device"`
	IgnoreDevices     []string      `json:"ignore_devices"`
}

// MonitorConfig хранит настройки монитора микрофона.
type MonitorConfig struct {
	mu         sync.RWMutex
	data       monitorData
	configPath string
}

func monitorDefaults() monitorData {
	return monitorData{
		CheckInterval:     0.5,
		IndicatorType:     IndicatorTray,
		ShowAppName:       true,
		LogActivity:       true,
		MonitorAllDevices: true,
	}
}

// NewMonitor создаёт конфигурацию монитора (~/.config/diktor/micmon.json).
func NewMonitor() *MonitorConfig {
	dir := Dir()
	if dir == "" {
		return &MonitorConfig{data: monitorDefaults()}
	}
	return NewMonitorFromPath(filepath.Join(dir, "micmon.json"))
}

// NewMonitorFromPath создаёт конфигурацию монитора из указанного файла.
func NewMonitorFromPath(path string) *MonitorConfig {
	c := &MonitorConfig{
		data:       monitorDefaults(),
		configPath: path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}

	cfg := monitorDefaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return c
	}
	c.data = cfg
	return c
}

// CheckInterval период опроса pactl.
func (c *MonitorConfig) CheckInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := time.Duration(c.data.CheckInterval * float64(time.Second))
	if d <= 0 {
		d = 500 * time.Millisecond
	}
	return d
}

// IndicatorType возвращает тип индикатора.
func (c *MonitorConfig) IndicatorType() IndicatorType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.IndicatorType
}

// ShowAppName показывать ли имя записывающего приложения.
func (c *MonitorConfig) ShowAppName() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ShowAppName
}

// LogActivity логировать ли активацию/деактивацию микрофона.
func (c *MonitorConfig) LogActivity() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.LogActivity
}

// MonitorAllDevices следить ли за всеми устройствами.
func (c *MonitorConfig) MonitorAllDevices() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.MonitorAllDevices
}

// MonitorDevice шаблон имени устройства для слежения.
func (c *MonitorConfig) MonitorDevice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.MonitorDevice
}

// IgnoreDevices шаблоны имён игнорируемых устройств.
func (c *MonitorConfig) IgnoreDevices() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.data.IgnoreDevices))
	copy(out, c.data.IgnoreDevices)
	return out
}
