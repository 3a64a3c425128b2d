// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Engine тип движка распознавания.
type Engine string

const (
	// EngineWhisper - нативный whisper.cpp через CGO bindings.
	EngineWhisper Engine = "whisper"
	// EngineWhisperServer - внешний whisper-server (HTTP /inference).
	EngineWhisperServer Engine = "whisper-server"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши паузы.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// configData структура для сериализации.
type configData struct {
	SilenceThreshold  float64      `json:"silence_threshold"`
	SilenceDuration   float64      `json:"silence_duration"`
	MinSpeechDuration float64      `json:"min_speech_duration"`
	PreRecordSeconds  float64      `json:"pre_record_seconds"`
	MaxSegmentSeconds float64      `json:"max_segment_seconds"`
	WhisperModel      string       `json:"whisper_model"`
	Engine            Engine       `json:"engine"`
	ServerURL         string       `json:"server_url,omitempty"`
	ModelBasePath     string       `json:"model_base_path,omitempty"`
	Language          string       `json:"language"`
	AutoPunctuation   bool         `json:"auto_punctuation"`
	NoiseSuppression  bool         `json:"noise_suppression"`
	HighPassFreq      float64      `json:"high_pass_freq"`
	AudioDevice       string       `json:"audio_device,omitempty"`
	Notifications     bool         `json:"notifications"`
	PauseHotkey       HotkeyConfig `json:"pause_hotkey"`
	UILanguage        string       `json:"ui_language,omitempty"`
}

// Config хранит настройки службы диктовки.
type Config struct {
	mu         sync.RWMutex
	data       configData
	configPath string
}

// defaults значения по умолчанию.
func defaults() configData {
	return configData{
		SilenceThreshold:  0.02,
		SilenceDuration:   1.0,
		MinSpeechDuration: 0.3,
		PreRecordSeconds:  0.5,
		MaxSegmentSeconds: 30,
		WhisperModel:      "large-v3",
		Engine:            EngineWhisper,
		Language:          "en",
		AutoPunctuation:   true,
		NoiseSuppression:  true,
		HighPassFreq:      80,
		Notifications:     true,
		PauseHotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeyD,
		},
		UILanguage: "en",
	}
}

// Dir возвращает директорию конфигурации (~/.config/diktor).
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "diktor")
}

// New создаёт конфигурацию, загружая из файла или с настройками по умолчанию.
// Если файла нет - записывает defaults, чтобы пользователь видел все ключи.
func New() *Config {
	dir := Dir()
	if dir == "" {
		return &Config{data: defaults()}
	}
	return NewFromPath(filepath.Join(dir, "config.json"))
}

// NewFromPath создаёт конфигурацию из указанного файла.
func NewFromPath(path string) *Config {
	c := &Config{
		data:       defaults(),
		configPath: path,
	}

	if !c.load() {
		// Первый запуск - сохраняем defaults чтобы пользователь видел все ключи
		os.MkdirAll(filepath.Dir(path), 0755)
		c.save()
	}

	return c
}

// load загружает конфигурацию из файла. Отсутствующие ключи остаются default.
func (c *Config) load() bool {
	if c.configPath == "" {
		return false
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return false
	}

	cfg := defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return false
	}

	c.data = cfg
	return true
}

// save сохраняет конфигурацию в файл.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	data, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

// SilenceThreshold порог RMS ниже которого чанк считается тишиной.
func (c *Config) SilenceThreshold() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.SilenceThreshold
}

// SilenceDuration длительность тишины завершающая сегмент.
func (c *Config) SilenceDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.SilenceDuration * float64(time.Second))
}

// MinSpeechDuration минимальная длительность сегмента для распознавания.
func (c *Config) MinSpeechDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.MinSpeechDuration * float64(time.Second))
}

// PreRecord длительность пре-буфера перед началом речи.
func (c *Config) PreRecord() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.PreRecordSeconds * float64(time.Second))
}

// MaxSegment максимальная длительность сегмента до принудительной отправки.
func (c *Config) MaxSegment() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.data.MaxSegmentSeconds * float64(time.Second))
}

// WhisperModel возвращает ID предпочитаемой модели.
func (c *Config) WhisperModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.WhisperModel
}

// SetWhisperModel устанавливает ID модели (сохраняется фактически загруженная).
func (c *Config) SetWhisperModel(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.WhisperModel = id
	c.save()
}

// Engine возвращает выбранный движок распознавания.
func (c *Config) Engine() Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Engine
}

// ServerURL адрес whisper-server (для EngineWhisperServer).
func (c *Config) ServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.ServerURL
}

// ModelBasePath директория моделей ("" - путь по умолчанию).
func (c *Config) ModelBasePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return expandHome(c.data.ModelBasePath)
}

// Language язык распознавания ("en", "ru", "auto").
func (c *Config) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Language
}

// AutoPunctuation оставлять ли пунктуацию Whisper в напечатанном тексте.
func (c *Config) AutoPunctuation() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.AutoPunctuation
}

// NoiseSuppression включён ли high-pass фильтр.
func (c *Config) NoiseSuppression() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.NoiseSuppression
}

// HighPassFreq частота среза high-pass фильтра в Гц.
func (c *Config) HighPassFreq() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.HighPassFreq
}

// AudioDevice имя устройства захвата. Переменная окружения
// DIKTOR_AUDIO_DEVICE имеет приоритет над конфигом.
func (c *Config) AudioDevice() string {
	if dev := os.Getenv("DIKTOR_AUDIO_DEVICE"); dev != "" {
		return dev
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.AudioDevice
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Notifications
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Notifications = !c.data.Notifications
	c.save()
	return c.data.Notifications
}

// PauseHotkey возвращает горячую клавишу паузы.
func (c *Config) PauseHotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.PauseHotkey
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.UILanguage
}

// expandHome разворачивает ~ в начале пути.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
