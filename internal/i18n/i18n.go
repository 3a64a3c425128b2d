// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Diktor",
		"app_tooltip": "Diktor - голосовой ввод",

		// Tray menu
		"tray_ready":              "Слушаю",
		"tray_recording":          "Запись...",
		"tray_processing":         "Распознавание...",
		"tray_paused":             "Пауза",
		"tray_pause":              "Приостановить",
		"tray_pause_hint":         "Приостановить прослушивание микрофона",
		"tray_resume":             "Продолжить",
		"tray_resume_hint":        "Возобновить прослушивание микрофона",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",
		"tray_mic_active":         "Микрофон используется",

		// Notifications
		"notify_recording":       "Запись...",
		"notify_recording_hint":  "Говорите в микрофон",
		"notify_processing":      "Распознаю...",
		"notify_processing_hint": "Пожалуйста, подождите",
		"notify_done":            "Напечатано",
		"notify_empty":           "Не удалось распознать",
		"notify_empty_hint":      "Попробуйте ещё раз",
		"notify_error":           "Ошибка",
		"notify_ready":           "Diktor готов к работе",
		"notify_paused":          "Прослушивание приостановлено",
		"notify_resumed":         "Прослушивание возобновлено",
		"notify_mic_active":      "Микрофон активен",
		"notify_mic_inactive":    "Микрофон свободен",

		// Dialogs
		"dialog_download_title":    "Загрузка модели",
		"dialog_download_question": "Модель %s не найдена. Скачать (%s)?",
		"dialog_download_progress": "Загрузка модели %s...",

		// Startup window
		"startup_loading": "Загрузка модели...",

		// Errors
		"error_no_model":    "Нет скачанных моделей. Скачайте модель и перезапустите.",
		"error_audio":       "Ошибка захвата звука",
		"error_recognition": "Ошибка распознавания",
		"error_input":       "Ошибка ввода текста",
	},
	EN: {
		// App
		"app_name":    "Diktor",
		"app_tooltip": "Diktor - voice typing",

		// Tray menu
		"tray_ready":              "Listening",
		"tray_recording":          "Recording...",
		"tray_processing":         "Transcribing...",
		"tray_paused":             "Paused",
		"tray_pause":              "Pause",
		"tray_pause_hint":         "Pause microphone listening",
		"tray_resume":             "Resume",
		"tray_resume_hint":        "Resume microphone listening",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close the application",
		"tray_mic_active":         "Microphone in use",

		// Notifications
		"notify_recording":       "Recording...",
		"notify_recording_hint":  "Speak into the microphone",
		"notify_processing":      "Transcribing...",
		"notify_processing_hint": "Please wait",
		"notify_done":            "Typed",
		"notify_empty":           "Nothing recognized",
		"notify_empty_hint":      "Please try again",
		"notify_error":           "Error",
		"notify_ready":           "Diktor is ready",
		"notify_paused":          "Listening paused",
		"notify_resumed":         "Listening resumed",
		"notify_mic_active":      "Microphone active",
		"notify_mic_inactive":    "Microphone released",

		// Dialogs
		"dialog_download_title":    "Model download",
		"dialog_download_question": "Model %s is not downloaded. Download it (%s)?",
		"dialog_download_progress": "Downloading model %s...",

		// Startup window
		"startup_loading": "Loading model...",

		// Errors
		"error_no_model":    "No models downloaded. Download a model and restart.",
		"error_audio":       "Audio capture error",
		"error_recognition": "Recognition error",
		"error_input":       "Text input error",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}
