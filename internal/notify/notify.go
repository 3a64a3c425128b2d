// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"

	"diktor/internal/i18n"
)

const appName = "Diktor"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Ready показывает уведомление о готовности.
func (n *Notifier) Ready() {
	n.notify("", i18n.T("notify_ready"))
}

// Processing показывает уведомление об обработке сегмента.
func (n *Notifier) Processing() {
	n.notify(i18n.T("notify_processing"), i18n.T("notify_processing_hint"))
}

// Typed показывает уведомление о напечатанном тексте.
func (n *Notifier) Typed(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify(i18n.T("notify_done"), text)
}

// Empty показывает уведомление о пустом результате.
func (n *Notifier) Empty() {
	n.notify(i18n.T("notify_empty"), i18n.T("notify_empty_hint"))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Paused показывает уведомление о паузе/возобновлении прослушивания.
func (n *Notifier) Paused(paused bool) {
	if paused {
		n.notify("", i18n.T("notify_paused"))
	} else {
		n.notify("", i18n.T("notify_resumed"))
	}
}

// MicActive показывает уведомление об активном микрофоне (монитор).
func (n *Notifier) MicActive(desc string) {
	n.notify(i18n.T("notify_mic_active"), desc)
}

// MicInactive показывает уведомление об освобождении микрофона.
func (n *Notifier) MicInactive() {
	n.notify("", i18n.T("notify_mic_inactive"))
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
