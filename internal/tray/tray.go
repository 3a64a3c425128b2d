// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"

	"diktor/embedded"
	"diktor/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota // фоновое прослушивание
	StateRecording
	StateProcessing
	StatePaused
	StateMicActive // для монитора микрофона
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnPauseToggle         func() bool // возвращает новое состояние паузы
	OnNotificationsToggle func() bool
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks Callbacks
	status    *systray.MenuItem
	pauseBtn  *systray.MenuItem
	notifyOn  *systray.MenuItem
	quitBtn   *systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks: callbacks,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("Diktor")
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	// Пауза
	t.pauseBtn = systray.AddMenuItem(i18n.T("tray_pause"), i18n.T("tray_pause_hint"))

	// Уведомления
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), true)

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.pauseBtn.ClickedCh:
			if t.callbacks.OnPauseToggle != nil {
				paused := t.callbacks.OnPauseToggle()
				if paused {
					t.pauseBtn.SetTitle(i18n.T("tray_resume"))
					t.pauseBtn.SetTooltip(i18n.T("tray_resume_hint"))
				} else {
					t.pauseBtn.SetTitle(i18n.T("tray_pause"))
					t.pauseBtn.SetTooltip(i18n.T("tray_pause_hint"))
				}
			}

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				enabled := t.callbacks.OnNotificationsToggle()
				if enabled {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
		}
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	switch state {
	case StateIdle:
		t.apply(embedded.IconIdle, i18n.T("tray_ready"))
	case StateRecording:
		t.apply(embedded.IconRecording, i18n.T("tray_recording"))
	case StateProcessing:
		t.apply(embedded.IconProcessing, i18n.T("tray_processing"))
	case StatePaused:
		t.apply(embedded.IconPaused, i18n.T("tray_paused"))
	case StateMicActive:
		t.apply(embedded.IconMicActive, i18n.T("tray_mic_active"))
	}
}

// SetStatusText выводит произвольный текст в строке статуса
// (например имя пишущего приложения в мониторе микрофона).
func (t *Tray) SetStatusText(text string) {
	if t.status != nil {
		t.status.SetTitle(text)
	}
	systray.SetTooltip("Diktor - " + text)
}

func (t *Tray) apply(icon []byte, status string) {
	systray.SetIcon(icon)
	systray.SetTooltip("Diktor - " + status)
	if t.status != nil {
		t.status.SetTitle(status)
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
