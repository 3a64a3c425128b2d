// Package osd предоставляет экранный индикатор активного микрофона:
// небольшое окно поверх всех окон с пульсирующей красной точкой и именем
// пишущего приложения.
package osd

import (
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Config параметры индикатора.
type Config struct {
	Width       int           // Ширина окна в пикселях
	Height      int           // Высота окна в пикселях
	RefreshRate time.Duration // Интервал перерисовки
	BGColor     color.NRGBA   // Фон
	DotColor    color.NRGBA   // Цвет точки записи
	TextColor   color.NRGBA   // Цвет текста
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Width:       240,
		Height:      44,
		RefreshRate: 50 * time.Millisecond,
		BGColor:     color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		DotColor:    color.NRGBA{R: 255, G: 80, B: 80, A: 255},
		TextColor:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
	}
}

// Window управляет окном индикатора.
type Window struct {
	mu     sync.Mutex
	config Config
	label  string

	window  *app.Window
	running bool
	started time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New создаёт индикатор.
func New(cfg Config) *Window {
	return &Window{config: cfg}
}

// Show показывает индикатор с подписью (неблокирующий вызов).
// Повторный вызов обновляет подпись.
func (w *Window) Show(label string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.label = label

	if w.running {
		if w.window != nil {
			w.window.Invalidate()
		}
		return
	}

	w.running = true
	w.started = time.Now()
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	// Каналы передаются параметрами: Hide обнуляет поле до закрытия,
	// и повторное чтение поля может увидеть nil
	go w.runEventLoop(w.stopCh, w.doneCh)
}

// Hide закрывает индикатор.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	// Дожидаемся закрытия окна
	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// IsVisible возвращает true если индикатор показан.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

const windowTitle = "Diktor - Микрофон"

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	w.window = new(app.Window)
	w.window.Option(
		app.Title(windowTitle),
		app.Size(unit.Dp(w.config.Width), unit.Dp(w.config.Height)),
		app.Decorated(false),
	)

	var ops op.Ops

	// Позиционируем окно после его появления
	go positionWindow(windowTitle, w.config.Width, w.config.Height)

	ticker := time.NewTicker(w.config.RefreshRate)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-stopCh:
				if w.window != nil {
					w.window.Perform(system.ActionClose)
				}
				return
			case <-ticker.C:
				if w.window != nil {
					w.window.Invalidate()
				}
			}
		}
	}()

	for {
		switch e := w.window.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			w.mu.Lock()
			label := w.label
			started := w.started
			w.mu.Unlock()

			w.draw(gtx, label, time.Since(started))
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context, label string, elapsed time.Duration) {
	paint.FillShape(gtx.Ops, w.config.BGColor, clip.Rect{Max: gtx.Constraints.Max}.Op())

	layout.UniformInset(unit.Dp(10)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return w.drawDot(gtx, elapsed)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(10)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				th := material.NewTheme()
				th.Palette.Fg = w.config.TextColor
				lbl := material.Label(th, unit.Sp(13), label)
				lbl.Font.Weight = font.Medium
				lbl.MaxLines = 1
				return lbl.Layout(gtx)
			}),
		)
	})
}

// drawDot рисует пульсирующую точку записи.
func (w *Window) drawDot(gtx layout.Context, elapsed time.Duration) layout.Dimensions {
	size := gtx.Dp(unit.Dp(12))

	// Пульсация с периодом в секунду
	pulse := 0.6 + 0.4*math.Abs(math.Sin(elapsed.Seconds()*math.Pi))
	col := w.config.DotColor
	col.A = uint8(float64(col.A) * pulse)

	circle := clip.Ellipse{Max: image.Pt(size, size)}
	paint.FillShape(gtx.Ops, col, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size)}
}
