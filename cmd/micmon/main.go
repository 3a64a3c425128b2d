// Micmon - монитор активности микрофона: опрашивает PulseAudio и
// показывает индикатор, когда какое-либо приложение пишет звук.
//
// Тип индикатора настраивается в ~/.config/diktor/micmon.json:
// иконка в трее, уведомления или окно поверх всех окон (osd).
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"diktor/internal/config"
	"diktor/internal/logging"
	"diktor/internal/micmon"
	"diktor/internal/notify"
	"diktor/internal/osd"
	"diktor/internal/tray"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	closeLog, err := logging.Setup("micmon")
	if err != nil {
		log.SetFlags(log.Ltime | log.Lshortfile)
		log.Printf("Лог-файл недоступен: %v", err)
	} else {
		defer closeLog()
	}

	cfg := config.NewMonitor()
	log.Printf("Micmon %s запускается: индикатор %s, интервал %s",
		Version, cfg.IndicatorType(), cfg.CheckInterval())

	monitor := micmon.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	switch cfg.IndicatorType() {
	case config.IndicatorTray:
		runTray(ctx, cancel, monitor)
	case config.IndicatorOSD:
		runOSD(ctx, monitor)
	default:
		runNotification(ctx, monitor)
	}
}

// runTray держит иконку в трее постоянно и меняет её состояние.
func runTray(ctx context.Context, cancel context.CancelFunc, monitor *micmon.Monitor) {
	t := tray.New(tray.Callbacks{
		OnQuit: func() {
			cancel()
		},
	})

	monitor.OnActivate = func(desc string) {
		t.SetState(tray.StateMicActive)
		t.SetStatusText(desc)
	}
	monitor.OnDeactivate = func() {
		t.SetState(tray.StateIdle)
	}

	t.Run(func() {
		t.SetState(tray.StateIdle)
		go func() {
			monitor.Run(ctx)
			t.Quit()
		}()
	})
}

// runOSD показывает окно с красной точкой поверх всех окон.
func runOSD(ctx context.Context, monitor *micmon.Monitor) {
	win := osd.New(osd.DefaultConfig())

	monitor.OnActivate = func(desc string) {
		win.Show(desc)
	}
	monitor.OnDeactivate = func() {
		win.Hide()
	}

	monitor.Run(ctx)
	win.Hide()
}

// runNotification шлёт системные уведомления на переходах.
func runNotification(ctx context.Context, monitor *micmon.Monitor) {
	notifier := notify.New(true)

	monitor.OnActivate = func(desc string) {
		notifier.MicActive(desc)
	}
	monitor.OnDeactivate = func() {
		notifier.MicInactive()
	}

	monitor.Run(ctx)
}
