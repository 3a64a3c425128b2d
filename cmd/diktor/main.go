// Diktor - фоновая диктовка: слушает микрофон, нарезает речь по паузам
// и печатает распознанный текст в активное окно.
//
// Работает в системном трее. Горячая клавиша (по умолчанию
// Ctrl+Shift+D) приостанавливает и возобновляет прослушивание.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"diktor/internal/app"
	"diktor/internal/hotkey"
	"diktor/internal/logging"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	closeLog, err := logging.Setup("diktor")
	if err != nil {
		log.SetFlags(log.Ltime | log.Lshortfile)
		log.Printf("Лог-файл недоступен: %v", err)
	} else {
		defer closeLog()
	}

	log.Printf("Diktor %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New()
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	// SIGINT/SIGTERM завершают приложение аккуратно
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		application.Close()
	}()

	log.Println("Приложение запущено. Говорите - текст будет напечатан.")
	application.Run()
}
