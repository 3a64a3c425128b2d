// Package logging настраивает вывод логов в консоль и дневной файл.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Setup направляет стандартный логгер одновременно в stdout и в файл
// ~/.local/share/diktor/logs/<name>-ГГГГММДД.log. Возвращает функцию
// закрытия файла.
func Setup(name string) (func(), error) {
	log.SetFlags(log.Ltime | log.Lshortfile)

	dir, err := logsDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию логов: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, time.Now().Format("20060102")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл лога: %w", err)
	}

	log.SetOutput(io.MultiWriter(os.Stdout, file))

	return func() {
		log.SetOutput(os.Stdout)
		file.Close()
	}, nil
}

func logsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("не удалось определить домашнюю директорию: %w", err)
	}
	return filepath.Join(home, ".local", "share", "diktor", "logs"), nil
}
