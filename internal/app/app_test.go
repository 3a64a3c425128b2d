package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"diktor/internal/config"
	"diktor/internal/tray"
)

func testConfig(t *testing.T, autoPunct bool) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	body := fmt.Sprintf(`{"auto_punctuation": %v}`, autoPunct)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return config.NewFromPath(path)
}

// Завершение распознавания не должно затирать включённую паузу:
// состояние после сегмента выбирается с учётом a.paused.
func TestRestingStateKeepsPause(t *testing.T) {
	a := &App{}

	if state, label := a.restingState(); state != tray.StateIdle || label != "IDLE" {
		t.Errorf("без паузы: state=%v label=%q, ожидалось Idle/IDLE", state, label)
	}

	a.paused.Store(true)
	if state, label := a.restingState(); state != tray.StatePaused || label != "PAUSED" {
		t.Errorf("на паузе: state=%v label=%q, ожидалось Paused/PAUSED", state, label)
	}

	a.paused.Store(false)
	if state, label := a.restingState(); state != tray.StateIdle || label != "IDLE" {
		t.Errorf("после снятия паузы: state=%v label=%q", state, label)
	}
}

func TestPolishStripsTrailingDot(t *testing.T) {
	a := &App{}

	tests := []struct {
		name string
		auto bool
		in   string
		want string
	}{
		{"точка убирается", false, "привет мир.", "привет мир"},
		{"многоточие остаётся", false, "ну что ж...", "ну что ж..."},
		{"без точки", false, "привет мир", "привет мир"},
		{"автопунктуация сохраняет точку", true, "привет мир.", "привет мир."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.config = testConfig(t, tt.auto)
			if got := a.polish(tt.in); got != tt.want {
				t.Errorf("polish(%q) = %q, ожидалось %q", tt.in, got, tt.want)
			}
		})
	}
}
