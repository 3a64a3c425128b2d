package micmon

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"diktor/internal/config"
)

// StateFile отражает текущее состояние для внешних скриптов:
// "ACTIVE:<приложение>" пока идёт запись, файла нет - когда тишина.
const StateFile = "/tmp/diktor-micmon-state"

// Monitor опрашивает PulseAudio и сообщает о началах и окончаниях
// записи с микрофона.
type Monitor struct {
	cfg    *config.MonitorConfig
	active bool

	// OnActivate вызывается когда запись началась, с описанием вида
	// "приложение (устройство)". OnDeactivate - когда все записи
	// прекратились. Вызовы приходят из горутины Run.
	OnActivate   func(desc string)
	OnDeactivate func()

	// подменяются в тестах
	sources       func() (map[string]Source, error)
	sourceOutputs func() ([]SourceOutput, error)
}

// New создаёт монитор с указанной конфигурацией.
func New(cfg *config.MonitorConfig) *Monitor {
	return &Monitor{
		cfg:           cfg,
		sources:       listSources,
		sourceOutputs: listSourceOutputs,
	}
}

// Check делает один опрос аудиосервера. Возвращает признак активной
// записи и её описание.
func (m *Monitor) Check() (bool, string) {
	outputs, err := m.sourceOutputs()
	if err != nil {
		log.Printf("Ошибка опроса source-outputs: %v", err)
		return false, ""
	}
	if len(outputs) == 0 {
		return false, ""
	}

	sources, err := m.sources()
	if err != nil {
		log.Printf("Ошибка опроса sources: %v", err)
		return false, ""
	}

	for _, out := range outputs {
		src, ok := sources[out.SourceIndex]
		if !ok {
			continue
		}

		if !m.shouldMonitor(src) {
			continue
		}

		desc := out.App
		if m.cfg.ShowAppName() && src.Description != "" {
			desc = out.App + " (" + src.Description + ")"
		}
		return true, desc
	}

	return false, ""
}

// shouldMonitor применяет правила фильтрации устройств.
func (m *Monitor) shouldMonitor(src Source) bool {
	name := strings.ToLower(src.Name)
	desc := strings.ToLower(src.Description)

	if !m.cfg.MonitorAllDevices() {
		pattern := strings.ToLower(m.cfg.MonitorDevice())
		if pattern != "" && !strings.Contains(name, pattern) && !strings.Contains(desc, pattern) {
			return false
		}
	}

	for _, ignore := range m.cfg.IgnoreDevices() {
		p := strings.ToLower(ignore)
		if p != "" && (strings.Contains(name, p) || strings.Contains(desc, p)) {
			return false
		}
	}

	return true
}

// Run крутит цикл опроса до отмены контекста, дёргая колбэки на
// переходах состояния. При выходе сбрасывает индикацию.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.CheckInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if m.active {
				m.deactivate()
			}
			return
		case <-ticker.C:
			isActive, desc := m.Check()

			switch {
			case isActive && !m.active:
				m.active = true
				os.WriteFile(StateFile, []byte("ACTIVE:"+desc), 0644)
				if m.cfg.LogActivity() {
					log.Printf("Микрофон активен: %s", desc)
				}
				if m.OnActivate != nil {
					m.OnActivate(desc)
				}

			case !isActive && m.active:
				m.active = false
				m.deactivate()
			}
		}
	}
}

func (m *Monitor) deactivate() {
	os.Remove(StateFile)
	if m.cfg.LogActivity() {
		log.Println("Микрофон неактивен")
	}
	if m.OnDeactivate != nil {
		m.OnDeactivate()
	}
}

// Active возвращает текущее состояние (для тестов и статуса).
func (m *Monitor) Active() bool {
	return m.active
}
