package speech

import (
	"fmt"
	"log"
	"sync"

	"diktor/internal/models"
)

// Названия движков распознавания.
const (
	EngineWhisper = "whisper"        // локальный whisper.cpp
	EngineServer  = "whisper-server" // внешний whisper-server (REST)
)

// Factory управляет созданием и переключением распознавателей.
type Factory struct {
	manager   *models.Manager
	serverURL string
	current   Recognizer
	modelID   string
	mu        sync.RWMutex
}

// NewFactory создаёт фабрику распознавателей.
// serverURL используется движком whisper-server и как запасной вариант.
func NewFactory(manager *models.Manager, serverURL string) *Factory {
	return &Factory{
		manager:   manager,
		serverURL: serverURL,
	}
}

// Create создаёт распознаватель указанного движка.
// Для whisper modelID - предпочитаемая модель, при её отсутствии
// берётся лучшая из скачанных.
func (f *Factory) Create(engine, modelID string) (Recognizer, error) {
	switch engine {
	case EngineWhisper:
		info, ok := f.manager.FindBest(modelID)
		if !ok {
			return nil, fmt.Errorf("нет скачанных моделей whisper")
		}
		if info.ID != modelID {
			log.Printf("Модель %s не скачана, используется %s", modelID, info.ID)
		}
		rec, err := NewWhisperFromFile(f.manager.ModelPath(info))
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки модели %s: %w", info.ID, err)
		}
		return rec, nil

	case EngineServer:
		return NewServer(f.serverURL)

	default:
		return nil, fmt.Errorf("неизвестный движок: %s", engine)
	}
}

// Load создаёт распознаватель и устанавливает его как текущий.
// При ошибке пробует альтернативный движок: whisper -> whisper-server
// (если настроен адрес) и наоборот.
func (f *Factory) Load(engine, modelID string) error {
	rec, err := f.Create(engine, modelID)
	if err != nil {
		fallback := f.fallbackEngine(engine)
		if fallback == "" {
			return err
		}

		log.Printf("Движок %s недоступен (%v), переключение на %s", engine, err, fallback)
		rec, err = f.Create(fallback, modelID)
		if err != nil {
			return fmt.Errorf("резервный движок %s: %w", fallback, err)
		}
	}

	f.mu.Lock()
	old := f.current
	f.current = rec
	f.modelID = modelID
	f.mu.Unlock()

	if old != nil {
		old.Close()
	}

	return nil
}

// Swap атомарно меняет текущий распознаватель на новый (hot-swap).
func (f *Factory) Swap(engine, modelID string) error {
	rec, err := f.Create(engine, modelID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	old := f.current
	f.current = rec
	f.modelID = modelID
	f.mu.Unlock()

	// Старый распознаватель закрывается в фоне
	if old != nil {
		go old.Close()
	}

	return nil
}

func (f *Factory) fallbackEngine(engine string) string {
	switch engine {
	case EngineWhisper:
		if f.serverURL != "" {
			return EngineServer
		}
	case EngineServer:
		return EngineWhisper
	}
	return ""
}

// Current возвращает текущий распознаватель (thread-safe).
func (f *Factory) Current() Recognizer {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// CurrentModelID возвращает ID текущей модели.
func (f *Factory) CurrentModelID() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.modelID
}

// IsLoaded проверяет, загружен ли распознаватель.
func (f *Factory) IsLoaded() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current != nil
}

// Close закрывает текущий распознаватель.
func (f *Factory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		f.current.Close()
		f.current = nil
	}
}
