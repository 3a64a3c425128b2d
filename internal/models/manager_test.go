package models

import (
	"os"
	"path/filepath"
	"testing"
)

// touchModel создаёт непустой файл модели в директории менеджера.
func touchModel(t *testing.T, m *Manager, id string) ModelInfo {
	t.Helper()
	info, ok := GetModel(id)
	if !ok {
		t.Fatalf("модель %s не найдена в реестре", id)
	}
	if err := os.WriteFile(m.ModelPath(info), []byte("ggml"), 0644); err != nil {
		t.Fatal(err)
	}
	return info
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "models"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestIsDownloaded(t *testing.T) {
	m := newTestManager(t)

	info, _ := GetModel("tiny")
	if m.IsDownloaded(info) {
		t.Error("модель не должна числиться скачанной")
	}

	// Пустой файл не считается скачанной моделью
	if err := os.WriteFile(m.ModelPath(info), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if m.IsDownloaded(info) {
		t.Error("пустой файл не должен считаться моделью")
	}

	touchModel(t, m, "tiny")
	if !m.IsDownloaded(info) {
		t.Error("модель должна числиться скачанной")
	}
}

func TestFindBestPreferred(t *testing.T) {
	m := newTestManager(t)
	touchModel(t, m, "tiny")
	touchModel(t, m, "small")

	info, ok := m.FindBest("small")
	if !ok || info.ID != "small" {
		t.Errorf("FindBest = %v %v, ожидалась предпочитаемая small", info.ID, ok)
	}
}

func TestFindBestFallsBackByQuality(t *testing.T) {
	m := newTestManager(t)
	touchModel(t, m, "tiny-q5")
	touchModel(t, m, "base")

	// large-v3 не скачана, выбирается лучшая из имеющихся
	info, ok := m.FindBest("large-v3")
	if !ok || info.ID != "base" {
		t.Errorf("FindBest = %v %v, ожидалась base", info.ID, ok)
	}
}

func TestFindBestNothingDownloaded(t *testing.T) {
	m := newTestManager(t)
	if _, ok := m.FindBest("large-v3"); ok {
		t.Error("ожидалось ok=false при пустой директории")
	}
}

func TestListDownloaded(t *testing.T) {
	m := newTestManager(t)
	touchModel(t, m, "base")
	touchModel(t, m, "medium")

	list := m.ListDownloaded()
	if len(list) != 2 {
		t.Fatalf("ListDownloaded вернул %d моделей, ожидалось 2", len(list))
	}
}

func TestRegistryConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, info := range Registry {
		if info.ID == "" || info.Filename == "" || info.URL == "" {
			t.Errorf("неполная запись реестра: %+v", info)
		}
		if seen[info.ID] {
			t.Errorf("дубликат ID: %s", info.ID)
		}
		seen[info.ID] = true
	}

	// Каждая модель иерархии есть в реестре
	for _, id := range hierarchy {
		if _, ok := GetModel(id); !ok {
			t.Errorf("модель %s из иерархии отсутствует в реестре", id)
		}
	}

	if _, ok := GetModel(DefaultModelID()); !ok {
		t.Errorf("модель по умолчанию %s отсутствует в реестре", DefaultModelID())
	}
}
