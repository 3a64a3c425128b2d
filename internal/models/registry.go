// Package models управляет моделями Whisper: реестр, скачивание, выбор
// лучшей доступной модели.
package models

// ModelInfo информация о модели.
type ModelInfo struct {
	ID       string // Уникальный идентификатор: "large-v3"
	Name     string // Отображаемое имя: "Large v3"
	Filename string // Имя файла: "ggml-large-v3.bin"
	URL      string // URL для скачивания
	Size     int64  // Размер в байтах (для прогресса)
}

const hfBase = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/"

// Registry все доступные модели ggml.
var Registry = []ModelInfo{
	{
		ID:       "large-v3",
		Name:     "Large v3",
		Filename: "ggml-large-v3.bin",
		URL:      hfBase + "ggml-large-v3.bin",
		Size:     3094 * 1024 * 1024,
	},
	{
		ID:       "large-v3-turbo",
		Name:     "Large v3 Turbo",
		Filename: "ggml-large-v3-turbo.bin",
		URL:      hfBase + "ggml-large-v3-turbo.bin",
		Size:     1624 * 1024 * 1024,
	},
	{
		ID:       "large-v3-turbo-q5",
		Name:     "Large v3 Turbo Q5",
		Filename: "ggml-large-v3-turbo-q5_0.bin",
		URL:      hfBase + "ggml-large-v3-turbo-q5_0.bin",
		Size:     574 * 1024 * 1024,
	},
	{
		ID:       "medium",
		Name:     "Medium",
		Filename: "ggml-medium.bin",
		URL:      hfBase + "ggml-medium.bin",
		Size:     1533 * 1024 * 1024,
	},
	{
		ID:       "small",
		Name:     "Small",
		Filename: "ggml-small.bin",
		URL:      hfBase + "ggml-small.bin",
		Size:     466 * 1024 * 1024,
	},
	{
		ID:       "small-q5",
		Name:     "Small Q5",
		Filename: "ggml-small-q5_1.bin",
		URL:      hfBase + "ggml-small-q5_1.bin",
		Size:     190 * 1024 * 1024,
	},
	{
		ID:       "base",
		Name:     "Base",
		Filename: "ggml-base.bin",
		URL:      hfBase + "ggml-base.bin",
		Size:     142 * 1024 * 1024,
	},
	{
		ID:       "base-q5",
		Name:     "Base Q5",
		Filename: "ggml-base-q5_1.bin",
		URL:      hfBase + "ggml-base-q5_1.bin",
		Size:     60 * 1024 * 1024,
	},
	{
		ID:       "tiny",
		Name:     "Tiny",
		Filename: "ggml-tiny.bin",
		URL:      hfBase + "ggml-tiny.bin",
		Size:     75 * 1024 * 1024,
	},
	{
		ID:       "tiny-q5",
		Name:     "Tiny Q5",
		Filename: "ggml-tiny-q5_1.bin",
		URL:      hfBase + "ggml-tiny-q5_1.bin",
		Size:     32 * 1024 * 1024,
	},
}

// hierarchy модели от лучшей к худшей. Используется при выборе замены,
// когда предпочитаемая модель не скачана.
var hierarchy = []string{
	"large-v3",
	"large-v3-turbo",
	"large-v3-turbo-q5",
	"medium",
	"small",
	"small-q5",
	"base",
	"base-q5",
	"tiny",
	"tiny-q5",
}

// DefaultModelID модель по умолчанию.
func DefaultModelID() string {
	return "large-v3"
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}
