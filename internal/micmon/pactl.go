// Package micmon отслеживает активные записи с микрофона через PulseAudio.
//
// Состояние аудиосервера опрашивается командами pactl: список источников
// (sources) даёт имена и описания устройств, список source-outputs -
// активные потоки записи и имена приложений.
package micmon

import (
	"fmt"
	"os/exec"
	"strings"
)

// Source устройство захвата звука.
type Source struct {
	Index       string
	Name        string
	Description string
}

// SourceOutput активный поток записи.
type SourceOutput struct {
	App         string // application.name из свойств потока
	SourceIndex string // индекс устройства, с которого идёт запись
}

// listSources возвращает устройства захвата по выводу pactl.
func listSources() (map[string]Source, error) {
	out, err := exec.Command("pactl", "list", "sources").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sources: %w", err)
	}
	return parseSources(string(out)), nil
}

// listSourceOutputs возвращает активные потоки записи по выводу pactl.
func listSourceOutputs() ([]SourceOutput, error) {
	out, err := exec.Command("pactl", "list", "source-outputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list source-outputs: %w", err)
	}
	return parseSourceOutputs(string(out)), nil
}

func parseSources(out string) map[string]Source {
	sources := map[string]Source{}
	var current string

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "Source #"):
			current = strings.TrimSpace(strings.TrimPrefix(line, "Source #"))
			sources[current] = Source{Index: current}

		case current != "" && strings.HasPrefix(trimmed, "Name:"):
			s := sources[current]
			s.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Name:"))
			sources[current] = s

		case current != "" && strings.HasPrefix(trimmed, "Description:"):
			s := sources[current]
			s.Description = strings.TrimSpace(strings.TrimPrefix(trimmed, "Description:"))
			sources[current] = s
		}
	}

	return sources
}

func parseSourceOutputs(out string) []SourceOutput {
	var outputs []SourceOutput

	blocks := strings.Split(out, "Source Output #")
	for _, block := range blocks[1:] {
		so := SourceOutput{App: "Unknown"}

		for _, line := range strings.Split(block, "\n") {
			trimmed := strings.TrimSpace(line)

			if strings.HasPrefix(trimmed, "application.name") {
				if name, ok := quotedValue(trimmed); ok {
					so.App = name
				}
			} else if strings.HasPrefix(trimmed, "Source:") {
				so.SourceIndex = strings.TrimSpace(strings.TrimPrefix(trimmed, "Source:"))
			}
		}

		outputs = append(outputs, so)
	}

	return outputs
}

// quotedValue извлекает значение в кавычках из строки вида
// `application.name = "parecord"`.
func quotedValue(line string) (string, bool) {
	start := strings.Index(line, `"`)
	end := strings.LastIndex(line, `"`)
	if start < 0 || end <= start {
		return "", false
	}
	return line[start+1 : end], true
}
