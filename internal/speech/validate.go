package speech

import "strings"

// Типичные галлюцинации Whisper на тишине и шуме.
var noisePatterns = map[string]bool{
	"thank you":           true,
	"thanks for watching": true,
	"subscribe":           true,
	"bye":                 true,
	"music":               true,
	"[music]":             true,
	"applause":            true,
	"[applause]":          true,
	"foreign":             true,
	"[foreign]":           true,
	"blank":               true,
	"[blank]":             true,
}

// IsValidTranscription отфильтровывает галлюцинации Whisper: знаменитые
// фразы из обучающих субтитров, односимвольный мусор и чистую пунктуацию.
func IsValidTranscription(text string) bool {
	if len(text) < 2 {
		return false
	}

	// Строки из одного повторяющегося символа ("аааа", "....")
	distinct := map[rune]bool{}
	for _, r := range strings.ReplaceAll(text, " ", "") {
		distinct[r] = true
	}
	if len(distinct) < 2 {
		return false
	}

	if noisePatterns[strings.ToLower(strings.TrimSpace(text))] {
		return false
	}

	if strings.Trim(text, ".,!?;: ") == "" {
		return false
	}

	return true
}
