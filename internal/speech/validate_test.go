package speech

import "testing"

func TestIsValidTranscription(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"привет мир", true},
		{"Hello, world", true},
		{"ok", true},
		{"раз два три", true},

		// Слишком коротко
		{"", false},
		{"а", false},

		// Один повторяющийся символ
		{"аааааа", false},
		{"......", false},
		{"а а а а", false},

		// Галлюцинации Whisper
		{"Thank you", false},
		{"thanks for watching", false},
		{"[music]", false},
		{"  Bye  ", false},

		// Только пунктуация
		{".,!?", false},
		{"?!", false},
	}

	for _, c := range cases {
		if got := IsValidTranscription(c.text); got != c.want {
			t.Errorf("IsValidTranscription(%q) = %v, ожидалось %v", c.text, got, c.want)
		}
	}
}
