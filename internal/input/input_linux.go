//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"
)

type linuxTyper struct {
	useWayland bool
	hasWtype   bool
}

func newTyper() (Typer, error) {
	t := &linuxTyper{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	if t.useWayland {
		_, err := exec.LookPath("wtype")
		t.hasWtype = err == nil
	}
	return t, nil
}

func (t *linuxTyper) Type(text string) error {
	// На Wayland предпочитаем wtype; без него через XWayland
	// часто работает и xdotool.
	if t.useWayland && t.hasWtype {
		return t.typeWayland(text)
	}
	return t.typeX11(text)
}

func (t *linuxTyper) typeX11(text string) error {
	cmd := exec.Command("xdotool", "type", "--clearmodifiers", "--delay", "12", "--", text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool: %w (%s)", err, out)
	}
	return nil
}

func (t *linuxTyper) typeWayland(text string) error {
	cmd := exec.Command("wtype", "-d", "12", "--", text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("wtype: %w (%s)", err, out)
	}
	return nil
}
