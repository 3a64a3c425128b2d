//go:build linux

package osd

import (
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// positionWindow прижимает окно к правому верхнему углу экрана и делает
// его поверх всех окон. Вызывается после появления окна.
func positionWindow(windowTitle string, width, height int) {
	// Даём окну время появиться
	time.Sleep(100 * time.Millisecond)

	screenWidth, _ := getScreenSize()
	if screenWidth == 0 {
		return
	}

	x := screenWidth - width - 20
	y := 20

	out, err := exec.Command("xdotool", "search", "--name", windowTitle).Output()
	if err != nil {
		return
	}

	ids := strings.Fields(string(out))
	if len(ids) == 0 {
		return
	}
	windowID := ids[0]

	exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y)).Run()

	// Поверх всех окон: wmctrl, при его отсутствии xprop
	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above").Run(); err != nil {
		exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}
}

func getScreenSize() (width, height int) {
	out, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}

	parts := strings.Fields(string(out))
	if len(parts) != 2 {
		return 0, 0
	}

	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}
