//go:build !linux

package osd

// positionWindow заглушка для не-Linux платформ: окно остаётся там,
// куда его поместил оконный менеджер.
func positionWindow(windowTitle string, width, height int) {}
