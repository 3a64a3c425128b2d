// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии прослушивания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconRecording - иконка во время записи речи (красная).
//
//go:embed icon_recording.png
var IconRecording []byte

// IconProcessing - иконка во время распознавания (оранжевая).
//
//go:embed icon_processing.png
var IconProcessing []byte

// IconPaused - иконка при приостановленном прослушивании (синяя).
//
//go:embed icon_paused.png
var IconPaused []byte

// IconMicActive - иконка монитора при активном микрофоне (зелёная).
//
//go:embed icon_mic_active.png
var IconMicActive []byte
