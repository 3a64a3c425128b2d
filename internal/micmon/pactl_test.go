package micmon

import "testing"

const sourcesFixture = `Source #0
	State: SUSPENDED
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo.monitor
	Description: Monitor of Built-in Audio Analog Stereo
	Driver: module-alsa-card.c
Source #1
	State: RUNNING
	Name: alsa_input.usb-Blue_Microphones_Yeti-00.analog-stereo
	Description: Yeti Stereo Microphone Analog Stereo
	Driver: module-alsa-card.c
`

const sourceOutputsFixture = `Source Output #42
	Driver: protocol-native.c
	Owner Module: 12
	Client: 87
	Source: 1
	Sample Specification: s16le 1ch 48000Hz
	Properties:
		application.name = "parecord"
		application.process.binary = "parecord"
Source Output #43
	Driver: protocol-native.c
	Source: 0
	Properties:
		media.name = "loopback"
`

func TestParseSources(t *testing.T) {
	sources := parseSources(sourcesFixture)

	if len(sources) != 2 {
		t.Fatalf("найдено %d источников, ожидалось 2", len(sources))
	}

	yeti := sources["1"]
	if yeti.Name != "alsa_input.usb-Blue_Microphones_Yeti-00.analog-stereo" {
		t.Errorf("Name = %q", yeti.Name)
	}
	if yeti.Description != "Yeti Stereo Microphone Analog Stereo" {
		t.Errorf("Description = %q", yeti.Description)
	}
}

func TestParseSourceOutputs(t *testing.T) {
	outputs := parseSourceOutputs(sourceOutputsFixture)

	if len(outputs) != 2 {
		t.Fatalf("найдено %d потоков, ожидалось 2", len(outputs))
	}

	if outputs[0].App != "parecord" || outputs[0].SourceIndex != "1" {
		t.Errorf("первый поток: %+v", outputs[0])
	}

	// Поток без application.name получает заглушку
	if outputs[1].App != "Unknown" || outputs[1].SourceIndex != "0" {
		t.Errorf("второй поток: %+v", outputs[1])
	}
}

func TestParseSourceOutputsEmpty(t *testing.T) {
	if outputs := parseSourceOutputs(""); len(outputs) != 0 {
		t.Errorf("пустой вывод дал %d потоков", len(outputs))
	}
}

func TestQuotedValue(t *testing.T) {
	if v, ok := quotedValue(`application.name = "Firefox"`); !ok || v != "Firefox" {
		t.Errorf("quotedValue = %q %v", v, ok)
	}
	if _, ok := quotedValue("application.name = Firefox"); ok {
		t.Error("строка без кавычек не должна парситься")
	}
}
