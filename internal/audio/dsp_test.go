package audio

import (
	"math"
	"testing"
)

// sine генерирует синусоиду указанной частоты и амплитуды.
func sine(freq, amplitude float64, rate, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float64
		eps     float64
	}{
		{"пустой", nil, 0, 0},
		{"тишина", make([]float32, 480), 0, 0},
		{"константа", []float32{0.5, 0.5, 0.5, 0.5}, 0.5, 1e-9},
		{"синус 0.5", sine(440, 0.5, CaptureRate, 4800), 0.5 / math.Sqrt2, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RMS(tt.samples)
			if math.Abs(got-tt.want) > tt.eps {
				t.Errorf("RMS = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

func TestHighPassRejectsDC(t *testing.T) {
	hp := NewHighPass(80, CaptureRate)

	dc := make([]float32, CaptureRate) // 1 секунда постоянного уровня
	for i := range dc {
		dc[i] = 0.8
	}

	out := hp.Apply(dc)

	// После переходного процесса постоянная составляющая должна быть подавлена
	tail := out[len(out)/2:]
	if got := RMS(tail); got > 0.01 {
		t.Errorf("RMS хвоста DC-сигнала = %v, должен быть ~0", got)
	}
}

func TestHighPassKeepsSpeechBand(t *testing.T) {
	hp := NewHighPass(80, CaptureRate)

	in := sine(1000, 0.5, CaptureRate, CaptureRate)
	out := hp.Apply(in)

	inRMS := RMS(in[len(in)/2:])
	outRMS := RMS(out[len(out)/2:])
	if outRMS < inRMS*0.9 {
		t.Errorf("1kHz ослаблен: %v -> %v", inRMS, outRMS)
	}
}

func TestHighPassAttenuatesHum(t *testing.T) {
	hp := NewHighPass(80, CaptureRate)

	in := sine(20, 0.5, CaptureRate, CaptureRate)
	out := hp.Apply(in)

	outRMS := RMS(out[len(out)/2:])
	// 20Hz при срезе 80Hz и 4-м порядке: подавление > 40dB
	if outRMS > 0.01 {
		t.Errorf("20Hz гул не подавлен: RMS = %v", outRMS)
	}
}

func TestDownsample48to16(t *testing.T) {
	in := []float32{1, 1, 1, 2, 2, 2, 3, 3, 3, 4}
	out := Downsample48to16(in)

	if len(out) != 3 {
		t.Fatalf("len = %d, ожидалось 3", len(out))
	}
	for i, want := range []float32{1, 2, 3} {
		if out[i] != want {
			t.Errorf("out[%d] = %v, ожидалось %v", i, out[i], want)
		}
	}
}

func TestDownsamplePreservesTone(t *testing.T) {
	in := sine(440, 0.5, CaptureRate, CaptureRate/10)
	out := Downsample48to16(in)

	if len(out) != len(in)/3 {
		t.Fatalf("len = %d, ожидалось %d", len(out), len(in)/3)
	}
	// Усреднение по 3 почти не меняет амплитуду тона 440Hz
	if got := RMS(out); math.Abs(got-0.5/math.Sqrt2) > 0.01 {
		t.Errorf("RMS после ресемплинга = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	samples := []float32{0.1, -0.4, 0.2}
	Normalize(samples, 0.95)

	if got := samples[1]; got != -0.95 {
		t.Errorf("пик = %v, ожидалось -0.95", got)
	}

	// Нулевой сигнал не трогаем (деление на ноль)
	zeros := make([]float32, 8)
	Normalize(zeros, 0.95)
	for _, s := range zeros {
		if s != 0 {
			t.Fatal("нулевой сигнал изменился")
		}
	}
}

func TestPadToMin(t *testing.T) {
	short := []float32{1, 2, 3}
	padded := PadToMin(short, MinSamples)
	if len(padded) != MinSamples {
		t.Errorf("len = %d, ожидалось %d", len(padded), MinSamples)
	}
	if padded[0] != 1 || padded[3] != 0 {
		t.Error("начало должно сохраниться, дополнение - нули")
	}

	long := make([]float32, MinSamples+1)
	if got := PadToMin(long, MinSamples); len(got) != MinSamples+1 {
		t.Error("длинный сигнал не должен меняться")
	}
}
