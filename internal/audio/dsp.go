package audio

import "math"

// RMS вычисляет среднеквадратичную амплитуду чанка (уровень громкости).
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// biquad - секция фильтра второго порядка (transposed direct form II).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// HighPass - high-pass фильтр Баттерворта 4-го порядка (две каскадные
// biquad-секции). Подавляет низкочастотный гул перед распознаванием.
type HighPass struct {
	sections [2]biquad
}

// Q-факторы секций Баттерворта 4-го порядка.
var butterworthQ = [2]float64{0.54119610, 1.30656296}

// NewHighPass создаёт фильтр с частотой среза cutoff для частоты
// дискретизации rate.
func NewHighPass(cutoff, rate float64) *HighPass {
	hp := &HighPass{}
	for i := range hp.sections {
		hp.sections[i] = highpassBiquad(cutoff, rate, butterworthQ[i])
	}
	return hp
}

// highpassBiquad вычисляет коэффициенты high-pass секции (RBJ cookbook).
func highpassBiquad(cutoff, rate, q float64) biquad {
	w0 := 2 * math.Pi * cutoff / rate
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return biquad{
		b0: (1 + cosW0) / 2 / a0,
		b1: -(1 + cosW0) / a0,
		b2: (1 + cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// Apply фильтрует сигнал, возвращая новый слайс. Каждый сегмент
// фильтруется с нулевого состояния, поэтому Apply можно звать из
// нескольких горутин одновременно.
func (hp *HighPass) Apply(samples []float32) []float32 {
	sections := hp.sections // локальная копия: состояние не разделяется

	out := make([]float32, len(samples))
	for i, s := range samples {
		x := float64(s)
		for j := range sections {
			x = sections[j].process(x)
		}
		out[i] = float32(x)
	}
	return out
}

// Downsample48to16 понижает частоту с 48kHz до 16kHz, усредняя каждую
// тройку сэмплов. Усреднение даёт дешёвый anti-aliasing, достаточный
// для речи.
func Downsample48to16(samples []float32) []float32 {
	n := len(samples) / 3
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = (samples[i*3] + samples[i*3+1] + samples[i*3+2]) / 3
	}
	return out
}

// Normalize масштабирует сигнал так, чтобы пик был равен peak.
// Нулевой сигнал возвращается без изменений.
func Normalize(samples []float32, peak float32) {
	var max float32
	for _, s := range samples {
		if s > max {
			max = s
		} else if -s > max {
			max = -s
		}
	}
	if max == 0 {
		return
	}

	scale := peak / max
	for i := range samples {
		samples[i] *= scale
	}
}

// PadToMin дополняет сигнал тишиной до min сэмплов (требование whisper.cpp
// к минимальной длине).
func PadToMin(samples []float32, min int) []float32 {
	if len(samples) >= min {
		return samples
	}
	return append(samples, make([]float32, min-len(samples))...)
}
