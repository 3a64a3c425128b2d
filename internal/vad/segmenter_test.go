package vad

import (
	"testing"
	"time"

	"diktor/internal/audio"
)

// Чанки для тестов: громкий (RMS=0.5) и тихий (RMS=0).
func loudChunk() []float32 {
	c := make([]float32, audio.ChunkSamples)
	for i := range c {
		c[i] = 0.5
	}
	return c
}

func quietChunk() []float32 {
	return make([]float32, audio.ChunkSamples)
}

// testConfig - короткие пороги чтобы тесты оперировали единицами чанков:
// тишина 50ms (5 чанков), мин. речь 30ms (3 чанка), пре-буфер 20ms (2 чанка).
func testConfig(onSegment func(Segment)) Config {
	return Config{
		SilenceThreshold:  0.02,
		SilenceDuration:   50 * time.Millisecond,
		MinSpeechDuration: 30 * time.Millisecond,
		PreRecord:         20 * time.Millisecond,
		OnSegment:         onSegment,
	}
}

func pushN(s *Segmenter, chunk func() []float32, n int) {
	for i := 0; i < n; i++ {
		s.Push(chunk())
	}
}

func TestSegmentAfterSilence(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, loudChunk, 10) // 100ms речи
	pushN(s, quietChunk, 5) // 50ms тишины - конец фразы

	if len(got) != 1 {
		t.Fatalf("сегментов = %d, ожидался 1", len(got))
	}
	if got[0].Forced {
		t.Error("сегмент по тишине не должен быть Forced")
	}
	if got[0].Duration != 140*time.Millisecond {
		// 10 чанков речи + 4 чанка тишины внутри (5-й завершает)
		t.Errorf("Duration = %v, ожидалось 140ms", got[0].Duration)
	}
}

func TestShortSpeechDiscarded(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, loudChunk, 2) // 20ms - короче минимума
	pushN(s, quietChunk, 5)

	if len(got) != 0 {
		t.Fatalf("короткий всплеск не должен давать сегмент, получено %d", len(got))
	}
	if _, discarded := s.Stats(); discarded != 1 {
		t.Errorf("discarded = %d, ожидалось 1", discarded)
	}
}

func TestPreRollIncluded(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, quietChunk, 10) // тишина заполняет пре-буфер (держит 2 чанка)
	pushN(s, loudChunk, 5)
	pushN(s, quietChunk, 5)

	if len(got) != 1 {
		t.Fatalf("сегментов = %d", len(got))
	}
	// 2 чанка пре-буфера + 5 речи + 4 тишины = 11 чанков
	wantSamples := 11 * audio.ChunkSamples
	if len(got[0].Samples) != wantSamples {
		t.Errorf("len(Samples) = %d, ожидалось %d (с пре-буфером)", len(got[0].Samples), wantSamples)
	}
	// Пре-буфер не входит в Duration
	if got[0].Duration != 90*time.Millisecond {
		t.Errorf("Duration = %v, ожидалось 90ms", got[0].Duration)
	}
}

func TestLeadingSilenceNotAccumulated(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, quietChunk, 1000) // долгая тишина
	pushN(s, loudChunk, 5)
	pushN(s, quietChunk, 5)

	if len(got) != 1 {
		t.Fatalf("сегментов = %d", len(got))
	}
	// Из 1000 чанков тишины в сегмент попадают только 2 из пре-буфера
	maxSamples := (2 + 5 + 4) * audio.ChunkSamples
	if len(got[0].Samples) != maxSamples {
		t.Errorf("len(Samples) = %d, ожидалось %d", len(got[0].Samples), maxSamples)
	}
}

func TestPauseInsideUtteranceKept(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, loudChunk, 5)
	pushN(s, quietChunk, 3) // пауза короче гистерезиса
	pushN(s, loudChunk, 5)
	pushN(s, quietChunk, 5)

	if len(got) != 1 {
		t.Fatalf("пауза внутри фразы разорвала сегмент: %d", len(got))
	}
	// 5 + 3 + 5 + 4 чанков
	if got[0].Duration != 170*time.Millisecond {
		t.Errorf("Duration = %v, ожидалось 170ms", got[0].Duration)
	}
}

func TestMaxSegmentForcesFlush(t *testing.T) {
	var got []Segment
	cfg := testConfig(func(seg Segment) { got = append(got, seg) })
	cfg.MaxSegment = 100 * time.Millisecond // 10 чанков
	s := NewSegmenter(cfg)

	pushN(s, loudChunk, 25) // непрерывная речь

	if len(got) != 2 {
		t.Fatalf("сегментов = %d, ожидалось 2 принудительных", len(got))
	}
	for i, seg := range got {
		if !seg.Forced {
			t.Errorf("сегмент %d должен быть Forced", i)
		}
		if seg.Duration != 100*time.Millisecond {
			t.Errorf("сегмент %d: Duration = %v", i, seg.Duration)
		}
	}
	if !s.Recording() {
		t.Error("после принудительной отправки запись оставшейся речи должна продолжаться")
	}
}

func TestSpeechCallbacks(t *testing.T) {
	var starts, ends int
	cfg := testConfig(func(Segment) {})
	cfg.OnSpeechStart = func() { starts++ }
	cfg.OnSpeechEnd = func() { ends++ }
	s := NewSegmenter(cfg)

	pushN(s, loudChunk, 5)
	if starts != 1 || ends != 0 {
		t.Fatalf("после начала речи: starts=%d ends=%d", starts, ends)
	}
	pushN(s, quietChunk, 5)
	if starts != 1 || ends != 1 {
		t.Fatalf("после конца речи: starts=%d ends=%d", starts, ends)
	}
}

func TestPauseDiscardsAndIgnores(t *testing.T) {
	var got []Segment
	var ends int
	cfg := testConfig(func(seg Segment) { got = append(got, seg) })
	cfg.OnSpeechEnd = func() { ends++ }
	s := NewSegmenter(cfg)

	pushN(s, loudChunk, 10)
	s.SetPaused(true)

	if len(got) != 0 {
		t.Error("пауза не должна отправлять незавершённый сегмент")
	}
	if ends != 1 {
		t.Errorf("OnSpeechEnd при паузе: %d", ends)
	}
	if s.Recording() {
		t.Error("после паузы запись должна быть сброшена")
	}

	pushN(s, loudChunk, 10)
	pushN(s, quietChunk, 10)
	if len(got) != 0 {
		t.Error("чанки на паузе должны игнорироваться")
	}

	s.SetPaused(false)
	pushN(s, loudChunk, 10)
	pushN(s, quietChunk, 5)
	if len(got) != 1 {
		t.Errorf("после снятия паузы сегментация должна работать: %d", len(got))
	}
}

func TestFlushEmitsInFlightSegment(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, loudChunk, 10)
	s.Flush()

	if len(got) != 1 {
		t.Fatalf("Flush должен отправить незавершённый сегмент: %d", len(got))
	}
	if s.Recording() {
		t.Error("после Flush запись должна быть завершена")
	}
}

func TestFlushDiscardsTooShort(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	pushN(s, loudChunk, 1)
	s.Flush()

	if len(got) != 0 {
		t.Error("Flush короткого сегмента должен его отбросить")
	}
}

func TestSegmentSlicesAreIndependent(t *testing.T) {
	var got []Segment
	s := NewSegmenter(testConfig(func(seg Segment) { got = append(got, seg) }))

	chunk := loudChunk()
	for i := 0; i < 5; i++ {
		s.Push(chunk)
	}
	pushN(s, quietChunk, 5)

	// Мутация исходного чанка не должна затрагивать сегмент
	first := got[0].Samples[0]
	chunk[0] = -1
	if got[0].Samples[0] != first {
		t.Error("сегмент делит память с чанком вызывающей стороны")
	}
}
