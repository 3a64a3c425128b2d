// Package vad реализует детектор речевой активности по энергетическому
// порогу и нарезку непрерывного аудиопотока на сегменты речи.
//
// Сегментатор - небольшой конечный автомат с двумя состояниями (ожидание /
// запись). Переходы определяются RMS чанка относительно порога, гистерезисом
// по длительности тишины и минимальной длительностью речи. Перед началом
// речи подмешивается пре-буфер, чтобы не терять первые слоги.
package vad

import (
	"time"

	"diktor/internal/audio"
)

// Config параметры сегментатора.
type Config struct {
	// SilenceThreshold - порог RMS: выше - речь, ниже - тишина.
	SilenceThreshold float64
	// SilenceDuration - сколько непрерывной тишины завершает сегмент.
	SilenceDuration time.Duration
	// MinSpeechDuration - сегменты короче отбрасываются.
	MinSpeechDuration time.Duration
	// PreRecord - сколько аудио до начала речи попадает в сегмент.
	PreRecord time.Duration
	// MaxSegment - принудительная отправка при непрерывной речи.
	// 0 - без ограничения.
	MaxSegment time.Duration

	// OnSegment вызывается для каждого завершённого сегмента (обязателен).
	// Вызов синхронный, из горутины Push.
	OnSegment func(Segment)
	// OnSpeechStart/OnSpeechEnd вызываются на переходах состояния
	// (опциональны). Используются для индикации записи.
	OnSpeechStart func()
	OnSpeechEnd   func()
}

// Segment - завершённый сегмент речи.
type Segment struct {
	// Samples - сэмплы сегмента (пре-буфер + речь + хвостовая тишина).
	// Слайс принадлежит получателю.
	Samples []float32
	// Duration - длительность сегмента без пре-буфера
	// (речь вместе с паузами внутри фразы).
	Duration time.Duration
	// Forced - сегмент отправлен по достижении MaxSegment, а не по тишине.
	Forced bool
}

// Segmenter нарезает поток 10ms-чанков на сегменты речи.
// Не потокобезопасен: Push, Flush и SetPaused должны вызываться из одной
// горутины (цикла чтения аудио).
type Segmenter struct {
	cfg Config

	// Пороговые величины в чанках.
	silenceChunks int
	minChunks     int
	preRollChunks int
	maxChunks     int

	preRoll   [][]float32 // кольцо последних чанков перед речью
	buffer    []float32   // накопленный сегмент
	recording bool
	paused    bool
	silence   int // подряд идущие чанки тишины
	total     int // чанки с начала записи (без пре-буфера)
	speech    int // чанки собственно речи, для отсева коротких всплесков

	emitted   int
	discarded int
}

// NewSegmenter создаёт сегментатор.
func NewSegmenter(cfg Config) *Segmenter {
	toChunks := func(d time.Duration) int {
		return int(d / audio.ChunkDuration)
	}

	s := &Segmenter{
		cfg:           cfg,
		silenceChunks: toChunks(cfg.SilenceDuration),
		minChunks:     toChunks(cfg.MinSpeechDuration),
		preRollChunks: toChunks(cfg.PreRecord),
		maxChunks:     toChunks(cfg.MaxSegment),
	}
	if s.silenceChunks < 1 {
		s.silenceChunks = 1
	}
	return s
}

// Push обрабатывает очередной чанк аудио.
func (s *Segmenter) Push(chunk []float32) {
	if s.paused {
		return
	}

	rms := audio.RMS(chunk)

	if rms > s.cfg.SilenceThreshold {
		s.pushSpeech(chunk)
	} else {
		s.pushSilence(chunk)
	}
}

func (s *Segmenter) pushSpeech(chunk []float32) {
	if !s.recording {
		s.start()
	}
	s.silence = 0
	s.speech++
	s.append(chunk)

	if s.maxChunks > 0 && s.total >= s.maxChunks {
		// Непрерывная речь упёрлась в лимит: отправляем что есть,
		// чтобы буфер не рос бесконечно.
		s.finish(true)
	}
}

func (s *Segmenter) pushSilence(chunk []float32) {
	if !s.recording {
		// Тишина до речи попадает только в пре-буфер.
		s.pushPreRoll(chunk)
		return
	}

	s.silence++
	if s.silence >= s.silenceChunks {
		// Конец фразы. Текущий чанк уже не нужен.
		s.finish(false)
		return
	}

	// Короткая пауза внутри фразы: тишина сохраняется, она несёт
	// окончания слов.
	s.append(chunk)
}

// start переводит автомат в состояние записи и подмешивает пре-буфер.
func (s *Segmenter) start() {
	s.recording = true
	s.silence = 0
	s.total = 0
	s.speech = 0

	for _, pc := range s.preRoll {
		s.buffer = append(s.buffer, pc...)
	}
	s.preRoll = s.preRoll[:0]

	if s.cfg.OnSpeechStart != nil {
		s.cfg.OnSpeechStart()
	}
}

// finish завершает сегмент и отдаёт его получателю либо отбрасывает.
func (s *Segmenter) finish(forced bool) {
	duration := time.Duration(s.total) * audio.ChunkDuration
	speech := s.speech
	samples := s.buffer

	s.buffer = nil
	s.recording = false
	s.silence = 0
	s.total = 0
	s.speech = 0

	if s.cfg.OnSpeechEnd != nil {
		s.cfg.OnSpeechEnd()
	}

	// Короткие всплески (хлопок двери, кашель) отсеиваются по чистой
	// длительности речи, паузы внутри фразы не в счёт.
	if s.minChunks > 0 && speech < s.minChunks {
		s.discarded++
		return
	}
	if len(samples) == 0 {
		s.discarded++
		return
	}

	s.emitted++
	s.cfg.OnSegment(Segment{
		Samples:  samples,
		Duration: duration,
		Forced:   forced,
	})
}

func (s *Segmenter) append(chunk []float32) {
	s.buffer = append(s.buffer, chunk...)
	s.total++
}

func (s *Segmenter) pushPreRoll(chunk []float32) {
	if s.preRollChunks == 0 {
		return
	}
	cp := make([]float32, len(chunk))
	copy(cp, chunk)
	s.preRoll = append(s.preRoll, cp)
	if len(s.preRoll) > s.preRollChunks {
		s.preRoll = s.preRoll[1:]
	}
}

// Recording возвращает true если идёт накопление сегмента.
func (s *Segmenter) Recording() bool {
	return s.recording
}

// SetPaused ставит сегментатор на паузу. Незавершённый сегмент
// отбрасывается, входящие чанки игнорируются.
func (s *Segmenter) SetPaused(paused bool) {
	if paused && s.recording {
		s.buffer = nil
		s.recording = false
		s.silence = 0
		s.total = 0
		s.speech = 0
		s.discarded++
		if s.cfg.OnSpeechEnd != nil {
			s.cfg.OnSpeechEnd()
		}
	}
	if paused {
		s.preRoll = s.preRoll[:0]
	}
	s.paused = paused
}

// Paused возвращает true если сегментатор на паузе.
func (s *Segmenter) Paused() bool {
	return s.paused
}

// Flush завершает незаконченный сегмент (вызывается при остановке службы).
func (s *Segmenter) Flush() {
	if s.recording {
		s.finish(false)
	}
}

// Stats возвращает счётчики отправленных и отброшенных сегментов.
func (s *Segmenter) Stats() (emitted, discarded int) {
	return s.emitted, s.discarded
}
