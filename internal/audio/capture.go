// Package audio предоставляет захват аудио с микрофона и обработку сигнала.
package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// CaptureRate - частота дискретизации захвата.
	CaptureRate = 48000
	// WhisperRate - частота дискретизации для Whisper.
	WhisperRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// ChunkSamples - размер чанка (10ms при 48kHz).
	ChunkSamples = CaptureRate / 100
	// ChunkDuration - длительность одного чанка.
	ChunkDuration = 10 * time.Millisecond
	// MinSamples - минимальное количество сэмплов после ресемплинга (200ms
	// при 16kHz). Whisper требует минимум 100ms, добавляем запас.
	MinSamples = WhisperRate / 5
)

// Capture читает аудио с микрофона и отдаёт его чанками по 10ms.
type Capture struct {
	mu        sync.Mutex
	stream    *portaudio.Stream
	buffer    []float32
	chunks    chan []float32
	running   bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewCapture создаёт Capture для устройства с указанным именем.
// Пустое имя - устройство ввода по умолчанию.
func NewCapture(deviceName string) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	c := &Capture{
		buffer: make([]float32, ChunkSamples),
		// Буфер на ~2.5s: читающая сторона может отставать во время
		// запуска распознавания, чанки терять нельзя.
		chunks: make(chan []float32, 256),
	}

	if err := c.open(deviceName); err != nil {
		portaudio.Terminate()
		return nil, err
	}

	return c, nil
}

// open открывает поток захвата.
func (c *Capture) open(deviceName string) error {
	dev, err := findInputDevice(deviceName)
	if err != nil {
		return err
	}

	if dev == nil {
		stream, err := portaudio.OpenDefaultStream(
			Channels, 0, float64(CaptureRate), ChunkSamples, c.buffer)
		if err != nil {
			return err
		}
		c.stream = stream
		return nil
	}

	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = Channels
	params.SampleRate = float64(CaptureRate)
	params.FramesPerBuffer = ChunkSamples

	stream, err := portaudio.OpenStream(params, c.buffer)
	if err != nil {
		return err
	}
	c.stream = stream
	return nil
}

// findInputDevice ищет устройство ввода по подстроке имени.
// Возвращает nil для пустого имени (будет использовано устройство по умолчанию).
func findInputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return nil, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(name)
	for _, dev := range devices {
		if dev.MaxInputChannels <= 0 {
			continue
		}
		if strings.Contains(strings.ToLower(dev.Name), needle) {
			return dev, nil
		}
	}

	return nil, fmt.Errorf("устройство ввода не найдено: %q", name)
}

// Start начинает захват. Чанки появляются в канале Chunks.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	if err := c.stream.Start(); err != nil {
		return err
	}

	c.running = true
	c.done = make(chan struct{})
	go c.readLoop()

	return nil
}

// Chunks возвращает канал с чанками аудио. Каждый чанк - отдельный слайс,
// получатель владеет им безраздельно.
func (c *Capture) Chunks() <-chan []float32 {
	return c.chunks
}

func (c *Capture) readLoop() {
	defer close(c.done)

	for {
		c.mu.Lock()
		running := c.running
		stream := c.stream
		c.mu.Unlock()

		if !running || stream == nil {
			return
		}

		if err := stream.Read(); err != nil {
			// Overflow и прочие временные ошибки: пропускаем чанк.
			c.mu.Lock()
			running = c.running
			c.mu.Unlock()
			if !running {
				return
			}
			time.Sleep(ChunkDuration)
			continue
		}

		chunk := make([]float32, len(c.buffer))
		copy(chunk, c.buffer)

		// Перепроверка после блокирующего Read: канал мог быть закрыт.
		c.mu.Lock()
		running = c.running
		c.mu.Unlock()
		if !running {
			return
		}

		select {
		case c.chunks <- chunk:
		default:
			// Получатель безнадёжно отстал - чанк теряется.
		}
	}
}

// Stop останавливает захват и закрывает канал Chunks, давая читателю
// дочитать остаток. Повторный Start после Stop не поддерживается.
func (c *Capture) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		c.closeOnce.Do(func() { close(c.chunks) })
		return
	}
	c.running = false
	stream := c.stream
	done := c.done
	c.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(200 * time.Millisecond):
		}
	}

	if stream != nil {
		stream.Stop()
	}

	c.closeOnce.Do(func() { close(c.chunks) })
}

// Close освобождает ресурсы.
func (c *Capture) Close() {
	c.Stop()

	c.mu.Lock()
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
	c.mu.Unlock()

	portaudio.Terminate()
}
