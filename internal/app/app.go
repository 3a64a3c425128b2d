// Package app содержит основную логику приложения.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"diktor/internal/audio"
	"diktor/internal/config"
	"diktor/internal/dialog"
	"diktor/internal/hotkey"
	"diktor/internal/i18n"
	"diktor/internal/input"
	"diktor/internal/models"
	"diktor/internal/notify"
	"diktor/internal/speech"
	"diktor/internal/startup"
	"diktor/internal/tray"
	"diktor/internal/vad"
)

// Файлы состояния для внешних скриптов и индикаторов.
const (
	PidFile       = "/tmp/diktor.pid"
	StateFile     = "/tmp/diktor-state"
	RecordingFile = "/tmp/diktor-recording"
)

// TranscribeTimeout - максимальное время распознавания одного сегмента.
const TranscribeTimeout = 60 * time.Second

// App представляет главное приложение: непрерывная диктовка с
// автоматической нарезкой речи по паузам.
type App struct {
	config       *config.Config
	capture      *audio.Capture
	segmenter    *vad.Segmenter
	highpass     *audio.HighPass
	modelManager *models.Manager
	factory      *speech.Factory
	typer        input.Typer
	notifier     *notify.Notifier
	tray         *tray.Tray
	hotkey       *hotkey.Handler

	paused   atomic.Bool // запрошенное состояние паузы
	inFlight sync.WaitGroup
	loopDone chan struct{}
	closed   atomic.Bool
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	typer, err := input.New()
	if err != nil {
		return nil, err
	}

	modelManager, err := models.NewManager(cfg.ModelBasePath())
	if err != nil {
		return nil, err
	}

	capture, err := audio.NewCapture(cfg.AudioDevice())
	if err != nil {
		return nil, fmt.Errorf("инициализация захвата звука: %w", err)
	}

	app := &App{
		config:       cfg,
		capture:      capture,
		modelManager: modelManager,
		factory:      speech.NewFactory(modelManager, cfg.ServerURL()),
		typer:        typer,
		notifier:     notify.New(cfg.NotificationsEnabled()),
		loopDone:     make(chan struct{}),
	}

	if cfg.NoiseSuppression() && cfg.HighPassFreq() > 0 {
		app.highpass = audio.NewHighPass(cfg.HighPassFreq(), audio.CaptureRate)
	}

	app.segmenter = vad.NewSegmenter(vad.Config{
		SilenceThreshold:  cfg.SilenceThreshold(),
		SilenceDuration:   cfg.SilenceDuration(),
		MinSpeechDuration: cfg.MinSpeechDuration(),
		PreRecord:         cfg.PreRecord(),
		MaxSegment:        cfg.MaxSegment(),
		OnSegment:         app.onSegment,
		OnSpeechStart:     app.onSpeechStart,
		OnSpeechEnd:       app.onSpeechEnd,
	})

	app.hotkey = hotkey.New(func() {
		app.TogglePause()
	})

	app.tray = tray.New(tray.Callbacks{
		OnPauseToggle: func() bool {
			return app.TogglePause()
		},
		OnNotificationsToggle: func() bool {
			enabled := app.config.ToggleNotifications()
			app.notifier.SetEnabled(enabled)
			return enabled
		},
		OnQuit: func() {
			app.Close()
		},
	})

	return app, nil
}

// Run запускает приложение. Блокирующая функция.
func (a *App) Run() {
	a.tray.Run(func() {
		if err := a.hotkey.Register(a.config.PauseHotkey()); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
		}

		writePidFile()
		a.writeState("STARTING")

		go a.start()
	})
}

// start загружает распознаватель и запускает цикл диктовки.
func (a *App) start() {
	if err := a.loadRecognizer(); err != nil {
		log.Printf("Распознаватель недоступен: %v", err)
		a.notifier.Error(i18n.T("error_no_model"))
		dialog.ShowError(i18n.T("notify_error"), i18n.T("error_no_model"))
		a.writeState("ERROR")
		return
	}

	if err := a.capture.Start(); err != nil {
		log.Printf("Ошибка захвата звука: %v", err)
		a.notifier.Error(i18n.T("error_audio") + ": " + err.Error())
		a.writeState("ERROR")
		return
	}

	a.tray.SetState(tray.StateIdle)
	a.writeState("IDLE")
	a.notifier.Ready()
	log.Printf("Диктовка запущена: движок %s, порог тишины %.3f",
		a.factory.Current().Name(), a.config.SilenceThreshold())

	go a.captureLoop()
}

// loadRecognizer подготавливает движок распознавания. Для локального
// whisper при отсутствии моделей предлагает скачать предпочитаемую,
// на время загрузки показывается окно со спиннером.
func (a *App) loadRecognizer() error {
	engine := string(a.config.Engine())

	if engine == speech.EngineWhisper {
		if _, ok := a.modelManager.FindBest(a.config.WhisperModel()); !ok {
			if err := a.downloadPreferredModel(); err != nil {
				log.Printf("Модель не скачана: %v", err)
			}
		}
	}

	splash := startup.New()
	splash.SetStatus(i18n.T("startup_loading"), a.config.WhisperModel())
	splash.Show()
	defer splash.Hide()

	return a.factory.Load(engine, a.config.WhisperModel())
}

func (a *App) downloadPreferredModel() error {
	info, ok := models.GetModel(a.config.WhisperModel())
	if !ok {
		info, _ = models.GetModel(models.DefaultModelID())
	}

	if !dialog.ConfirmDownload(info) {
		return fmt.Errorf("загрузка модели %s отклонена", info.ID)
	}

	log.Printf("Загрузка модели %s (%d MB)...", info.ID, info.Size/(1024*1024))

	progress := make(chan models.Progress, 16)
	go func() {
		var lastPct int64 = -1
		for p := range progress {
			if p.Total > 0 {
				pct := p.Downloaded * 100 / p.Total
				if pct/10 != lastPct/10 {
					log.Printf("Загрузка %s: %d%%", p.ModelID, pct)
					lastPct = pct
				}
			}
		}
	}()

	err := a.modelManager.Download(context.Background(), info, progress)
	close(progress)
	if err != nil {
		return fmt.Errorf("загрузка модели: %w", err)
	}

	log.Printf("Модель %s скачана", info.ID)
	return nil
}

// captureLoop читает чанки из микрофона и скармливает их сегментатору.
// Сегментатор не потокобезопасен, поэтому пауза применяется здесь же.
func (a *App) captureLoop() {
	defer close(a.loopDone)

	for chunk := range a.capture.Chunks() {
		if paused := a.paused.Load(); paused != a.segmenter.Paused() {
			a.segmenter.SetPaused(paused)
		}
		a.segmenter.Push(chunk)
	}

	// Канал закрыт - захват остановлен, добираем незавершённый сегмент
	a.segmenter.Flush()
}

func (a *App) onSpeechStart() {
	a.tray.SetState(tray.StateRecording)
	a.writeState("RECORDING")
	os.WriteFile(RecordingFile, []byte(time.Now().Format(time.RFC3339)), 0644)
}

func (a *App) onSpeechEnd() {
	os.Remove(RecordingFile)
}

// onSegment вызывается сегментатором для каждого куска речи.
// Распознавание идёт в отдельной горутине, чтобы не задерживать
// чтение аудио: пока печатается одна фраза, следующая уже пишется.
func (a *App) onSegment(seg vad.Segment) {
	a.inFlight.Add(1)
	go func() {
		defer a.inFlight.Done()
		a.processSegment(seg)
	}()
}

func (a *App) processSegment(seg vad.Segment) {
	a.tray.SetState(tray.StateProcessing)
	a.writeState("PROCESSING")
	a.notifier.Processing()
	defer func() {
		// Пауза могла включиться пока шло распознавание - не затираем её
		if !a.closed.Load() {
			state, label := a.restingState()
			a.tray.SetState(state)
			a.writeState(label)
		}
	}()

	log.Printf("Сегмент: %.1fs речи, %d сэмплов (forced=%v)",
		seg.Duration.Seconds(), len(seg.Samples), seg.Forced)

	samples := a.prepare(seg.Samples)

	recognizer := a.factory.Current()
	if recognizer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), TranscribeTimeout)
	defer cancel()

	started := time.Now()
	text, err := recognizer.Transcribe(ctx, samples, a.config.Language())
	if err != nil {
		log.Printf("Ошибка распознавания: %v", err)
		a.notifier.Error(i18n.T("error_recognition"))
		return
	}

	log.Printf("Распознано за %.1fs: %q", time.Since(started).Seconds(), text)

	if !speech.IsValidTranscription(text) {
		log.Printf("Результат отброшен фильтром галлюцинаций: %q", text)
		a.notifier.Empty()
		return
	}

	a.typeText(text)
}

// prepare приводит сегмент к формату Whisper: фильтр низких частот,
// даунсэмплинг 48kHz -> 16kHz, нормализация и добивка до минимума.
func (a *App) prepare(samples []float32) []float32 {
	if a.highpass != nil {
		samples = a.highpass.Apply(samples)
	}

	samples = audio.Downsample48to16(samples)
	audio.Normalize(samples, 0.95)
	return audio.PadToMin(samples, audio.MinSamples)
}

// typeText печатает текст в активное окно, с пробелом в конце, чтобы
// следующая фраза не склеивалась с предыдущей.
func (a *App) typeText(text string) {
	text = a.polish(text)

	if err := a.typer.Type(text + " "); err != nil {
		log.Printf("Ошибка ввода текста: %v", err)
		a.notifier.Error(i18n.T("error_input"))
		return
	}

	a.notifier.Typed(text)
}

// polish убирает финальную точку, которую Whisper ставит почти всегда,
// если автопунктуация выключена.
func (a *App) polish(text string) string {
	if a.config.AutoPunctuation() {
		return text
	}

	// Многоточие не трогаем
	if strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "..") {
		return strings.TrimSuffix(text, ".")
	}
	return text
}

// restingState возвращает состояние вне записи и распознавания с учётом
// паузы.
func (a *App) restingState() (tray.State, string) {
	if a.paused.Load() {
		return tray.StatePaused, "PAUSED"
	}
	return tray.StateIdle, "IDLE"
}

// TogglePause переключает паузу прослушивания.
// Возвращает новое состояние (true - пауза).
func (a *App) TogglePause() bool {
	paused := !a.paused.Load()
	a.paused.Store(paused)

	state, label := a.restingState()
	a.tray.SetState(state)
	a.writeState(label)
	a.notifier.Paused(paused)
	log.Printf("Пауза: %v", paused)

	return paused
}

// Close останавливает захват, дожидается распознавания незавершённых
// сегментов и убирает файлы состояния.
func (a *App) Close() {
	if !a.closed.CompareAndSwap(false, true) {
		return
	}

	log.Println("Завершение работы...")

	if a.hotkey != nil {
		a.hotkey.Unregister()
	}

	// Останавливаем захват: цикл дочитает канал и сбросит сегментатор
	a.capture.Stop()
	select {
	case <-a.loopDone:
	case <-time.After(2 * time.Second):
	}
	a.capture.Close()

	// Ждём распознавание в полёте, но не бесконечно
	done := make(chan struct{})
	go func() {
		a.inFlight.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(TranscribeTimeout):
		log.Println("Таймаут ожидания распознавания при выходе")
	}

	a.factory.Close()

	emitted, discarded := a.segmenter.Stats()
	log.Printf("Сегментов распознано: %d, отброшено коротких: %d", emitted, discarded)

	os.Remove(RecordingFile)
	os.Remove(StateFile)
	os.Remove(PidFile)

	a.tray.Quit()
}

func (a *App) writeState(state string) {
	os.WriteFile(StateFile, []byte(state), 0644)
}

func writePidFile() {
	os.WriteFile(PidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}
