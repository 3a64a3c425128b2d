package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"diktor/internal/audio"
)

// ServerRecognizer реализует Recognizer через внешний whisper-server
// (REST API whisper.cpp: POST /inference с WAV в multipart/form-data).
// Сервер держит модель в памяти сам, поэтому это "быстрый" вариант:
// загрузка модели и GPU-окружение - его забота, наша - только аудио.
type ServerRecognizer struct {
	serverURL string
	client    *http.Client
}

// NewServer создаёт ServerRecognizer для указанного адреса
// (например "http://localhost:8080").
func NewServer(serverURL string) (*ServerRecognizer, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("не указан адрес whisper-server")
	}

	return &ServerRecognizer{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Name возвращает название движка.
func (s *ServerRecognizer) Name() string {
	return "whisper-server"
}

// Transcribe отправляет сэмплы на сервер и возвращает распознанный текст.
func (s *ServerRecognizer) Transcribe(ctx context.Context, samples []float32, lang string) (string, error) {
	wav := EncodeWAV(samples, audio.WhisperRate)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}
	if _, err := fw.Write(wav); err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}

	if lang != "" && lang != "auto" {
		if err := mw.WriteField("language", lang); err != nil {
			return "", fmt.Errorf("multipart: %w", err)
		}
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.serverURL+"/inference", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("запрос к whisper-server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper-server вернул HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("ответ whisper-server: %w", err)
	}

	return strings.TrimSpace(result.Text), nil
}

// Close освобождает ресурсы (для HTTP-клиента ничего делать не нужно).
func (s *ServerRecognizer) Close() {}
