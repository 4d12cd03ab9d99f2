package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type SpeechService struct {
	Options []RequestOption
}

func NewSpeechService(opts ...RequestOption) SpeechService {
	return SpeechService{
		Options: opts,
	}
}

type ClonedVoice struct {
	VoiceID         string `json:"voiceId"`
	ProviderVoiceID string `json:"providerVoiceId"`
}

// Clone uploads an audio sample and asks the service for a provider-backed
// voice clone.
func (r *SpeechService) Clone(ctx context.Context, path string, opts ...RequestOption) (*ClonedVoice, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	part, err := w.CreateFormFile("file", filepath.Base(path))

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	w.Close()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.URL, "/")+"/api/tts/clone", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result ClonedVoice

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

type Speech struct {
	AudioURL  string `json:"audioUrl"`
	AudioPath string `json:"audioPath"`
}

func (r *SpeechService) Generate(ctx context.Context, voiceID, text string, opts ...RequestOption) (*Speech, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	data, _ := json.Marshal(map[string]string{
		"voiceId": voiceID,
		"text":    text,
	})

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.URL, "/")+"/api/tts/tts", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Speech

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
