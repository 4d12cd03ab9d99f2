package stepfun

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/voxkit/voxkit/pkg/provider"

	"github.com/google/uuid"
)

var (
	_ provider.Synthesizer = (*Client)(nil)
	_ provider.Cloner      = (*Client)(nil)
	_ provider.Prober      = (*Client)(nil)
)

const (
	requestTimeout = 30 * time.Second
	uploadTimeout  = 60 * time.Second
	probeTimeout   = 10 * time.Second
)

type Client struct {
	*Config
}

func New(url, model string, options ...Option) (*Client, error) {
	cfg := &Config{
		url: "https://api.stepfun.com/v1",

		model:  model,
		client: http.DefaultClient,
	}

	if url != "" {
		cfg.url = url
	}

	for _, option := range options {
		option(cfg)
	}

	cfg.url = strings.TrimRight(cfg.url, "/")

	return &Client{
		Config: cfg,
	}, nil
}

func (c *Client) Name() string {
	return "stepfun"
}

func (c *Client) Configured() bool {
	return c.token != ""
}

// Upload streams a local audio file to the provider's storage endpoint so a
// later clone call can reference it.
func (c *Client) Upload(ctx context.Context, path string) (*provider.FileUpload, error) {
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

	w.WriteField("purpose", "storage")
	w.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/files", &data)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, c.convertTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.convertError(resp)
	}

	var result struct {
		ID       string `json:"id"`
		Bytes    int64  `json:"bytes"`
		Filename string `json:"filename"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &provider.FileUpload{
		ID: result.ID,

		Bytes:    result.Bytes,
		Filename: result.Filename,
	}, nil
}

func (c *Client) Clone(ctx context.Context, request provider.CloneRequest) (*provider.Clone, error) {
	body := map[string]any{
		"file_id": request.FileID,
		"model":   request.Model,
	}

	if request.Text != "" {
		body["text"] = request.Text
	}

	if request.SampleText != "" {
		body["sample_text"] = request.SampleText
	}

	data, _ := json.Marshal(body)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/audio/voices", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, c.convertTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.convertError(resp)
	}

	var result struct {
		ID         string `json:"id"`
		Duplicated bool   `json:"duplicated"`

		SampleText  string `json:"sample_text"`
		SampleAudio string `json:"sample_audio"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	clone := &provider.Clone{
		ID: result.ID,

		Duplicated: result.Duplicated,
		SampleText: result.SampleText,
	}

	if result.SampleAudio != "" {
		if audio, err := base64.StdEncoding.DecodeString(result.SampleAudio); err == nil {
			clone.SampleAudio = audio
		}
	}

	return clone, nil
}

func (c *Client) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	if options == nil {
		options = new(provider.SynthesizeOptions)
	}

	body := map[string]any{
		"input": input,
		"voice": options.Voice,
		"model": c.model,
	}

	data, _ := json.Marshal(body)

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/audio/speech", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, c.convertTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.convertError(resp)
	}

	audio, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &provider.Synthesis{
		ID:    uuid.NewString(),
		Model: c.model,

		Content:     audio,
		ContentType: "audio/mpeg",
	}, nil
}

func (c *Client) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/models", nil)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return c.convertTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.convertError(resp)
	}

	return nil
}

func (c *Client) convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &provider.AuthError{
			Provider: c.Name(),
			Message:  errorMessage(data),
		}

	case http.StatusTooManyRequests:
		return &provider.RateLimitError{
			Provider: c.Name(),
		}
	}

	return &provider.RequestError{
		Provider: c.Name(),
		Status:   resp.StatusCode,
		Message:  errorMessage(data),
	}
}

func (c *Client) convertTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.TimeoutError{
			Provider: c.Name(),
		}
	}

	if os.IsTimeout(err) {
		return &provider.TimeoutError{
			Provider: c.Name(),
		}
	}

	return err
}

// errorMessage extracts a human-readable diagnostic from an upstream error
// body, which may be a JSON error envelope or binary junk.
func errorMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`

		Message string `json:"message"`
	}

	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}

		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if utf8.Valid(data) {
		return strings.TrimSpace(string(data))
	}

	return ""
}
