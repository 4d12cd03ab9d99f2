package client

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Client struct {
	Files  FileService
	Voices VoiceService
	Speech SpeechService

	Health HealthService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Files:  NewFileService(opts...),
		Voices: NewVoiceService(opts...),
		Speech: NewSpeechService(opts...),

		Health: NewHealthService(opts...),
	}
}

type RequestConfig struct {
	URL   string
	Token string

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) apply(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// decodeEnvelope unwraps the service's {success, data, message} envelope
// into out, turning failures into errors.
func decodeEnvelope(resp *http.Response, out any) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}

	if !envelope.Success {
		if envelope.Message != "" {
			return errors.New(envelope.Message)
		}

		return errors.New(resp.Status)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(envelope.Data, out)
}
