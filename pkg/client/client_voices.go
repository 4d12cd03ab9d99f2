package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/voxkit/voxkit/pkg/store"
)

type VoiceService struct {
	Options []RequestOption
}

func NewVoiceService(opts ...RequestOption) VoiceService {
	return VoiceService{
		Options: opts,
	}
}

type Voice = store.Voice

type CreateVoiceRequest struct {
	FileID string `json:"fileId"`
	Model  string `json:"model"`

	Text       string `json:"text,omitempty"`
	SampleText string `json:"sampleText,omitempty"`
}

type CreatedVoice struct {
	VoiceID         string `json:"voiceId"`
	ProviderVoiceID string `json:"providerVoiceId"`
	SampleAudio     string `json:"sampleAudio"`
	EmbeddingHash   string `json:"embeddingHash"`
}

func (r *VoiceService) Create(ctx context.Context, input CreateVoiceRequest, opts ...RequestOption) (*CreatedVoice, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	data, _ := json.Marshal(input)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.URL, "/")+"/api/voices", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result CreatedVoice

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *VoiceService) Get(ctx context.Context, id string, opts ...RequestOption) (*Voice, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.URL, "/")+"/api/voices/"+id, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Voice

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

type VoicePage struct {
	Voices []Voice `json:"voices"`
	Total  int     `json:"total"`
}

type ListVoicesRequest struct {
	Page  int
	Limit int

	Search string
}

func (r *VoiceService) List(ctx context.Context, input ListVoicesRequest, opts ...RequestOption) (*VoicePage, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	query := url.Values{}

	if input.Page > 0 {
		query.Set("page", strconv.Itoa(input.Page))
	}

	if input.Limit > 0 {
		query.Set("limit", strconv.Itoa(input.Limit))
	}

	if input.Search != "" {
		query.Set("search", input.Search)
	}

	target := strings.TrimRight(c.URL, "/") + "/api/voices"

	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result VoicePage

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

type UpdateVoiceRequest struct {
	Text     *string        `json:"text,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (r *VoiceService) Update(ctx context.Context, id string, input UpdateVoiceRequest, opts ...RequestOption) (*Voice, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	data, _ := json.Marshal(input)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, strings.TrimRight(c.URL, "/")+"/api/voices/"+id, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result Voice

	if err := decodeEnvelope(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *VoiceService) Delete(ctx context.Context, id string, opts ...RequestOption) error {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodDelete, strings.TrimRight(c.URL, "/")+"/api/voices/"+id, nil)
	c.apply(req)

	resp, err := c.Client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	return decodeEnvelope(resp, nil)
}
