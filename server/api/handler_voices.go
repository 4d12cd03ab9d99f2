package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/voxkit/voxkit/pkg/store"
	"github.com/voxkit/voxkit/pkg/voice"

	"github.com/go-chi/chi/v5"
)

const publicUploadPath = "/api/files/uploads/"

// withPublicSampleAudioPath swaps the local sample path for the URL it is
// served under, so records never leak filesystem layout.
func withPublicSampleAudioPath(v store.Voice) store.Voice {
	if v.SampleAudioPath == "" {
		return v
	}

	v.SampleAudioPath = publicUploadPath + filepath.Base(v.SampleAudioPath)

	return v
}

type createVoiceRequest struct {
	FileID string `json:"fileId"`
	Model  string `json:"model"`

	Text       string `json:"text"`
	SampleText string `json:"sampleText"`
}

func (h *Handler) handleVoiceCreate(w http.ResponseWriter, r *http.Request) {
	var req createVoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, err)
		return
	}

	if req.FileID == "" || req.Model == "" {
		h.sendError(w, http.StatusBadRequest, errors.New("fileId and model are required"))
		return
	}

	v, err := h.Voices.Create(r.Context(), DefaultUserID, req.FileID, req.Model, req.Text, req.SampleText)

	if err != nil {
		h.sendFailure(w, err)
		return
	}

	var sampleAudio string

	if v.SampleAudioPath != "" {
		if data, err := os.ReadFile(v.SampleAudioPath); err == nil {
			sampleAudio = base64.StdEncoding.EncodeToString(data)
		}
	}

	h.sendSuccess(w, map[string]any{
		"voiceId":         v.ID,
		"providerVoiceId": v.ProviderVoiceID,
		"sampleAudio":     sampleAudio,
		"embeddingHash":   v.EmbeddingHash,
	})
}

func (h *Handler) handleVoiceGet(w http.ResponseWriter, r *http.Request) {
	v, ok := h.Voices.Get(chi.URLParam(r, "voiceID"))

	if !ok {
		h.sendError(w, http.StatusNotFound, errors.New("voice not found"))
		return
	}

	h.sendSuccess(w, withPublicSampleAudioPath(v))
}

func (h *Handler) handleVoiceList(w http.ResponseWriter, r *http.Request) {
	options := store.ListOptions{
		Search: r.URL.Query().Get("search"),
	}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		options.Page = page
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		options.Limit = limit
	}

	voices, total := h.Voices.List(options)

	items := make([]store.Voice, 0, len(voices))

	for _, v := range voices {
		items = append(items, withPublicSampleAudioPath(v))
	}

	h.sendSuccess(w, map[string]any{
		"voices": items,
		"total":  total,
	})
}

type updateVoiceRequest struct {
	Text     *string        `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func (h *Handler) handleVoiceUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateVoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, err)
		return
	}

	v, ok := h.Voices.Update(chi.URLParam(r, "voiceID"), voice.UpdateRequest{
		Text:     req.Text,
		Metadata: req.Metadata,
	})

	if !ok {
		h.sendError(w, http.StatusNotFound, errors.New("voice not found"))
		return
	}

	h.sendSuccess(w, withPublicSampleAudioPath(v))
}

func (h *Handler) handleVoiceDelete(w http.ResponseWriter, r *http.Request) {
	if !h.Voices.Delete(chi.URLParam(r, "voiceID")) {
		h.sendError(w, http.StatusNotFound, errors.New("voice not found"))
		return
	}

	h.sendSuccess(w, map[string]any{"deleted": true})
}
