package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

func (h *Handler) handleClone(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	upload, header, err := r.FormFile("file")

	if err != nil {
		var maxErr *http.MaxBytesError

		if errors.As(err, &maxErr) {
			h.sendError(w, http.StatusRequestEntityTooLarge, errors.New("file too large (limit 10 MB)"))
			return
		}

		h.sendError(w, http.StatusBadRequest, errors.New("no audio file uploaded"))
		return
	}

	defer upload.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.sendError(w, http.StatusInternalServerError, err)
		return
	}

	path := filepath.Join(h.UploadDir, uuid.NewString()+filepath.Ext(header.Filename))

	stored, err := os.Create(path)

	if err != nil {
		h.sendError(w, http.StatusInternalServerError, err)
		return
	}

	if _, err := io.Copy(stored, upload); err != nil {
		stored.Close()
		os.Remove(path)

		h.sendError(w, http.StatusInternalServerError, err)
		return
	}

	stored.Close()

	v, err := h.Voices.Clone(r.Context(), path)

	if err != nil {
		h.sendFailure(w, err)
		return
	}

	h.sendSuccess(w, map[string]any{
		"voiceId":         v.ID,
		"providerVoiceId": v.ProviderVoiceID,
	})
}

type speechRequest struct {
	VoiceID string `json:"voiceId"`
	Text    string `json:"text"`
}

func (h *Handler) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req speechRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, err)
		return
	}

	if req.VoiceID == "" || req.Text == "" {
		h.sendError(w, http.StatusBadRequest, errors.New("voiceId and text are required"))
		return
	}

	result, err := h.Speech.Generate(r.Context(), req.VoiceID, req.Text)

	if err != nil {
		h.sendFailure(w, err)
		return
	}

	h.sendSuccess(w, result)
}
