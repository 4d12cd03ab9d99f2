package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voxkit/voxkit/pkg/audio"
	"github.com/voxkit/voxkit/pkg/health"
	"github.com/voxkit/voxkit/pkg/provider"
	"github.com/voxkit/voxkit/pkg/store"
	"github.com/voxkit/voxkit/pkg/tts"
	"github.com/voxkit/voxkit/pkg/voice"
)

const maxUploadBytes = 10 << 20

// DefaultUserID stands in for authentication, which this service does not do.
const DefaultUserID = "default-user"

type Handler struct {
	Store *store.Store

	Voices *voice.Service
	Speech *tts.Service
	Health *health.Checker

	UploadDir string

	Development bool
}

func New(records *store.Store, voices *voice.Service, speech *tts.Service, checker *health.Checker, uploadDir string) *Handler {
	return &Handler{
		Store: records,

		Voices: voices,
		Speech: speech,
		Health: checker,

		UploadDir: uploadDir,
	}
}

type Router interface {
	Get(pattern string, h http.HandlerFunc)
	Post(pattern string, h http.HandlerFunc)
	Put(pattern string, h http.HandlerFunc)
	Delete(pattern string, h http.HandlerFunc)
}

func (h *Handler) Attach(r Router) {
	r.Post("/api/files/upload", h.handleFileUpload)
	r.Get("/api/files/{fileID}", h.handleFileGet)
	r.Delete("/api/files/{fileID}", h.handleFileDelete)

	r.Post("/api/voices", h.handleVoiceCreate)
	r.Get("/api/voices", h.handleVoiceList)
	r.Get("/api/voices/{voiceID}", h.handleVoiceGet)
	r.Put("/api/voices/{voiceID}", h.handleVoiceUpdate)
	r.Delete("/api/voices/{voiceID}", h.handleVoiceDelete)

	r.Post("/api/tts/clone", h.handleClone)
	r.Post("/api/tts/tts", h.handleSpeech)

	r.Get("/health", h.handleHealth)
	r.Get("/health/providers", h.handleProviderHealth)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) sendSuccess(w http.ResponseWriter, data any) {
	writeJson(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
	})
}

func (h *Handler) sendError(w http.ResponseWriter, code int, err error) {
	resp := envelope{
		Success: false,
		Message: err.Error(),
	}

	if h.Development {
		resp.Error = err.Error()
	}

	writeJson(w, code, resp)
}

// sendFailure maps a domain error onto the boundary status code.
func (h *Handler) sendFailure(w http.ResponseWriter, err error) {
	h.sendError(w, statusFor(err), err)
}

func statusFor(err error) int {
	var authErr *provider.AuthError
	var rateErr *provider.RateLimitError
	var timeoutErr *provider.TimeoutError
	var requestErr *provider.RequestError

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, audio.ErrUnsupportedFormat):
		return http.StatusBadRequest

	case errors.As(err, &authErr):
		return http.StatusBadGateway

	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests

	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout

	case errors.As(err, &requestErr):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func writeJson(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}
