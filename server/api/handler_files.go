package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/voxkit/voxkit/pkg/audio"
	"github.com/voxkit/voxkit/pkg/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	upload, header, err := r.FormFile("file")

	if err != nil {
		var maxErr *http.MaxBytesError

		if errors.As(err, &maxErr) {
			h.sendError(w, http.StatusRequestEntityTooLarge, errors.New("file too large (limit 10 MB)"))
			return
		}

		h.sendError(w, http.StatusBadRequest, errors.New("no file uploaded"))
		return
	}

	defer upload.Close()

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.sendError(w, http.StatusInternalServerError, err)
		return
	}

	id := uuid.NewString()
	path := filepath.Join(h.UploadDir, id+filepath.Ext(header.Filename))

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

	processed, err := audio.Process(path)

	if err != nil {
		os.Remove(path)

		h.sendFailure(w, err)
		return
	}

	duration, err := audio.Duration(processed.Path)

	if err != nil {
		os.Remove(processed.Path)

		h.sendFailure(w, err)
		return
	}

	if duration < 1 || duration > 10 {
		os.Remove(processed.Path)

		h.sendError(w, http.StatusBadRequest, errors.New("audio duration must be between 1 and 10 seconds"))
		return
	}

	file := store.File{
		ID:      id,
		OwnerID: DefaultUserID,

		OriginalFilename: header.Filename,
		StoredPath:       processed.Path,

		ByteSize: processed.Size,
		Duration: duration,
		Format:   processed.Format,

		CreatedAt: time.Now(),
	}

	h.Store.SaveFile(file)

	h.sendSuccess(w, map[string]any{
		"fileId":   file.ID,
		"filename": file.OriginalFilename,
		"fileSize": file.ByteSize,
		"duration": file.Duration,
		"format":   file.Format,
	})
}

func (h *Handler) handleFileGet(w http.ResponseWriter, r *http.Request) {
	file, ok := h.Store.File(chi.URLParam(r, "fileID"))

	if !ok {
		h.sendError(w, http.StatusNotFound, errors.New("file not found"))
		return
	}

	h.sendSuccess(w, file)
}

func (h *Handler) handleFileDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "fileID")

	file, ok := h.Store.File(id)

	if !ok {
		h.sendError(w, http.StatusNotFound, errors.New("file not found"))
		return
	}

	if err := os.Remove(file.StoredPath); err != nil && !os.IsNotExist(err) {
		h.sendError(w, http.StatusInternalServerError, err)
		return
	}

	h.Store.DeleteFile(id)

	h.sendSuccess(w, map[string]any{"deleted": true})
}
