// Package voice implements the lifecycle of voice identities: idempotent
// local creation, provider-backed cloning, lookup, update and deletion.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/voxkit/voxkit/pkg/embedding"
	"github.com/voxkit/voxkit/pkg/provider"
	"github.com/voxkit/voxkit/pkg/store"

	"github.com/google/uuid"
)

const DefaultModel = "codec"

var ErrNoCloner = errors.New("no cloning provider configured")

type Service struct {
	store *store.Store

	cloner     provider.Cloner
	cloneModel string
}

type Option func(*Service)

func WithCloner(cloner provider.Cloner, model string) Option {
	return func(s *Service) {
		s.cloner = cloner
		s.cloneModel = model
	}
}

func New(records *store.Store, options ...Option) *Service {
	s := &Service{
		store: records,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Create builds a voice from an already-uploaded file. It never calls the
// cloning provider: identity is a locally computed fingerprint and the
// provider voice id is a local placeholder. Create is idempotent on
// (fileID, model); a repeated call returns the existing voice unchanged and
// computes no second embedding.
func (s *Service) Create(ctx context.Context, userID, fileID, model, text, sampleText string) (store.Voice, error) {
	if model == "" {
		model = DefaultModel
	}

	if existing, ok := s.store.VoiceByFileAndModel(fileID, model); ok {
		return existing, nil
	}

	file, ok := s.store.File(fileID)

	if !ok {
		return store.Voice{}, fmt.Errorf("file %q: %w", fileID, store.ErrNotFound)
	}

	contents, err := os.ReadFile(file.StoredPath)

	if err != nil {
		slog.Warn("reading sample for fingerprint, falling back to file id", "file", fileID, "error", err)
	}

	result := embedding.Generate(fileID, contents)

	now := time.Now()

	s.store.SaveEmbedding(store.Embedding{
		FileID: fileID,

		Vector: result.Vector,
		Hash:   result.Hash,

		CreatedAt: now,
	})

	id := uuid.NewString()

	v := store.Voice{
		ID:     id,
		UserID: userID,

		ProviderVoiceID: "local-" + id,
		FileID:          fileID,
		Model:           model,

		Text:       text,
		SampleText: sampleText,

		SampleAudioPath: file.StoredPath,
		EmbeddingHash:   result.Hash,

		Metadata: map[string]any{
			"type":           "codec-model",
			"createdLocally": true,
		},

		CreatedAt: now,
		UpdatedAt: now,
	}

	// the check above is only a fast path; the insert re-checks the
	// (fileID, model) index under the store lock
	v, inserted := s.store.SaveVoiceIfAbsent(v)

	if inserted {
		slog.Info("voice created", "voice", v.ID, "file", fileID, "model", model)
	}

	return v, nil
}

// Clone uploads the sample to the primary provider and asks it for a cloned
// voice identity. Fingerprinting is delegated upstream, so no local
// embedding is computed on this path.
func (s *Service) Clone(ctx context.Context, samplePath string) (store.Voice, error) {
	if s.cloner == nil {
		return store.Voice{}, ErrNoCloner
	}

	uploaded, err := s.cloner.Upload(ctx, samplePath)

	if err != nil {
		return store.Voice{}, err
	}

	cloned, err := s.cloner.Clone(ctx, provider.CloneRequest{
		FileID: uploaded.ID,
		Model:  s.cloneModel,
	})

	if err != nil {
		return store.Voice{}, err
	}

	id := uuid.NewString()
	now := time.Now()

	v := store.Voice{
		ID:     id,
		UserID: "default-user",

		ProviderVoiceID: cloned.ID,
		FileID:          "stepfun-" + id,
		Model:           s.cloneModel,

		EmbeddingHash: "stepfun-managed",

		Metadata: map[string]any{
			"source": "stepfun",
		},

		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.SaveVoice(v)

	slog.Info("voice cloned", "voice", v.ID, "provider_voice", cloned.ID, "duplicated", cloned.Duplicated)

	return v, nil
}

func (s *Service) Get(id string) (store.Voice, bool) {
	return s.store.Voice(id)
}

func (s *Service) List(options store.ListOptions) ([]store.Voice, int) {
	return s.store.ListVoices(options)
}

type UpdateRequest struct {
	Text     *string
	Metadata map[string]any
}

// Update mutates text and metadata only; any other field in the request is
// ignored. UpdatedAt is refreshed whenever the voice exists, even if the
// request changes nothing.
func (s *Service) Update(id string, request UpdateRequest) (store.Voice, bool) {
	v, ok := s.store.Voice(id)

	if !ok {
		return store.Voice{}, false
	}

	if request.Text != nil {
		v.Text = *request.Text
	}

	if request.Metadata != nil {
		v.Metadata = request.Metadata
	}

	v.UpdatedAt = time.Now()

	s.store.SaveVoice(v)

	return v, true
}

// Delete removes the voice after a best-effort unlink of its sample audio.
// A failed unlink is logged and never blocks removal of the record.
func (s *Service) Delete(id string) bool {
	v, ok := s.store.Voice(id)

	if !ok {
		return false
	}

	if v.SampleAudioPath != "" {
		if err := os.Remove(v.SampleAudioPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("deleting sample audio", "voice", id, "path", v.SampleAudioPath, "error", err)
		}
	}

	return s.store.DeleteVoice(id)
}
