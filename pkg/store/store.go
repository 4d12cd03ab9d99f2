// Package store holds the process-lifetime records of the service. Nothing
// here survives a restart; records live exactly as long as the process.
package store

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("record not found")

type File struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`

	OriginalFilename string `json:"filename"`
	StoredPath       string `json:"-"`

	ByteSize int64   `json:"fileSize"`
	Duration float64 `json:"duration"`
	Format   string  `json:"format"`

	CreatedAt time.Time `json:"createdAt"`
}

type Embedding struct {
	FileID string `json:"fileId"`

	Vector []float64 `json:"vector"`
	Hash   string    `json:"vectorHash"`

	CreatedAt time.Time `json:"createdAt"`
}

type Voice struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	ProviderVoiceID string `json:"providerVoiceId"`
	FileID          string `json:"fileId"`
	Model           string `json:"model"`

	Text       string `json:"text,omitempty"`
	SampleText string `json:"sampleText,omitempty"`

	SampleAudioPath string `json:"sampleAudioPath,omitempty"`
	EmbeddingHash   string `json:"embeddingHash"`

	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListOptions struct {
	Page  int
	Limit int

	Search string
	UserID string
}

// Store is the single shared mutable resource of the service. The original
// ran on a single-threaded event loop; the mutex preserves its
// one-writer-at-a-time semantics under Go's concurrency.
type Store struct {
	mu sync.RWMutex

	files      map[string]File
	voices     map[string]Voice
	embeddings map[string]Embedding

	// (fileID, model) -> voice id, the idempotency index for creates
	voicesByFile map[voiceKey]string
}

type voiceKey struct {
	fileID string
	model  string
}

func New() *Store {
	return &Store{
		files:      make(map[string]File),
		voices:     make(map[string]Voice),
		embeddings: make(map[string]Embedding),

		voicesByFile: make(map[voiceKey]string),
	}
}

func (s *Store) SaveFile(f File) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[f.ID] = f
}

func (s *Store) File(id string) (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	return f, ok
}

func (s *Store) DeleteFile(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return false
	}

	delete(s.files, id)
	return true
}

// SaveEmbedding upserts the embedding for a file. One embedding per file,
// last write wins.
func (s *Store) SaveEmbedding(e Embedding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.embeddings[e.FileID] = e
}

func (s *Store) Embedding(fileID string) (Embedding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.embeddings[fileID]
	return e, ok
}

func (s *Store) SaveVoice(v Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveVoiceLocked(v)
}

// SaveVoiceIfAbsent inserts v unless a voice for the same (fileID, model)
// pair already exists. Check and insert share one critical section, so two
// concurrent creates for the same pair cannot both pass the check. Returns
// the voice that ended up stored and whether v was the one inserted.
func (s *Store) SaveVoiceIfAbsent(v Voice) (Voice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.voicesByFile[voiceKey{v.FileID, v.Model}]; ok {
		return s.voices[id], false
	}

	s.saveVoiceLocked(v)
	return v, true
}

func (s *Store) saveVoiceLocked(v Voice) {
	s.voices[v.ID] = v
	s.voicesByFile[voiceKey{v.FileID, v.Model}] = v.ID
}

func (s *Store) Voice(id string) (Voice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.voices[id]
	return v, ok
}

func (s *Store) VoiceByFileAndModel(fileID, model string) (Voice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.voicesByFile[voiceKey{fileID, model}]

	if !ok {
		return Voice{}, false
	}

	v, ok := s.voices[id]
	return v, ok
}

func (s *Store) DeleteVoice(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[id]

	if !ok {
		return false
	}

	delete(s.voices, id)

	key := voiceKey{v.FileID, v.Model}

	if s.voicesByFile[key] == id {
		delete(s.voicesByFile, key)
	}

	return true
}

// ListVoices returns one page of matching voices, newest first, and the size
// of the full match set. Pages are 1-indexed.
func (s *Store) ListVoices(options ListOptions) ([]Voice, int) {
	if options.Page < 1 {
		options.Page = 1
	}

	if options.Limit < 1 {
		options.Limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]Voice, 0, len(s.voices))

	for _, v := range s.voices {
		if options.UserID != "" && v.UserID != options.UserID {
			continue
		}

		if !matchesSearch(v, options.Search) {
			continue
		}

		matches = append(matches, v)
	}

	slices.SortFunc(matches, func(a, b Voice) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	total := len(matches)

	start := (options.Page - 1) * options.Limit

	if start >= total {
		return []Voice{}, total
	}

	end := min(start+options.Limit, total)

	return slices.Clone(matches[start:end]), total
}

func matchesSearch(v Voice, search string) bool {
	if search == "" {
		return true
	}

	search = strings.ToLower(search)

	for _, field := range []string{v.Model, v.Text, v.SampleText} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}

	return false
}
