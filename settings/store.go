package settings

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tabaudio/tabeq/eq"
)

// DefaultKey is the fixed identifier of the process-wide settings
// record. Callers needing per-scope records can override it with
// WithKey; namespacing policy itself lives outside this package.
const DefaultKey = "tabeq.settings"

// Store persists the equalizer settings record through a Backend.
// A Store may be shared by multiple chains; read-merge-write cycles are
// serialized internally so concurrent saves stay last-write-wins at the
// record level.
type Store struct {
	backend Backend
	key     string
	log     logrus.FieldLogger

	mu sync.Mutex // serializes read-merge-write cycles
	wg sync.WaitGroup

	asyncMu sync.Mutex
	pending *eq.State
	writing bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithBackend selects the storage backend. Default is an in-memory
// backend.
func WithBackend(b Backend) StoreOption {
	return func(s *Store) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithKey overrides the record key.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger overrides the logger used for persistence failures.
func WithLogger(log logrus.FieldLogger) StoreOption {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore returns a store over the configured backend.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		backend: NewMemoryBackend(),
		key:     DefaultKey,
		log:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Load returns the stored record, with gains sized to bandCount, or the
// default record when nothing is stored. Load never fails: storage
// errors are logged and the defaults returned.
func (s *Store) Load(bandCount int) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked(bandCount)
	rec.sizedGains(bandCount)

	return rec
}

// Save merges the partial into the stored record and writes the merged
// record back, whole. Failures are logged and swallowed; the next save
// supersedes a failed one.
func (s *Store) Save(p Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.loadLocked(len(p.GainsDB))
	p.mergeInto(&rec)
	s.writeLocked(rec)
}

// Reset clears the record back to defaults.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(s.key); err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Error("settings reset failed")
	}
}

// SaveStateAsync schedules a fire-and-forget write of the chain state.
// It returns immediately; the write happens on a background goroutine
// and any failure is logged and swallowed. Rapid successive calls are
// coalesced so the latest state always lands last. Safe to race with
// chain teardown: a write landing afterwards is harmless.
func (s *Store) SaveStateAsync(st eq.State) {
	snap := st.Clone()

	s.asyncMu.Lock()
	s.pending = &snap

	if s.writing {
		s.asyncMu.Unlock()

		return
	}

	s.writing = true
	s.wg.Add(1)
	s.asyncMu.Unlock()

	go s.drainPending()
}

func (s *Store) drainPending() {
	defer s.wg.Done()

	for {
		s.asyncMu.Lock()
		st := s.pending
		s.pending = nil

		if st == nil {
			s.writing = false
			s.asyncMu.Unlock()

			return
		}
		s.asyncMu.Unlock()

		s.Save(Partial{Enabled: &st.Enabled, GainsDB: st.GainsDB})
	}
}

// Flush waits for all scheduled asynchronous writes to settle. Meant for
// orderly shutdown and tests; the audio path never calls it.
func (s *Store) Flush() {
	s.wg.Wait()
}

func (s *Store) loadLocked(bandCount int) Settings {
	data, ok, err := s.backend.Get(s.key)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Error("settings load failed, using defaults")

		return Default(bandCount)
	}

	if !ok {
		return Default(bandCount)
	}

	var rec Settings
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Error("settings record corrupt, using defaults")

		return Default(bandCount)
	}

	return rec
}

func (s *Store) writeLocked(rec Settings) {
	data, err := json.Marshal(rec)
	if err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Error("settings encode failed")

		return
	}

	if err := s.backend.Set(s.key, data); err != nil {
		s.log.WithError(err).WithField("key", s.key).
			Error("settings write failed")
	}
}
