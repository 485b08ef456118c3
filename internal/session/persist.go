package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/blockpad/internal/engine/state"
	"github.com/dshills/blockpad/internal/serialize"
	"github.com/dshills/blockpad/internal/store"
)

// Save serializes the current document and writes it to the store. The
// returned payload is the snapshot that was written.
func (s *Session) Save(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveState(ctx, s.State())
}

func (s *Session) saveState(ctx context.Context, st state.EditorState) ([]byte, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	data, err := serialize.Marshal(st.Document())
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.key, err)
	}
	if err := s.store.Put(ctx, s.key, data); err != nil {
		return nil, fmt.Errorf("save %s: %w", s.key, err)
	}
	s.logger.Debug("document saved", "key", s.key, "blocks", st.Document().Len(), "bytes", len(data))
	return data, nil
}

// Load replaces the current state with the document stored under the
// session key. A missing payload yields an empty document. A payload that
// cannot be decoded also yields an empty document and is logged. Store
// failures are returned with the current state left in place.
func (s *Session) Load(ctx context.Context) (state.EditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStore(); err != nil {
		return s.State(), err
	}

	data, err := s.store.Get(ctx, s.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Debug("no saved document", "key", s.key)
		st := state.NewEmpty()
		s.resetLocked(st)
		return st, nil
	case err != nil:
		return s.State(), fmt.Errorf("load %s: %w", s.key, err)
	}

	st := s.decode(data)
	s.resetLocked(st)
	return st, nil
}

// LoadBytes replaces the current state with the document in data, using the
// same fallback rules as Load.
func (s *Session) LoadBytes(data []byte) state.EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.decode(data)
	s.resetLocked(st)
	return st
}

// Clear deletes the stored payload and resets the session to an empty
// document.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStore(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	s.logger.Info("document cleared", "key", s.key)
	s.resetLocked(state.NewEmpty())
	return nil
}

// decode turns a payload into a state, falling back to an empty document.
func (s *Session) decode(data []byte) state.EditorState {
	info, err := serialize.Inspect(data)
	if err != nil {
		s.logger.Warn("discarding malformed document", "key", s.key, "error", err)
		return state.NewEmpty()
	}
	if info.Legacy || info.Version == 0 {
		migrated, err := serialize.Migrate(data)
		if err != nil {
			s.logger.Warn("discarding malformed document", "key", s.key, "error", err)
			return state.NewEmpty()
		}
		s.logger.Info("migrated document", "key", s.key, "from_version", info.Version, "blocks", info.Blocks)
		data = migrated
	}

	doc, err := serialize.Deserialize(data)
	if err != nil {
		s.logger.Warn("discarding malformed document", "key", s.key, "error", err)
		return state.NewEmpty()
	}
	return state.CreateWithContent(doc)
}
