package snapshot

import (
	"sort"

	"github.com/google/uuid"
)

// MemoryStore implements Store in-process memory. Useful for tests and
// short-lived processes, mirroring the teacher cache's MemoryCache.
type MemoryStore struct {
	entries map[string]Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Snapshot)}
}

func (m *MemoryStore) Append(s Snapshot) (string, error) {
	if s.RunID == "" {
		s.RunID = uuid.NewString()
	}
	if _, err := s.Fingerprint(); err != nil {
		return "", wrapErr("append", s.RunID, err)
	}
	m.entries[s.RunID] = s
	return "memory://" + s.RunID, nil
}

// Load returns the stored snapshot. There is no external corruption vector
// for in-memory storage, so unlike FileStore this never returns
// ErrFingerprintMismatch.
func (m *MemoryStore) Load(runID string) (Snapshot, error) {
	s, ok := m.entries[runID]
	if !ok {
		return Snapshot{}, wrapErr("load", runID, ErrNotFound)
	}
	return s, nil
}

func (m *MemoryStore) List(prefix string, limit int) ([]string, error) {
	var ids []string
	for id := range m.entries {
		if len(prefix) == 0 || (len(id) >= len(prefix) && id[:len(prefix)] == prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
