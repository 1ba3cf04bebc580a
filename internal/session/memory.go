package session

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the session in process memory only. Used by tests and by
// callers that do not want a login to survive the process.
type MemoryStore struct {
	cur   Session
	epoch uint64
}

// NewMemoryStore returns an empty, logged-out store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Current returns the session snapshot.
func (m *MemoryStore) Current() Session {
	return m.cur
}

// Set replaces the session.
func (m *MemoryStore) Set(s Session) error {
	m.cur = s
	m.epoch++
	return nil
}

// Clear removes the session. Idempotent.
func (m *MemoryStore) Clear() error {
	m.cur = Session{}
	m.epoch++
	return nil
}

// Epoch returns the write counter.
func (m *MemoryStore) Epoch() uint64 {
	return m.epoch
}
