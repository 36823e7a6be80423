package customizer

import "sync"

// Store hands out one Session per session key. Sessions live in memory
// only; carts, users and orders are the persisted slices of state.
type Store struct {
	basePrice float64
	mu        sync.Mutex
	sessions  map[string]*Session
}

func NewStore(basePrice float64) *Store {
	if basePrice <= 0 {
		basePrice = DefaultBasePrice
	}
	return &Store{
		basePrice: basePrice,
		sessions:  make(map[string]*Session),
	}
}

// Session returns the active session for a key, creating it on first use.
func (st *Store) Session(key string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[key]; ok {
		return s
	}
	s := NewSession(st.basePrice)
	st.sessions[key] = s
	return s
}

// Drop discards a key's session entirely.
func (st *Store) Drop(key string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, key)
}
