// Package session provides the session-scoped key/value store shared across
// wizard steps.
//
// The store is string-keyed and string-valued with synchronous access,
// mirroring the browser sessionStorage contract the flow was designed
// against. Two implementations are provided: an in-memory store for tests
// and single-shot runs, and a file-backed store that persists the session
// under the state directory so a Back navigation can rehydrate earlier
// answers.
//
// Raw keys carry an implicit schema, so callers never touch them directly:
// the typed Session wrapper owns the encoding of every well-known key.
package session

// Well-known session keys. The values stored under them are JSON-encoded
// strings; see Session for the schema of each key.
const (
	// KeyCaseData holds the JSON-serialized case draft.
	KeyCaseData = "caseData"

	// KeyPreviousNavigation is set when the user navigates backward, telling
	// the next forward pass to rehydrate from the session instead of the
	// flow-provided draft.
	KeyPreviousNavigation = "previousNavigation"

	// KeyIDsPreviouslyVoted holds the JSON array of document ids the user
	// has already voted on.
	KeyIDsPreviouslyVoted = "idsPreviouslyVoted"

	// KeyIDsPreviouslyVotedPositive holds the JSON array of document ids the
	// user voted helpful.
	KeyIDsPreviouslyVotedPositive = "idsPreviouslyVotedPositive"
)

// Store is the session-scoped key/value contract. Implementations are
// synchronous and last-writer-wins; the flow runs steps strictly
// sequentially on one goroutine, so no further coordination is layered on.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string)

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string)

	// Clear removes every key. Called when the flow completes or is abandoned.
	Clear()
}

// MemStore is an in-memory Store. The zero value is not usable; create one
// with NewMemStore.
type MemStore struct {
	values map[string]string
}

// NewMemStore creates an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *MemStore) Set(key, value string) {
	m.values[key] = value
}

// Delete implements Store.
func (m *MemStore) Delete(key string) {
	delete(m.values, key)
}

// Clear implements Store.
func (m *MemStore) Clear() {
	m.values = make(map[string]string)
}
