package session

// Persistence is the injected key-value capability the session stores
// visitor identity in. The core never reaches for ambient global state;
// hosts pass whatever storage they have (SQLite, browser storage bridge,
// nothing at all).
//
// Contract per key: read-if-present, else generate-and-write-once.
type Persistence interface {
	// Get reads a value. The second return is false when absent;
	// absence is not an error.
	Get(key string) (string, bool, error)

	// Set writes a value.
	Set(key, value string) error
}

// Persistence keys. Implementation details of this package; hosts never
// construct them.
const (
	KeySessionToken = "reliquary.session_token"
	KeyEditionToken = "reliquary.edition_token"
	KeyMobileAck    = "reliquary.mobile_ack"
)

// MemoryPersistence is the ephemeral fallback used when no durable store
// is available or a store call fails. Within a session it behaves exactly
// like a real store; across reloads everything is lost, which degrades
// determinism across visits but never within a run.
type MemoryPersistence map[string]string

// NewMemoryPersistence creates an empty in-memory store.
func NewMemoryPersistence() MemoryPersistence {
	return make(MemoryPersistence)
}

// Get reads a value.
func (m MemoryPersistence) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

// Set writes a value.
func (m MemoryPersistence) Set(key, value string) error {
	m[key] = value
	return nil
}
