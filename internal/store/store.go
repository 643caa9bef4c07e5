// Package store persists compiled shader artifacts.
//
// Artifacts are keyed by the fingerprint of the generated shader source
// and the output target, so a changed expression or source layout never
// returns stale bytes.
package store

// Store is the interface for artifact persistence.
type Store interface {
	// Get returns the artifact for key and target. ok is false if absent.
	Get(key, target string) (data []byte, ok bool, err error)
	// Put stores an artifact, overwriting any previous one.
	Put(key, target string, data []byte) error
	// Delete removes every target stored under key.
	Delete(key string) error
	// Len returns the number of stored artifacts.
	Len() (int, error)
	// Close releases resources.
	Close() error
}
