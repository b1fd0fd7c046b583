package settings

// Backend is the key-value storage primitive underneath a Store. Set
// must replace the whole value atomically: a concurrent Get sees either
// the previous value or the new one, never a mix.
type Backend interface {
	// Get returns the stored value for key. The second result is false
	// when nothing is stored; that is not an error.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the value for key. Deleting a missing key is a
	// no-op.
	Delete(key string) error
}
