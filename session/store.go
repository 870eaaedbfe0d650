package session

import (
	"io/ioutil"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// TokenStore is a durable slot holding the raw bearer credential between
// process restarts. The credential is the only session state that persists;
// everything else is rebuilt from a verification exchange on start.
type TokenStore interface {
	// Load returns the stored credential, or the empty string if the slot is
	// vacant.
	Load() (string, error)
	// Store replaces the slot's contents.
	Store(token string) error
	// Clear vacates the slot. Clearing a vacant slot is not an error.
	Clear() error
}

type fileTokenStore struct {
	path string
}

// NewFileTokenStore returns a TokenStore backed by a single file at the given
// path.
func NewFileTokenStore(path string) TokenStore {
	return &fileTokenStore{
		path: path,
	}
}

func (f *fileTokenStore) Load() (string, error) {
	tokenBytes, err := ioutil.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "error reading token file %s", f.path)
	}
	return string(tokenBytes), nil
}

func (f *fileTokenStore) Store(token string) error {
	if err := ioutil.WriteFile(f.path, []byte(token), 0600); err != nil {
		return errors.Wrapf(err, "error writing token file %s", f.path)
	}
	return nil
}

func (f *fileTokenStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error removing token file %s", f.path)
	}
	return nil
}

type memoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore returns a TokenStore that holds the credential in
// memory only. It is useful for tests and for callers that do not want any
// credential written to disk.
func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{}
}

func (m *memoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryTokenStore) Store(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
