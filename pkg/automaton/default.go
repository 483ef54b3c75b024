package automaton

import (
	"errors"
	"sync"
)

// ErrInitialized is returned by Init when the process-wide automaton exists.
var ErrInitialized = errors.New("automaton already initialized")

var (
	defaultMu sync.RWMutex
	defaultA  *Automaton
)

// Init builds the process-wide automaton from words. It may succeed once per
// process; later calls return the existing automaton and ErrInitialized.
func Init(words []string) (*Automaton, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultA != nil {
		return defaultA, ErrInitialized
	}
	defaultA = Build(words)
	return defaultA, nil
}

// Get returns the process-wide automaton, if Init has run.
func Get() (*Automaton, bool) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultA, defaultA != nil
}

// reset clears the process-wide automaton. Tests only.
func reset() {
	defaultMu.Lock()
	defaultA = nil
	defaultMu.Unlock()
}
