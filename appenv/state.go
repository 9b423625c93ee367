package appenv

import (
	"os"
	"sync"
)

// DefaultName is the environment name used when none is fixed or set.
const DefaultName = "dev"

// Settings is a snapshot of the process-wide values fixed by Bootstrap.
// A nil field has not been fixed yet.
type Settings struct {
	Debug *bool
	Name  *string
}

type settingsState struct {
	mu     sync.RWMutex
	prefix string
	debug  *bool
	name   *string
}

var state = newSettingsState()

func newSettingsState() *settingsState {
	return &settingsState{prefix: DefaultPrefix}
}

// fixDebug stores the debug flag unless one is already fixed and returns
// the effective value.
func (s *settingsState) fixDebug(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debug == nil {
		s.debug = &v
	}
	return *s.debug
}

func (s *settingsState) fixName(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.name == nil {
		s.name = &v
	}
}

func (s *settingsState) setPrefix(prefix string) {
	s.mu.Lock()
	s.prefix = prefix
	s.mu.Unlock()
}

func (s *settingsState) currentPrefix() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefix
}

// Name returns the current environment name. A name fixed by Bootstrap
// takes precedence; otherwise the environment-name variable is read as-is,
// falling back to DefaultName.
func Name() string {
	state.mu.RLock()
	name, prefix := state.name, state.prefix
	state.mu.RUnlock()

	if name != nil {
		return *name
	}
	if v, ok := os.LookupEnv(prefix + nameVar); ok && v != "" {
		return v
	}
	return DefaultName
}

// Debug reports whether debug mode has been fixed to true.
func Debug() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.debug != nil && *state.debug
}

// Fixed returns a copy of the settings fixed so far.
func Fixed() Settings {
	state.mu.RLock()
	defer state.mu.RUnlock()

	var out Settings
	if state.debug != nil {
		d := *state.debug
		out.Debug = &d
	}
	if state.name != nil {
		n := *state.name
		out.Name = &n
	}
	return out
}
