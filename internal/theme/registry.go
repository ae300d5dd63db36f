package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry holds the available themes. It is safe for concurrent use:
// the config watcher may re-register themes while the console reads
// the current one.
type Registry struct {
	mu      sync.RWMutex
	themes  map[string]*Theme
	current *Theme
}

// NewRegistry creates a registry seeded with the builtin themes, with
// storm current.
func NewRegistry() *Registry {
	r := &Registry{
		themes: make(map[string]*Theme),
	}

	r.Register(StormTheme())
	r.Register(MonokaiTheme())
	r.Register(DraculaTheme())
	r.Register(SolarizedTheme())
	r.Register(LightTheme())

	r.current = r.themes["storm"]

	return r
}

// Register adds a theme to the registry, replacing any theme of the
// same name. If the replaced theme is current, the new one becomes
// current, so reloaded scripts take effect immediately.
func (r *Registry) Register(t *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.Name == t.Name {
		r.current = t
	}
	r.themes[t.Name] = t
}

// Get returns a theme by name.
func (r *Registry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.themes[name]
	return t, ok
}

// Current returns the current theme.
func (r *Registry) Current() *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}

// SetCurrent sets the current theme by name.
func (r *Registry) SetCurrent(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.themes[name]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns all registered theme names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir runs every *.lua script in dir and registers the resulting
// themes. A missing directory is not an error: a fresh install has no
// theme directory yet. Scripts that fail are collected in the returned
// error; the remaining scripts still register.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read theme dir: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".lua") {
			continue
		}
		t, err := LoadScript(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.Register(t)
	}
	return errors.Join(errs...)
}
