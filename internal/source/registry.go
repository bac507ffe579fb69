package source

import (
	"fmt"
	"sort"
	"sync"
)

// Factory opens a Source, or fails if the underlying player is unavailable.
type Factory func() (Source, error)

var (
	regMu    sync.Mutex
	registry = make(map[string]Factory)
)

// autoOrder is the auto-detection priority: external players first, the
// built-in file player as the fallback.
var autoOrder = []string{"mpris", "mpd", "local"}

// Register makes an adapter available under name. Adapters call it from
// init, so a duplicate name is a programming error and panics.
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("source: adapter %q registered twice", name))
	}
	registry[name] = f
}

// Names returns the registered adapter names, sorted.
func Names() []string {
	regMu.Lock()
	defer regMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the named adapter. With "" or "auto" it tries each registered
// adapter in detection priority order and returns the first that comes up.
func Open(name string) (Source, error) {
	regMu.Lock()
	defer regMu.Unlock()

	if name != "" && name != "auto" {
		f, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("source: unknown adapter %q", name)
		}
		return f()
	}

	tried := make(map[string]bool)
	for _, candidate := range autoOrder {
		f, ok := registry[candidate]
		if !ok {
			continue
		}
		tried[candidate] = true
		if src, err := f(); err == nil {
			return src, nil
		}
	}
	for candidate, f := range registry {
		if tried[candidate] {
			continue
		}
		if src, err := f(); err == nil {
			return src, nil
		}
	}
	return nil, ErrNoPlayer
}
