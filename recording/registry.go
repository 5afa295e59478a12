package recording

import (
	"fmt"
	"sort"
	"sync"
)

// SinkFactory creates a sink for a target, e.g. a directory or file name.
type SinkFactory func(target string) (Sink, error)

var (
	registryMu sync.RWMutex
	sinks      = make(map[string]SinkFactory)
)

func init() {
	Register("file", func(dir string) (Sink, error) {
		if dir == "" {
			dir = "."
		}
		return NewFileSink(dir, ""), nil
	})
}

// Register makes a sink available by name. It panics if factory is nil or
// the name is taken.
func Register(name string, factory SinkFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := sinks[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	sinks[name] = factory
}

// Unregister removes a sink. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(sinks, name)
}

// NewSink creates a sink by name.
func NewSink(name, target string) (Sink, error) {
	registryMu.RLock()
	factory, ok := sinks[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown sink %q (forgotten import?)", name)
	}
	return factory(target)
}

// Sinks returns the registered sink names, sorted.
func Sinks() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
