// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"sort"
	"sync"

	"github.com/gogpu/wrend/gl"
)

// Factory creates a GL context for canvas.
// Implementations return an error wrapping ErrTypeConversion when the
// canvas is not one they can draw to.
type Factory func(canvas gl.Canvas) (gl.Context, error)

// Entry represents a registered GL backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Built-in priorities:
	//   - 100: webgl (browser)
	//   - 50: gles (EGL, native)
	//   - 0: headless (in-memory)
	Priority int

	// Factory creates contexts.
	Factory Factory

	// Available reports if the backend can run on this system.
	Available func() bool
}

var globalRegistry = &Registry{}

// Registry manages registered GL backends.
//
// Backends register themselves from init, so importing a backend package
// for its side effect is enough to make it selectable:
//
//	import _ "github.com/gogpu/wrend/backend/gles"
//
//	ctx, err := backend.Open(canvas)
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
// Register panics if factory is nil.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*Entry, bool) {
	return globalRegistry.Get(name)
}

// Open creates a context for canvas using the best available backend.
func Open(canvas gl.Canvas) (gl.Context, error) {
	return globalRegistry.Open(canvas)
}

// OpenByName creates a context for canvas using a specific backend.
func OpenByName(name string, canvas gl.Canvas) (gl.Context, error) {
	return globalRegistry.OpenByName(name, canvas)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if factory == nil {
		panic("backend: Register factory is nil for " + name)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if _, dup := r.entries[name]; dup {
		Logger().Warn("backend: replacing registered backend", "name", name)
	}
	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns a copy of the entry registered under name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// Open tries each available backend in priority order and returns the
// first context created. When every backend fails, the last error is
// returned.
func (r *Registry) Open(canvas gl.Canvas) (gl.Context, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		ctx, err := r.OpenByName(name, canvas)
		if err == nil {
			return ctx, nil
		}
		Logger().Debug("backend: open failed, trying next", "name", name, "error", err)
		lastErr = err
	}
	return nil, lastErr
}

// OpenByName creates a context using a specific backend.
func (r *Registry) OpenByName(name string, canvas gl.Canvas) (gl.Context, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !e.Available() {
		return nil, &UnavailableError{Name: name}
	}

	ctx, err := e.Factory(canvas)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, ErrContextNotFound
	}
	Logger().Info("backend: context created", "name", name)
	return ctx, nil
}

// sortedNames returns backend names sorted by priority (highest first),
// then by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
