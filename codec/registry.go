package codec

import (
	"sort"
	"sync"
)

// Registry manages the available strategy factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

var defaultRegistry = &Registry{
	factories: make(map[string]Factory),
}

// Register registers a strategy factory under an algorithm name
func Register(name string, factory Factory) {
	defaultRegistry.Register(name, factory)
}

// Get retrieves a strategy factory by algorithm name
func Get(name string) (Factory, error) {
	return defaultRegistry.Get(name)
}

// List returns all registered algorithm names
func List() []string {
	return defaultRegistry.List()
}

// Register registers a strategy factory under an algorithm name
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a strategy factory by algorithm name
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, ErrStrategyNotFound
	}
	return factory, nil
}

// List returns all registered algorithm names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
