package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/apkren/pkg/errors"
)

// Registry is a generic, thread-safe registry for storing and retrieving items by name
type Registry[T any] interface {
	// Set adds or replaces an item and reports whether an item was replaced
	Set(name string, item T) (bool, error)

	// Get retrieves an item from the registry
	Get(name string) (T, error)

	// List returns all registered names
	List() []string

	// Count returns the number of registered items
	Count() int
}

// Option configures a registry at construction time
type Option func(*options)

type options struct {
	foldCase bool
}

// CaseInsensitive makes every lookup ignore letter case. Names are stored lower-cased.
func CaseInsensitive() Option {
	return func(o *options) {
		o.foldCase = true
	}
}

// registry is the internal implementation of Registry
type registry[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	opts  options
}

// New creates a new Registry instance
func New[T any](opts ...Option) Registry[T] {
	r := &registry[T]{
		items: make(map[string]T),
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func (r *registry[T]) key(name string) string {
	if r.opts.foldCase {
		return strings.ToLower(name)
	}
	return name
}

// Set adds or replaces an item
func (r *registry[T]) Set(name string, item T) (bool, error) {
	if name == "" {
		return false, errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(name)
	_, replaced := r.items[key]
	r.items[key] = item
	return replaced, nil
}

// Get retrieves an item from the registry
func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[r.key(name)]
	if !exists {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}

	return item, nil
}

// List returns all registered names in sorted order
func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of registered items
func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustGet retrieves an item and panics if not found
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}
