// Package registry provides the keyed in-memory store shared by every
// analysis framework.
//
// Each framework owns one Registry. Records are created with a generated
// short identifier and are only reachable through View and Update, which
// run the caller's function under the registry lock so concurrent tool
// calls never observe a half-applied mutation.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an identifier is not in the registry.
var ErrNotFound = errors.New("registry: not found")

// idLength is the number of characters kept from a generated UUID.
const idLength = 8

// newID is a package-level var to allow deterministic IDs in tests.
var newID = func() string {
	return uuid.NewString()[:idLength]
}

type entry[T any] struct {
	seq   uint64
	value *T
}

// Registry is a concurrency-safe map from generated identifiers to records.
type Registry[T any] struct {
	mu    sync.RWMutex
	items map[string]*entry[T]
	seq   uint64
}

// New creates an empty Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]*entry[T])}
}

// Create generates a fresh identifier, builds the record with it and
// stores it. Identifiers are never reused within a registry.
func (r *Registry[T]) Create(build func(id string) T) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := newID()
	for {
		if _, taken := r.items[id]; !taken {
			break
		}
		id = newID()
	}

	v := build(id)
	r.seq++
	r.items[id] = &entry[T]{seq: r.seq, value: &v}
	return id
}

// View runs fn with read access to the record stored under id.
func (r *Registry[T]) View(id string, fn func(*T) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.value)
}

// Update runs fn with exclusive access to the record stored under id.
// fn is responsible for leaving the record consistent when it fails.
func (r *Registry[T]) Update(id string, fn func(*T) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	return fn(e.value)
}

// Each calls fn for every record, newest insertion first.
func (r *Registry[T]) Each(fn func(id string, v *T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.items[ids[i]].seq > r.items[ids[j]].seq
	})
	for _, id := range ids {
		fn(id, r.items[id].value)
	}
}

// Len returns the number of stored records.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
