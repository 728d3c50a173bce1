package viewmodel

import (
	"sync"

	"github.com/google/uuid"
)

// Collection is an observable list. Mutation happens only through Replace,
// which snapshots the new items and notifies every subscriber explicitly;
// there is no implicit per-field change tracking.
type Collection[T any] struct {
	mu    sync.Mutex
	items []T
	subs  map[uuid.UUID]func([]T)
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{subs: make(map[uuid.UUID]func([]T))}
}

// Items returns a copy of the current contents.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Replace swaps the contents and notifies subscribers with a copy.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	fns := make([]func([]T), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	snapshot := make([]T, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// Subscribe registers fn to run after every Replace. The returned token
// removes the subscription via Unsubscribe.
func (c *Collection[T]) Subscribe(fn func([]T)) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := uuid.New()
	c.subs[id] = fn
	return id
}

func (c *Collection[T]) Unsubscribe(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}
