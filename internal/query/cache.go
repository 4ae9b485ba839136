// Package query implements a keyed result cache with a per-key fetch state
// machine, namespace invalidation and last-ticket-wins resolution.
//
// Callers start a fetch with Begin, run it however they like, and hand the
// outcome back with Resolve. A result is applied only if its ticket is the
// newest one issued for that key, so responses that were superseded by a
// later fetch or by an invalidation are dropped.
package query

import (
	"fmt"
	"sync"
	"time"
)

// Key identifies one cached result set.
type Key struct {
	Namespace string
	Page      int
	Search    string
}

func (k Key) String() string {
	return fmt.Sprintf("%s[page=%d search=%q]", k.Namespace, k.Page, k.Search)
}

// Status is the fetch state of a key.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Ticket ties a fetch to the key and sequence it was started with.
type Ticket struct {
	Key Key
	seq uint64
}

// Entry is a snapshot of one key's state.
type Entry[T any] struct {
	Key       Key
	Status    Status
	Data      T
	HasData   bool // Data holds a successful result (possibly from before a refetch)
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

type entry[T any] struct {
	Entry[T]
	seq uint64
}

// Cache stores results per Key. It is safe for concurrent use.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[Key]*entry[T]
	seq     uint64

	subs    map[int]func(Key)
	nextSub int

	now func() time.Time
}

// New creates an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{
		entries: make(map[Key]*entry[T]),
		subs:    make(map[int]func(Key)),
		now:     time.Now,
	}
}

// Subscribe registers fn to be called with the key of every entry that
// changes state. The returned func removes the subscription.
func (c *Cache[T]) Subscribe(fn func(Key)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Begin starts a fetch for key. If a fetch for the key is already in flight
// and the entry has not been invalidated since, the existing ticket is
// returned with started=false and the caller should not fetch again.
func (c *Cache[T]) Begin(key Key) (t Ticket, started bool) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.Status == StatusLoading && !e.Stale {
		c.mu.Unlock()
		return Ticket{Key: key, seq: e.seq}, false
	}
	c.seq++
	e.seq = c.seq
	e.Status = StatusLoading
	e.Stale = false
	t = Ticket{Key: key, seq: e.seq}
	c.mu.Unlock()

	c.notify(key)
	return t, true
}

// Resolve records the outcome of the fetch identified by t. It reports
// whether the result was applied; superseded tickets are ignored.
//
// A failed fetch keeps the last successful data on the entry.
func (c *Cache[T]) Resolve(t Ticket, data T, err error) bool {
	c.mu.Lock()
	e, ok := c.entries[t.Key]
	if !ok || e.seq != t.seq || e.Status != StatusLoading {
		c.mu.Unlock()
		return false
	}
	if err != nil {
		e.Status = StatusError
		e.Err = err
	} else {
		e.Status = StatusSuccess
		e.Data = data
		e.HasData = true
		e.Err = nil
		e.UpdatedAt = c.now()
	}
	c.mu.Unlock()

	c.notify(t.Key)
	return true
}

// Invalidate marks every entry in namespace stale and returns the affected
// keys. Fetches in flight for those keys are superseded.
func (c *Cache[T]) Invalidate(namespace string) []Key {
	c.mu.Lock()
	var keys []Key
	for k, e := range c.entries {
		if k.Namespace != namespace {
			continue
		}
		c.invalidateLocked(e)
		keys = append(keys, k)
	}
	c.mu.Unlock()

	for _, k := range keys {
		c.notify(k)
	}
	return keys
}

func (c *Cache[T]) invalidateLocked(e *entry[T]) {
	e.Stale = true
	if e.Status == StatusLoading {
		// Orphan the in-flight ticket and fall back to the last settled state.
		c.seq++
		e.seq = c.seq
		if e.HasData {
			e.Status = StatusSuccess
		} else {
			e.Status = StatusIdle
		}
	}
}

// Get returns a snapshot of key's entry.
func (c *Cache[T]) Get(key Key) (Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry[T]{Key: key}, false
	}
	return e.Entry, true
}

// NeedsFetch reports whether key has no fresh result and no fetch in flight.
func (c *Cache[T]) NeedsFetch(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return true
	}
	switch e.Status {
	case StatusLoading:
		return e.Stale
	case StatusSuccess:
		return e.Stale
	default:
		return true
	}
}

// Len returns the number of cached keys.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[T]) entryLocked(key Key) *entry[T] {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[T]{Entry: Entry[T]{Key: key}}
		c.entries[key] = e
	}
	return e
}

func (c *Cache[T]) notify(key Key) {
	c.mu.Lock()
	fns := make([]func(Key), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
