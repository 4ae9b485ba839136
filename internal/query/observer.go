package query

// Result is what an observer exposes to the view.
type Result[T any] struct {
	Key    Key
	Status Status
	Data   T
	// HasData is false only before the first successful fetch of any key
	// this observer has watched.
	HasData bool
	// IsPlaceholder is set when Data belongs to a previously observed key
	// because the current key has no result yet.
	IsPlaceholder bool
	IsFetching    bool
	IsError       bool
	Err           error
}

// Observer watches one key at a time and keeps the last shown data around
// while a newly selected key is still loading.
type Observer[T any] struct {
	cache *Cache[T]
	key   Key

	placeholder    T
	hasPlaceholder bool
}

// NewObserver creates an observer for key.
func NewObserver[T any](cache *Cache[T], key Key) *Observer[T] {
	return &Observer[T]{cache: cache, key: key}
}

// Key returns the observed key.
func (o *Observer[T]) Key() Key { return o.key }

// SetKey switches to key. The data currently shown becomes the placeholder
// for the new key. It reports whether the key changed.
func (o *Observer[T]) SetKey(key Key) bool {
	if key == o.key {
		return false
	}
	if r := o.Result(); r.HasData {
		o.placeholder = r.Data
		o.hasPlaceholder = true
	}
	o.key = key
	return true
}

// Result reads the observed key's entry. Entries of other keys never leak
// into the result except through the placeholder captured by SetKey.
func (o *Observer[T]) Result() Result[T] {
	r := Result[T]{Key: o.key}

	e, ok := o.cache.Get(o.key)
	if ok {
		r.Status = e.Status
		r.IsFetching = e.Status == StatusLoading
		// The last error stays set while a retry is in flight.
		r.IsError = e.Err != nil
		r.Err = e.Err
	}

	switch {
	case ok && e.HasData:
		r.Data = e.Data
		r.HasData = true
	case o.hasPlaceholder:
		r.Data = o.placeholder
		r.HasData = true
		r.IsPlaceholder = true
	}
	return r
}
