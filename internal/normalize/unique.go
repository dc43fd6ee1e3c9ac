package normalize

// Unique accumulates values in first-seen order, dropping any value whose key
// was already added. The zero value is not usable; call NewUnique.
type Unique[T any, K comparable] struct {
	key   func(T) K
	seen  map[K]struct{}
	items []T
}

// NewUnique returns an accumulator that deduplicates on key(v).
func NewUnique[T any, K comparable](key func(T) K) *Unique[T, K] {
	return &Unique[T, K]{
		key:   key,
		seen:  make(map[K]struct{}),
		items: []T{},
	}
}

// NewUniqueStrings returns an accumulator over plain string values.
func NewUniqueStrings() *Unique[string, string] {
	return NewUnique(func(s string) string { return s })
}

// Add appends v unless an equal key was added before. It reports whether v was kept.
func (u *Unique[T, K]) Add(v T) bool {
	k := u.key(v)
	if _, dup := u.seen[k]; dup {
		return false
	}
	u.seen[k] = struct{}{}
	u.items = append(u.items, v)
	return true
}

// Len returns the number of distinct values added so far.
func (u *Unique[T, K]) Len() int {
	return len(u.items)
}

// Items returns the accumulated values. The slice is never nil.
func (u *Unique[T, K]) Items() []T {
	return u.items
}
