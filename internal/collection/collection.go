// Package collection holds an ordered, id-keyed list of records guarded by a
// single lock. Products and albums are each one List.
package collection

import "sync"

// Record is anything with a server-assigned integer id.
type Record interface {
	RecordID() int64
}

// List keeps records in insertion order. Ids come from a high-water mark:
// the next id is one past the largest id ever held, so a deleted id is never
// handed out again and deletion never renumbers.
type List[T Record] struct {
	mu     sync.RWMutex
	items  []T
	lastID int64
}

// New returns a List pre-loaded with seed, in order, keeping the ids the
// seed records already carry.
func New[T Record](seed ...T) *List[T] {
	l := &List[T]{items: make([]T, 0, len(seed))}
	for _, rec := range seed {
		l.items = append(l.items, rec)
		if id := rec.RecordID(); id > l.lastID {
			l.lastID = id
		}
	}
	return l
}

// Insert assigns the next id, lets build produce the record for it and
// appends the result.
func (l *List[T]) Insert(build func(id int64) T) T {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastID++
	rec := build(l.lastID)
	l.items = append(l.items, rec)
	return rec
}

// All returns a copy of the records in insertion order. It never returns nil.
func (l *List[T]) All() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Find(id int64) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.index(id); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Update runs apply against the stored record in place while holding the
// write lock. Changes apply makes before returning an error are kept; the
// record is returned in whatever state apply left it. apply must not change
// the record's id.
func (l *List[T]) Update(id int64, apply func(*T) error) (T, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		var zero T
		return zero, false, nil
	}

	err := apply(&l.items[i])
	return l.items[i], true, err
}

// Remove deletes the record with id, keeping the order of the rest.
func (l *List[T]) Remove(id int64) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}

	rec := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return rec, true
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List[T]) index(id int64) int {
	for i := range l.items {
		if l.items[i].RecordID() == id {
			return i
		}
	}
	return -1
}
