package memo

// entry is a stored value linked into its shard's recency list.
type entry[V any] struct {
	key        string
	value      V
	prev, next *entry[V]
}

// list is a circular doubly-linked recency list with a sentinel root.
// The front is the most recently used entry. Not safe for concurrent use.
type list[V any] struct {
	root entry[V]
	len  int
}

func (l *list[V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *list[V]) pushFront(e *entry[V]) {
	l.insertAfter(e, &l.root)
	l.len++
}

func (l *list[V]) insertAfter(e, at *entry[V]) {
	e.prev = at
	e.next = at.next
	at.next.prev = e
	at.next = e
}

func (l *list[V]) unlink(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}

func (l *list[V]) moveToFront(e *entry[V]) {
	if l.root.next == e {
		return
	}
	l.unlink(e)
	l.insertAfter(e, &l.root)
}

func (l *list[V]) remove(e *entry[V]) {
	l.unlink(e)
	l.len--
}

// back returns the least recently used entry, or nil when empty.
func (l *list[V]) back() *entry[V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}
