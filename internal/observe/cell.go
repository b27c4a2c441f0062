// Package observe provides the single-goroutine observable cells the
// presentation core composes its state from. Every stateful value (selection,
// sort, pagination, resolved preferences) lives in exactly one Cell; consumers
// subscribe and are notified synchronously with the full new value, so a
// logical update is always observed as one consistent snapshot.
//
// Cells are not safe for concurrent use. All mutation is expected to happen
// on the owning loop (the tea.Update goroutine in the TUI, the test goroutine
// in tests), matching the cooperative single-threaded model of the rest of
// the core.
package observe

// Subscriber receives the new value after each Set.
type Subscriber[T any] func(T)

// Cell holds one observable value.
type Cell[T any] struct {
	value  T
	nextID int
	subs   map[int]Subscriber[T]
}

// NewCell returns a cell seeded with initial. No notification fires for the
// seed value; subscribers receive it via the immediate callback in Subscribe.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  map[int]Subscriber[T]{},
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T { return c.value }

// Set stores v and synchronously notifies every subscriber.
func (c *Cell[T]) Set(v T) {
	c.value = v
	for _, fn := range c.subs {
		fn(v)
	}
}

// Update applies fn to the current value and publishes the result as one
// transition. Subscribers never see an intermediate state.
func (c *Cell[T]) Update(fn func(T) T) {
	c.Set(fn(c.value))
}

// Subscribe registers fn, invokes it immediately with the current value, and
// returns a cancel func that removes the subscription. Cancel is idempotent.
func (c *Cell[T]) Subscribe(fn Subscriber[T]) (cancel func()) {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	fn(c.value)
	return func() { delete(c.subs, id) }
}

// Derive returns a new cell whose value is fn applied to src, kept in sync on
// every change of src. The returned cancel func detaches the derived cell.
func Derive[A, B any](src *Cell[A], fn func(A) B) (*Cell[B], func()) {
	out := NewCell(fn(src.Get()))
	cancel := src.Subscribe(func(a A) {
		out.Set(fn(a))
	})
	return out, cancel
}

// Combine returns a cell derived from two sources, recomputed whenever either
// emits. Used where one downstream snapshot depends on independently-evolving
// upstream cells (e.g. resolved preferences from user + system settings).
func Combine[A, B, C any](a *Cell[A], b *Cell[B], fn func(A, B) C) (*Cell[C], func()) {
	out := NewCell(fn(a.Get(), b.Get()))
	recompute := func() { out.Set(fn(a.Get(), b.Get())) }
	ca := a.Subscribe(func(A) { recompute() })
	cb := b.Subscribe(func(B) { recompute() })
	return out, func() {
		ca()
		cb()
	}
}
