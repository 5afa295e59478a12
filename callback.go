package wrend

import "github.com/google/uuid"

// Callback wraps a func(C) with a stable identity.
//
// Go funcs are not comparable, so each wrapper gets a UUID when it is
// created; copies share it. The zero Callback is unset and calling it does
// nothing.
type Callback[C any] struct {
	id uuid.UUID
	fn func(C)
}

// NewCallback wraps fn. A nil fn yields the unset Callback.
func NewCallback[C any](fn func(C)) Callback[C] {
	if fn == nil {
		return Callback[C]{}
	}
	return Callback[C]{id: uuid.New(), fn: fn}
}

// Call invokes the wrapped function if one is set.
func (c Callback[C]) Call(ctx C) {
	if c.fn != nil {
		c.fn(ctx)
	}
}

// IsSet reports whether a function is wrapped.
func (c Callback[C]) IsSet() bool { return c.fn != nil }

// ID returns the identity assigned at construction (uuid.Nil when unset).
func (c Callback[C]) ID() uuid.UUID { return c.id }

// Equal reports whether c and o wrap the same registration.
func (c Callback[C]) Equal(o Callback[C]) bool { return c.id == o.id }

// Predicate wraps a func(C) bool with a stable identity.
// The zero Predicate is unset and evaluates to true.
type Predicate[C any] struct {
	id uuid.UUID
	fn func(C) bool
}

// NewPredicate wraps fn. A nil fn yields the unset Predicate.
func NewPredicate[C any](fn func(C) bool) Predicate[C] {
	if fn == nil {
		return Predicate[C]{}
	}
	return Predicate[C]{id: uuid.New(), fn: fn}
}

// Eval returns fn(ctx), or true when unset.
func (p Predicate[C]) Eval(ctx C) bool {
	if p.fn == nil {
		return true
	}
	return p.fn(ctx)
}

func (p Predicate[C]) IsSet() bool               { return p.fn != nil }
func (p Predicate[C]) ID() uuid.UUID             { return p.id }
func (p Predicate[C]) Equal(o Predicate[C]) bool { return p.id == o.id }

// Factory wraps a creation callback returning a handle of type H.
// The zero Factory is unset and returns the zero H.
type Factory[C, H any] struct {
	id uuid.UUID
	fn func(C) H
}

// NewFactory wraps fn. A nil fn yields the unset Factory.
func NewFactory[C, H any](fn func(C) H) Factory[C, H] {
	if fn == nil {
		return Factory[C, H]{}
	}
	return Factory[C, H]{id: uuid.New(), fn: fn}
}

// Create invokes the wrapped function, or returns the zero H when unset.
func (f Factory[C, H]) Create(ctx C) H {
	var zero H
	if f.fn == nil {
		return zero
	}
	return f.fn(ctx)
}

func (f Factory[C, H]) IsSet() bool                { return f.fn != nil }
func (f Factory[C, H]) ID() uuid.UUID              { return f.id }
func (f Factory[C, H]) Equal(o Factory[C, H]) bool { return f.id == o.id }
