package view

import "github.com/weblarek/larek/internal/dom"

// Opt is a render field that may be absent.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some marks v as present.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// apply calls fn with the value when present.
func (o Opt[T]) apply(fn func(T)) {
	if o.Set {
		fn(o.Value)
	}
}

// View is the render contract shared by all components.
type View[S any] interface {
	// Root returns the element the view is bound to.
	Root() *dom.Element
	// Render applies the present fields of s and returns Root.
	Render(s S) *dom.Element
}
