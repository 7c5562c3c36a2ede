package dispatch

import "fmt"

// Generic is a typed view of one method in a Registry.
//
//	rss := dispatch.NewGeneric[float64](reg, "rss")
//	rss.Register("lm", func(x dispatch.Classed, _ ...any) (float64, error) { ... })
//	v, err := rss.Call(model)
type Generic[R any] struct {
	reg    *Registry
	method Method
}

// NewGeneric returns a typed handle on method in reg.
func NewGeneric[R any](reg *Registry, method Method) *Generic[R] {
	return &Generic[R]{reg: reg, method: method}
}

// Method returns the generic's name.
func (g *Generic[R]) Method() Method {
	return g.method
}

// Register binds fn for class.
func (g *Generic[R]) Register(class Class, fn func(x Classed, args ...any) (R, error)) error {
	if fn == nil {
		return fmt.Errorf("register %q for %q: %w", g.method, class, ErrInvalidBinding)
	}
	return g.reg.Register(g.method, class, erase(fn))
}

// Default sets the fallback for the generic.
func (g *Generic[R]) Default(fn func(x Classed, args ...any) (R, error)) error {
	if fn == nil {
		return fmt.Errorf("register default for %q: %w", g.method, ErrInvalidBinding)
	}
	return g.reg.RegisterDefault(g.method, erase(fn))
}

// Call dispatches the generic on x.
func (g *Generic[R]) Call(x Classed, args ...any) (R, error) {
	out, err := g.reg.Dispatch(g.method, x, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	return g.cast(out)
}

// Next continues dispatch past class after.
func (g *Generic[R]) Next(x Classed, after Class, args ...any) (R, error) {
	out, err := g.reg.NextMethod(g.method, x, after, args...)
	if err != nil {
		var zero R
		return zero, err
	}
	return g.cast(out)
}

func (g *Generic[R]) cast(out any) (R, error) {
	v, ok := out.(R)
	if !ok {
		var zero R
		return zero, fmt.Errorf("%s returned %T, want %T: %w", g.method, out, zero, ErrResultType)
	}
	return v, nil
}

func erase[R any](fn func(x Classed, args ...any) (R, error)) Impl {
	return func(x Classed, args ...any) (any, error) {
		v, err := fn(x, args...)
		return v, err
	}
}
