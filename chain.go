package dispatch

// Chain is the conditional alternative to a Registry: one ordered list of
// class branches checked top to bottom, owned by whoever maintains the
// function. Adding a class means editing the chain.
//
// It resolves the same way as a Registry holding the same bindings and is
// kept as the baseline the registry is measured against.
type Chain[R any] struct {
	method    Method
	branches  []branch[R]
	otherwise func(x Classed, args ...any) (R, error)
}

type branch[R any] struct {
	class Class
	fn    func(x Classed, args ...any) (R, error)
}

// NewChain starts an empty chain for method.
func NewChain[R any](method Method) *Chain[R] {
	return &Chain[R]{method: method}
}

// When appends a branch for class. A later branch for the same class
// replaces the earlier one in place.
func (c *Chain[R]) When(class Class, fn func(x Classed, args ...any) (R, error)) *Chain[R] {
	for i := range c.branches {
		if c.branches[i].class == class {
			c.branches[i].fn = fn
			return c
		}
	}
	c.branches = append(c.branches, branch[R]{class: class, fn: fn})
	return c
}

// Otherwise sets the final else arm.
func (c *Chain[R]) Otherwise(fn func(x Classed, args ...any) (R, error)) *Chain[R] {
	c.otherwise = fn
	return c
}

// Call evaluates the chain. For each class of x, most specific first, every
// branch is tested in order, i.e. an if/else-if ladder per class.
func (c *Chain[R]) Call(x Classed, args ...any) (R, error) {
	classes := classesOf(x)
	for _, cl := range classes {
		for _, b := range c.branches {
			if b.class == cl {
				return b.fn(x, args...)
			}
		}
	}
	if c.otherwise != nil {
		return c.otherwise(x, args...)
	}
	var zero R
	return zero, &UnhandledTypeError{Method: c.method, Classes: classes}
}
