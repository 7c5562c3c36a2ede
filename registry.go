package dispatch

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Method names a generic operation, e.g. "summary" or "rss".
type Method string

// Class is a type tag carried by a value.
type Class string

// Classed is implemented by every value that can be dispatched on.
// Classes returns the value's tags ordered most specific first.
type Classed interface {
	Classes() []Class
}

// Impl is a method implementation. Extra arguments are forwarded from the
// dispatch call untouched.
type Impl func(x Classed, args ...any) (any, error)

// Config controls registry construction.
type Config struct {
	Logger *slog.Logger // Receives diagnostics (nil = slog.Default() at log time)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// Registry maps (method, class) pairs to implementations, with an optional
// default implementation per method.
//
// Bindings are never removed. Registering the same pair twice replaces the
// earlier binding.
type Registry struct {
	mu       sync.RWMutex
	methods  map[Method]map[Class]Impl
	defaults map[Method]Impl
	logger   *slog.Logger
}

// New creates an empty registry.
func New(cfg Config) *Registry {
	return &Registry{
		methods:  make(map[Method]map[Class]Impl),
		defaults: make(map[Method]Impl),
		logger:   cfg.Logger,
	}
}

// NewRegistry creates an empty registry with DefaultConfig.
func NewRegistry() *Registry {
	return New(DefaultConfig())
}

// Register binds impl to (method, class), replacing any earlier binding.
func (r *Registry) Register(method Method, class Class, impl Impl) error {
	if method == "" || class == "" || impl == nil {
		return fmt.Errorf("register %q for %q: %w", method, class, ErrInvalidBinding)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.methods[method]
	if !ok {
		table = make(map[Class]Impl)
		r.methods[method] = table
	}
	if _, exists := table[class]; exists {
		r.log().Debug("method shadowed", "method", method, "class", class)
	}
	table[class] = impl
	return nil
}

// RegisterDefault sets the fallback used when no class of the argument
// has a binding for method.
func (r *Registry) RegisterDefault(method Method, impl Impl) error {
	if method == "" || impl == nil {
		return fmt.Errorf("register default for %q: %w", method, ErrInvalidBinding)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defaults[method]; exists {
		r.log().Debug("default method shadowed", "method", method)
	}
	r.defaults[method] = impl
	return nil
}

// Resolve returns the implementation Dispatch would call. The returned class
// is empty when the default was selected.
func (r *Registry) Resolve(method Method, x Classed) (Impl, Class, bool) {
	return r.resolve(method, classesOf(x))
}

// Dispatch calls the implementation bound to the first class of x that has
// one, otherwise the default for method. Errors from the implementation are
// returned unchanged. Without a match or default the error is an
// *UnhandledTypeError.
func (r *Registry) Dispatch(method Method, x Classed, args ...any) (any, error) {
	classes := classesOf(x)
	impl, _, ok := r.resolve(method, classes)
	if !ok {
		return nil, &UnhandledTypeError{Method: method, Classes: classes}
	}
	return impl(x, args...)
}

// NextMethod dispatches method on x starting from the class after the given
// one, so a specific method can build on a less specific one. If after is
// not among x's classes the search starts past the end, so only the default
// can apply.
func (r *Registry) NextMethod(method Method, x Classed, after Class, args ...any) (any, error) {
	classes := classesOf(x)
	rest := classes[len(classes):]
	for i, c := range classes {
		if c == after {
			rest = classes[i+1:]
			break
		}
	}

	impl, _, ok := r.resolve(method, rest)
	if !ok {
		return nil, &UnhandledTypeError{Method: method, Classes: rest}
	}
	return impl(x, args...)
}

// Has reports whether method has a binding for class (defaults excluded).
func (r *Registry) Has(method Method, class Class) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.methods[method][class]
	return ok
}

// Methods lists the classes that have a binding for method, sorted.
func (r *Registry) Methods(method Method) []Class {
	r.mu.RLock()
	defer r.mu.RUnlock()

	classes := make([]Class, 0, len(r.methods[method]))
	for c := range r.methods[method] {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return classes
}

// HasDefault reports whether method has a default implementation.
func (r *Registry) HasDefault(method Method) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.defaults[method]
	return ok
}

func (r *Registry) resolve(method Method, classes []Class) (Impl, Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.methods[method]
	for _, c := range classes {
		if impl, ok := table[c]; ok {
			return impl, c, true
		}
	}
	if impl, ok := r.defaults[method]; ok {
		return impl, "", true
	}
	return nil, "", false
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

// classesOf copies x's classes so callers and errors never alias the value's
// own slice. A nil value has no classes.
func classesOf(x Classed) []Class {
	if x == nil {
		return nil
	}
	src := x.Classes()
	out := make([]Class, len(src))
	copy(out, src)
	return out
}

// Process-wide registry (populated from init functions)
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register binds impl in the process-wide registry.
func Register(method Method, class Class, impl Impl) error {
	return defaultRegistry.Register(method, class, impl)
}

// RegisterDefault sets a fallback in the process-wide registry.
func RegisterDefault(method Method, impl Impl) error {
	return defaultRegistry.RegisterDefault(method, impl)
}

// Dispatch calls method on x through the process-wide registry.
func Dispatch(method Method, x Classed, args ...any) (any, error) {
	return defaultRegistry.Dispatch(method, x, args...)
}

// NextMethod continues dispatch past class after in the process-wide registry.
func NextMethod(method Method, x Classed, after Class, args ...any) (any, error) {
	return defaultRegistry.NextMethod(method, x, after, args...)
}
