// Package dispatch implements single dispatch on class tags ("S3-style"
// methods).
//
// # Overview
//
// A generic operation (a Method such as "summary" or "rss") is called the
// same way on every value. The value carries an ordered list of class tags,
// most specific first, and the Registry picks the implementation bound to
// the first tag that has one. If none does, the method's default runs. If
// there is no default either, dispatch fails with *UnhandledTypeError.
//
// The package components:
//
//   - registry  - (method, class) → implementation table, process-wide instance
//   - generic   - typed handle on one method (Generic[R])
//   - chain     - the if/else-ladder alternative, for comparison
//   - warn      - default implementation that warns instead of failing
//   - methods   - summary and rss generics over vectors, frames and model fits
//   - fit/tree  - least squares, Poisson GLM and regression tree fits
//   - dataset   - YAML dataset loader and the embedded cars dataset
//   - assertions - test helpers for resolution order
//
// # Quick Start
//
// Bind an implementation per class and call through the generic name:
//
//	reg := dispatch.NewRegistry()
//	reg.Register("area", "circle", circleArea)
//	reg.Register("area", "square", squareArea)
//	reg.RegisterDefault("area", dispatch.WarnDefault("area", nil, math.NaN()))
//
//	a, err := reg.Dispatch("area", shape)
//
// Any package can add a class without touching the others: registration is
// keyed by (method, class) and a later registration for the same pair
// replaces the earlier one.
//
// # Specificity
//
// A value may carry several classes. A Poisson fit is tagged ["glm", "lm"]:
//
//	rss, err := dispatch.RSS(glmFit) // no rss.glm, so rss.lm runs
//
// A specific method can extend a less specific one with NextMethod:
//
//	s, err := reg.NextMethod("summary", x, "glm") // runs summary.lm
//
// # The Conditional Chain
//
// Without a registry, every generic is a ladder of class checks maintained
// in one place:
//
//	if is(x, "lm") { ... } else if is(x, "rpart") { ... } else { warn }
//
// Chain reproduces that shape so both can be tested and benchmarked side by
// side. Adding a class to a Chain means editing the chain; adding one to a
// Registry is one Register call in the package that owns the class.
//
// # Errors
//
//   - *UnhandledTypeError: no binding and no default; errors.Is(err, ErrUnhandledType)
//   - errors from an implementation are returned unchanged
//   - WarnDefault logs a warning and returns its fallback value instead of failing
//
// # Open Behaviour
//
// A value with no classes (or a nil value) matches no binding, so only the
// default can handle it. Bindings cannot be removed.
package dispatch
