package dispatch

import (
	"errors"
	"testing"
)

// AssertDispatchesTo verifies that method on x resolves to the binding for
// class, not to a less specific class or the default.
//
// Use it in packages that register methods to pin the resolution order:
//
//	dispatch.AssertDispatchesTo(t, dispatch.Default(), "rss", glmFit, "lm")
func AssertDispatchesTo(t *testing.T, r *Registry, method Method, x Classed, class Class) {
	t.Helper()

	_, got, ok := r.Resolve(method, x)
	if !ok {
		t.Fatalf("No method for %q on classes %v\n"+
			"Register one for %q or add a default.", method, classesOf(x), class)
	}
	if got == "" {
		t.Errorf("%q on classes %v fell back to the default, want %q.%s",
			method, classesOf(x), method, class)
		return
	}
	if got != class {
		t.Errorf("%q on classes %v resolved to %q.%s, want %q.%s",
			method, classesOf(x), method, got, method, class)
		return
	}

	t.Logf("✓ %s.%s handles %v", method, class, classesOf(x))
}

// AssertFallsBackToDefault verifies that no class binding matches x and the
// default for method runs without error.
func AssertFallsBackToDefault(t *testing.T, r *Registry, method Method, x Classed) {
	t.Helper()

	_, got, ok := r.Resolve(method, x)
	if !ok {
		t.Fatalf("%q has no default; dispatch on %v would fail", method, classesOf(x))
	}
	if got != "" {
		t.Errorf("%q on classes %v resolved to %q.%s, want the default",
			method, classesOf(x), method, got)
		return
	}
	if _, err := r.Dispatch(method, x); err != nil {
		t.Errorf("Default for %q failed on %v: %v", method, classesOf(x), err)
		return
	}

	t.Logf("✓ %s default handles %v", method, classesOf(x))
}

// AssertUnhandled verifies that dispatching method on x fails with an
// *UnhandledTypeError naming the method and every class of x.
func AssertUnhandled(t *testing.T, r *Registry, method Method, x Classed) {
	t.Helper()

	_, err := r.Dispatch(method, x)
	if err == nil {
		t.Fatalf("%q on classes %v succeeded, want UnhandledTypeError", method, classesOf(x))
	}

	var ute *UnhandledTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("%q on classes %v: got %T (%v), want *UnhandledTypeError", method, classesOf(x), err, err)
	}
	if ute.Method != method {
		t.Errorf("UnhandledTypeError names method %q, want %q", ute.Method, method)
	}
	want := classesOf(x)
	if len(ute.Classes) != len(want) {
		t.Errorf("UnhandledTypeError names classes %v, want %v", ute.Classes, want)
		return
	}
	for i := range want {
		if ute.Classes[i] != want[i] {
			t.Errorf("UnhandledTypeError names classes %v, want %v", ute.Classes, want)
			return
		}
	}

	t.Logf("✓ Correctly rejected: %v", err)
}
