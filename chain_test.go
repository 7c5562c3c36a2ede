package dispatch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(s string) func(Classed, ...any) (string, error) {
	return func(Classed, ...any) (string, error) { return s, nil }
}

func TestChain_ResolvesLikeRegistry(t *testing.T) {
	chain := NewChain[string]("label").
		When("circle", label("circle")).
		When("lm", label("lm")).
		When("glm", label("glm")).
		Otherwise(label("default"))

	reg := NewRegistry()
	g := NewGeneric[string](reg, "label")
	for _, c := range []Class{"circle", "lm", "glm"} {
		require.NoError(t, g.Register(c, label(string(c))))
	}
	require.NoError(t, g.Default(label("default")))

	values := []shape{
		circle(1),
		{classes: []Class{"glm", "lm"}},
		{classes: []Class{"poly", "lm"}},
		triangle(1),
		{},
	}
	for _, v := range values {
		t.Run(fmt.Sprint(v.classes), func(t *testing.T) {
			want, err := g.Call(v)
			require.NoError(t, err)
			got, err := chain.Call(v)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestChain_WhenReplacesInPlace(t *testing.T) {
	chain := NewChain[string]("label").
		When("circle", label("first")).
		When("circle", label("second"))

	got, err := chain.Call(circle(1))
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestChain_UnhandledWithoutOtherwise(t *testing.T) {
	chain := NewChain[string]("label").When("circle", label("circle"))

	_, err := chain.Call(triangle(1))
	var ute *UnhandledTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, Method("label"), ute.Method)
	assert.Equal(t, []Class{"triangle"}, ute.Classes)
}

// benchClasses builds n distinct classes; the value matches the last one,
// which is the worst case for the chain.
func benchClasses(n int) []Class {
	out := make([]Class, n)
	for i := range out {
		out[i] = Class(fmt.Sprintf("class%03d", i))
	}
	return out
}

func BenchmarkRegistry_Dispatch(b *testing.B) {
	for _, n := range []int{4, 32, 256} {
		b.Run(fmt.Sprintf("classes=%d", n), func(b *testing.B) {
			reg := NewRegistry()
			classes := benchClasses(n)
			for _, c := range classes {
				_ = reg.Register("m", c, constImpl(1))
			}
			x := shape{classes: []Class{classes[n-1]}}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = reg.Dispatch("m", x)
			}
		})
	}
}

func BenchmarkChain_Call(b *testing.B) {
	for _, n := range []int{4, 32, 256} {
		b.Run(fmt.Sprintf("classes=%d", n), func(b *testing.B) {
			chain := NewChain[string]("m")
			classes := benchClasses(n)
			for _, c := range classes {
				chain.When(c, label("x"))
			}
			x := shape{classes: []Class{classes[n-1]}}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = chain.Call(x)
			}
		})
	}
}
