package dispatch

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nlsFit stands in for a model class nobody wrote an rss method for.
type nlsFit struct{}

func (nlsFit) Classes() []Class { return []Class{"nls"} }

func TestStatsMethods_ResolutionOrder(t *testing.T) {
	reg := NewStatsRegistry()
	x, y := carsXY(t)

	lm, err := FitLinear(x, y)
	require.NoError(t, err)
	glm, err := FitPoisson(x, y)
	require.NoError(t, err)
	tree, err := FitTree(x, y, DefaultTreeConfig())
	require.NoError(t, err)

	AssertDispatchesTo(t, reg, MethodRSS, lm, ClassLM)
	AssertDispatchesTo(t, reg, MethodRSS, glm, ClassLM)
	AssertDispatchesTo(t, reg, MethodRSS, tree, ClassRPart)
	AssertDispatchesTo(t, reg, MethodSummary, glm, ClassGLM)
	AssertDispatchesTo(t, reg, MethodSummary, Cars(), ClassDataFrame)
	AssertDispatchesTo(t, reg, MethodSummary, Vector(x), ClassNumeric)

	AssertFallsBackToDefault(t, reg, MethodRSS, nlsFit{})
	AssertFallsBackToDefault(t, reg, MethodSummary, nlsFit{})
}

func TestStatsMethods_RSS(t *testing.T) {
	reg := NewStatsRegistry()
	rss := NewGeneric[float64](reg, MethodRSS)
	x, y := carsXY(t)

	lm, err := FitLinear(x, y)
	require.NoError(t, err)
	got, err := rss.Call(lm)
	require.NoError(t, err)
	assert.InDelta(t, 11353.52, got, 0.01)

	glm, err := FitPoisson(x, y)
	require.NoError(t, err)
	got, err = rss.Call(glm)
	require.NoError(t, err)
	var want float64
	for _, r := range glm.Residuals {
		want += r * r
	}
	assert.InDelta(t, want, got, 1e-9, "glm falls back to rss.lm on response residuals")

	tree, err := FitTree(x, y, DefaultTreeConfig())
	require.NoError(t, err)
	got, err = rss.Call(tree)
	require.NoError(t, err)
	assert.Less(t, got, 32538.98)

	// A deeper tree can only lower the in-sample RSS
	deep, err := FitTree(x, y, TreeConfig{MaxDepth: 8, MinLeaf: 5})
	require.NoError(t, err)
	deeper, err := rss.Call(deep)
	require.NoError(t, err)
	assert.LessOrEqual(t, deeper, got)

	t.Logf("✓ rss: glm=%.2f rpart(depth 4)=%.2f rpart(depth 8)=%.2f", want, got, deeper)
}

func TestStatsMethods_RSSDefaultWarns(t *testing.T) {
	var buf bytes.Buffer
	reg := New(Config{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	require.NoError(t, RegisterStatsMethods(reg))

	got, err := NewGeneric[float64](reg, MethodRSS).Call(nlsFit{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
	assert.Contains(t, buf.String(), "method=rss")
	assert.Contains(t, buf.String(), "nls")
}

func TestStatsMethods_Summary(t *testing.T) {
	reg := NewStatsRegistry()

	out, err := reg.Dispatch(MethodSummary, Vector{4, 1, 3, 2})
	require.NoError(t, err)
	s, ok := out.(Summary)
	require.True(t, ok, "summary.numeric returns Summary, got %T", out)
	assert.InDelta(t, 2.5, s.Median, 1e-12)

	out, err = reg.Dispatch(MethodSummary, Cars())
	require.NoError(t, err)
	fs, ok := out.(FrameSummary)
	require.True(t, ok, "summary.data.frame returns FrameSummary, got %T", out)
	assert.Equal(t, 50, fs.Rows)
	require.Len(t, fs.Columns, 2)
	assert.Equal(t, "speed", fs.Columns[0].Name)
	assert.Equal(t, "dist", fs.Columns[1].Name)
	assert.Equal(t, 36.0, fs.Columns[1].Median)
}

func TestStatsMethods_SummaryLMAndGLM(t *testing.T) {
	reg := NewStatsRegistry()
	summary := NewGeneric[ModelSummary](reg, MethodSummary)
	x, y := carsXY(t)

	lm, err := FitLinear(x, y)
	require.NoError(t, err)
	s, err := summary.Call(lm)
	require.NoError(t, err)
	assert.Equal(t, ClassLM, s.Class)
	assert.InDelta(t, 3.9324, s.Slope, 1e-4)
	assert.InDelta(t, 11353.52, s.RSS, 0.01)
	assert.InDelta(t, 0, s.Residuals.Mean, 1e-9)
	assert.Empty(t, s.Family)

	counts := []float64{2, 3, 6, 7, 8, 9, 10, 12, 15, 20}
	idx := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	glm, err := FitPoisson(idx, counts)
	require.NoError(t, err)
	s, err = summary.Call(glm)
	require.NoError(t, err)
	assert.Equal(t, ClassGLM, s.Class, "summary.glm extends summary.lm")
	assert.Equal(t, "poisson", s.Family)
	assert.Equal(t, "log", s.Link)
	assert.InDelta(t, glm.Deviance, s.Deviance, 1e-12)
	assert.InDelta(t, glm.Slope, s.Slope, 1e-12, "coefficients come from summary.lm")
	assert.InDelta(t, 8.4753, s.RSS, 1e-3)
}

func TestStatsMethods_WrongConcreteType(t *testing.T) {
	reg := NewStatsRegistry()

	// Claims to be a data.frame without being a Frame
	impostor := shape{classes: []Class{ClassDataFrame}}
	_, err := reg.Dispatch(MethodSummary, impostor)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnhandledType)
}

func TestRSS_ProcessWideRegistry(t *testing.T) {
	lm, err := FitLinear([]float64{1, 2, 3, 4}, []float64{1, 3, 2, 4})
	require.NoError(t, err)

	got, err := RSS(lm)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, got, 1e-9)

	AssertDispatchesTo(t, Default(), MethodRSS, lm, ClassLM)
}
