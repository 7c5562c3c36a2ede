package dispatch

import (
	"fmt"
	"math"
)

// Generics provided by RegisterStatsMethods.
const (
	MethodSummary Method = "summary"
	MethodRSS     Method = "rss"
)

// ColumnSummary is the summary of one frame column.
type ColumnSummary struct {
	Name string
	Summary
}

// FrameSummary summarizes every column of a Frame, in column order.
type FrameSummary struct {
	Rows    int
	Columns []ColumnSummary
}

// ModelSummary describes a fitted model. GLM-only fields are zero for a
// plain linear model.
type ModelSummary struct {
	Class     Class
	Intercept float64
	Slope     float64
	RSquared  float64
	RSS       float64
	Residuals Summary

	Family       string
	Link         string
	Deviance     float64
	NullDeviance float64
	Iterations   int
}

// linearFit is satisfied by *LinearModel and, through embedding, by
// *GeneralizedModel.
type linearFit interface {
	linear() *LinearModel
}

func (m *LinearModel) linear() *LinearModel { return m }

func init() {
	if err := RegisterStatsMethods(defaultRegistry); err != nil {
		panic(fmt.Sprintf("dispatch: registering stats methods: %v", err))
	}
}

// NewStatsRegistry returns a registry holding only the summary and rss
// generics, independent of the process-wide one.
func NewStatsRegistry() *Registry {
	r := NewRegistry()
	if err := RegisterStatsMethods(r); err != nil {
		panic(fmt.Sprintf("dispatch: registering stats methods: %v", err))
	}
	return r
}

// RegisterStatsMethods installs the summary and rss generics into r.
func RegisterStatsMethods(r *Registry) error {
	bindings := []struct {
		method Method
		class  Class
		impl   Impl
	}{
		{MethodSummary, ClassNumeric, summaryNumeric},
		{MethodSummary, ClassDataFrame, summaryFrame},
		{MethodSummary, ClassLM, summaryLM(r)},
		{MethodSummary, ClassGLM, summaryGLM(r)},
		{MethodRSS, ClassLM, rssLM},
		{MethodRSS, ClassRPart, rssRPart},
	}
	for _, b := range bindings {
		if err := r.Register(b.method, b.class, b.impl); err != nil {
			return err
		}
	}

	if err := r.RegisterDefault(MethodSummary, WarnDefault(MethodSummary, r.logger, nil)); err != nil {
		return err
	}
	return r.RegisterDefault(MethodRSS, WarnDefault(MethodRSS, r.logger, math.NaN()))
}

// RSS returns the residual sum of squares of a fitted model through the
// process-wide registry. Unknown model classes give NaN and a warning.
func RSS(x Classed) (float64, error) {
	return NewGeneric[float64](defaultRegistry, MethodRSS).Call(x)
}

func summaryNumeric(x Classed, _ ...any) (any, error) {
	v, ok := x.(Vector)
	if !ok {
		return nil, fmt.Errorf("summary.numeric: unsupported value %T", x)
	}
	return Summarize(v), nil
}

func summaryFrame(x Classed, _ ...any) (any, error) {
	f, ok := x.(Frame)
	if !ok {
		return nil, fmt.Errorf("summary.data.frame: unsupported value %T", x)
	}
	out := FrameSummary{Rows: f.Rows(), Columns: make([]ColumnSummary, len(f.Columns))}
	for i, c := range f.Columns {
		out.Columns[i] = ColumnSummary{Name: c.Name, Summary: Summarize(c.Values)}
	}
	return out, nil
}

func summaryLM(r *Registry) Impl {
	return func(x Classed, _ ...any) (any, error) {
		lf, ok := x.(linearFit)
		if !ok {
			return nil, fmt.Errorf("summary.lm: unsupported value %T", x)
		}
		m := lf.linear()

		rss, err := NewGeneric[float64](r, MethodRSS).Call(x)
		if err != nil {
			return nil, fmt.Errorf("summary.lm: %w", err)
		}

		return ModelSummary{
			Class:     ClassLM,
			Intercept: m.Intercept,
			Slope:     m.Slope,
			RSquared:  m.RSquared,
			RSS:       rss,
			Residuals: Summarize(m.Residuals),
		}, nil
	}
}

func summaryGLM(r *Registry) Impl {
	return func(x Classed, _ ...any) (any, error) {
		g, ok := x.(*GeneralizedModel)
		if !ok {
			return nil, fmt.Errorf("summary.glm: unsupported value %T", x)
		}

		s, err := NewGeneric[ModelSummary](r, MethodSummary).Next(x, ClassGLM)
		if err != nil {
			return nil, err
		}
		s.Class = ClassGLM
		s.Family = g.Family
		s.Link = g.Link
		s.Deviance = g.Deviance
		s.NullDeviance = g.NullDev
		s.Iterations = g.Iterations
		return s, nil
	}
}

func rssLM(x Classed, _ ...any) (any, error) {
	lf, ok := x.(linearFit)
	if !ok {
		return nil, fmt.Errorf("rss.lm: unsupported value %T", x)
	}
	var rss float64
	for _, e := range lf.linear().Residuals {
		rss += e * e
	}
	return rss, nil
}

func rssRPart(x Classed, _ ...any) (any, error) {
	m, ok := x.(*TreeModel)
	if !ok {
		return nil, fmt.Errorf("rss.rpart: unsupported value %T", x)
	}
	var rss float64
	for _, leaf := range m.Leaves() {
		rss += leaf.Deviance
	}
	return rss, nil
}
