package dispatch

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingularDesign is returned when the predictor has no variance.
var ErrSingularDesign = errors.New("singular design: predictor is constant")

// LinearModel is an ordinary least squares fit y = b0 + b1·x.
type LinearModel struct {
	Intercept float64
	Slope     float64
	RSquared  float64 // R²: Goodness of fit (1.0 = perfect)

	X         []float64
	Y         []float64
	Fitted    []float64
	Residuals []float64 // y - fitted
}

// Classes implements Classed.
func (*LinearModel) Classes() []Class { return []Class{ClassLM} }

// Predict returns the fitted value at x.
func (m *LinearModel) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// FitLinear fits y on x by least squares.
//
// Normal equations for Y = b0 + b1·X:
//
//	[n     ΣX ] [b0]   [ΣY ]
//	[ΣX   ΣX² ] [b1] = [ΣXY]
//
// solved with Cramer's rule.
func FitLinear(x, y []float64) (*LinearModel, error) {
	if err := checkXY(x, y); err != nil {
		return nil, err
	}
	b0, b1, err := solveWeighted(x, y, nil)
	if err != nil {
		return nil, err
	}

	m := &LinearModel{
		Intercept: b0,
		Slope:     b1,
		X:         append([]float64(nil), x...),
		Y:         append([]float64(nil), y...),
	}
	m.Fitted = make([]float64, len(x))
	for i := range x {
		m.Fitted[i] = m.Predict(x[i])
	}
	m.Residuals = residuals(y, m.Fitted)
	m.RSquared = rSquared(y, m.Residuals)
	return m, nil
}

// GeneralizedModel is a Poisson regression with log link:
// log E[y] = b0 + b1·x. The embedded LinearModel carries the linear
// predictor coefficients; its Fitted values are the means and Residuals are
// response residuals y - μ.
type GeneralizedModel struct {
	*LinearModel
	Family     string
	Link       string
	Deviance   float64
	NullDev    float64
	Iterations int
}

// Classes implements Classed. A glm is also an lm.
func (*GeneralizedModel) Classes() []Class { return []Class{ClassGLM, ClassLM} }

// Predict returns the expected response at x.
func (m *GeneralizedModel) Predict(x float64) float64 {
	return math.Exp(m.Intercept + m.Slope*x)
}

const (
	irlsMaxIter   = 25
	irlsTolerance = 1e-8
)

// FitPoisson fits a Poisson GLM by iteratively reweighted least squares.
func FitPoisson(x, y []float64) (*GeneralizedModel, error) {
	if err := checkXY(x, y); err != nil {
		return nil, err
	}
	for i, v := range y {
		if v < 0 {
			return nil, fmt.Errorf("poisson response must be non-negative, y[%d] = %g", i, v)
		}
	}

	n := len(y)
	mu := make([]float64, n)
	eta := make([]float64, n)
	for i, v := range y {
		mu[i] = v + 0.1 // Keep log finite for zero counts
		eta[i] = math.Log(mu[i])
	}

	var (
		b0, b1 float64
		dev    = poissonDeviance(y, mu)
		iter   int
	)
	z := make([]float64, n)
	w := make([]float64, n)

	for iter = 1; iter <= irlsMaxIter; iter++ {
		for i := range y {
			z[i] = eta[i] + (y[i]-mu[i])/mu[i]
			w[i] = mu[i]
		}
		var err error
		b0, b1, err = solveWeighted(x, z, w)
		if err != nil {
			return nil, fmt.Errorf("irls iteration %d: %w", iter, err)
		}
		for i := range x {
			eta[i] = b0 + b1*x[i]
			mu[i] = math.Exp(eta[i])
		}

		newDev := poissonDeviance(y, mu)
		if math.Abs(newDev-dev)/(math.Abs(newDev)+0.1) < irlsTolerance {
			dev = newDev
			break
		}
		dev = newDev
	}
	if iter > irlsMaxIter {
		iter = irlsMaxIter
	}

	_, mean := sumSquares(y)
	null := make([]float64, n)
	for i := range null {
		null[i] = mean
	}

	lm := &LinearModel{
		Intercept: b0,
		Slope:     b1,
		X:         append([]float64(nil), x...),
		Y:         append([]float64(nil), y...),
		Fitted:    mu,
		Residuals: residuals(y, mu),
	}
	lm.RSquared = rSquared(y, lm.Residuals)

	return &GeneralizedModel{
		LinearModel: lm,
		Family:      "poisson",
		Link:        "log",
		Deviance:    dev,
		NullDev:     poissonDeviance(y, null),
		Iterations:  iter,
	}, nil
}

// solveWeighted solves the (optionally weighted) 2x2 least squares system.
// A nil w means unit weights.
func solveWeighted(x, y, w []float64) (b0, b1 float64, err error) {
	var sumW, sumX, sumY, sumXX, sumXY float64
	for i := range x {
		wi := 1.0
		if w != nil {
			wi = w[i]
		}
		sumW += wi
		sumX += wi * x[i]
		sumY += wi * y[i]
		sumXX += wi * x[i] * x[i]
		sumXY += wi * x[i] * y[i]
	}

	det := sumW*sumXX - sumX*sumX
	if math.Abs(det) < 1e-10*math.Max(1, sumW*sumXX) {
		return 0, 0, ErrSingularDesign
	}

	b0 = (sumY*sumXX - sumX*sumXY) / det
	b1 = (sumW*sumXY - sumX*sumY) / det
	return b0, b1, nil
}

func checkXY(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("x and y differ in length: %d != %d", len(x), len(y))
	}
	if len(x) < 3 {
		return fmt.Errorf("need at least 3 data points, got %d", len(x))
	}
	return nil
}

func residuals(y, fitted []float64) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] - fitted[i]
	}
	return out
}

// rSquared returns 1 - SSres/SStot (0 when y is constant).
func rSquared(y, res []float64) float64 {
	ssTot, _ := sumSquares(y)
	if ssTot == 0 {
		return 0
	}
	var ssRes float64
	for _, r := range res {
		ssRes += r * r
	}
	return 1 - ssRes/ssTot
}

// poissonDeviance is 2·Σ[y·log(y/μ) - (y-μ)], with y·log(y/μ) = 0 at y = 0.
func poissonDeviance(y, mu []float64) float64 {
	var dev float64
	for i := range y {
		if y[i] > 0 {
			dev += y[i] * math.Log(y[i]/mu[i])
		}
		dev -= y[i] - mu[i]
	}
	return 2 * dev
}
