package dispatch

import (
	"fmt"
	"sort"
)

// TreeConfig bounds regression tree growth.
type TreeConfig struct {
	MaxDepth int // Maximum number of splits from root to leaf
	MinLeaf  int // Minimum observations per leaf
}

// DefaultTreeConfig returns sensible defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth: 4,
		MinLeaf:  5,
	}
}

// TreeNode is a node of a regression tree. Leaves have nil children.
type TreeNode struct {
	Split    float64 // x < Split goes Left
	Left     *TreeNode
	Right    *TreeNode
	N        int
	Mean     float64
	Deviance float64 // Σ(y - Mean)² within the node
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// TreeModel is a regression tree over one predictor.
type TreeModel struct {
	Root   *TreeNode
	Config TreeConfig
}

// Classes implements Classed.
func (*TreeModel) Classes() []Class { return []Class{ClassRPart} }

// Predict returns the mean of the leaf x falls in.
func (m *TreeModel) Predict(x float64) float64 {
	n := m.Root
	for !n.IsLeaf() {
		if x < n.Split {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Mean
}

// Leaves returns the leaves left to right.
func (m *TreeModel) Leaves() []*TreeNode {
	var out []*TreeNode
	var walk func(*TreeNode)
	walk = func(n *TreeNode) {
		if n.IsLeaf() {
			out = append(out, n)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(m.Root)
	return out
}

// FitTree grows a regression tree by recursive binary splits on x that
// minimize the summed deviance of the two children.
func FitTree(x, y []float64, cfg TreeConfig) (*TreeModel, error) {
	if err := checkXY(x, y); err != nil {
		return nil, err
	}
	if cfg.MinLeaf < 1 {
		cfg.MinLeaf = 1
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", cfg.MaxDepth)
	}

	pts := make([]point, len(x))
	for i := range x {
		pts[i] = point{x: x[i], y: y[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	return &TreeModel{Root: grow(pts, 0, cfg), Config: cfg}, nil
}

type point struct{ x, y float64 }

func grow(pts []point, depth int, cfg TreeConfig) *TreeNode {
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.y
	}
	dev, mean := sumSquares(ys)
	node := &TreeNode{N: len(pts), Mean: mean, Deviance: dev}

	if depth >= cfg.MaxDepth || len(pts) < 2*cfg.MinLeaf || dev == 0 {
		return node
	}

	// Prefix sums make each candidate split O(1)
	n := len(pts)
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, p := range pts {
		prefix[i+1] = prefix[i] + p.y
		prefixSq[i+1] = prefixSq[i] + p.y*p.y
	}
	segDev := func(lo, hi int) float64 {
		cnt := float64(hi - lo)
		s := prefix[hi] - prefix[lo]
		return (prefixSq[hi] - prefixSq[lo]) - s*s/cnt
	}

	best, bestDev := -1, dev
	for i := cfg.MinLeaf; i <= n-cfg.MinLeaf; i++ {
		if pts[i-1].x == pts[i].x {
			continue // Cannot separate tied x values
		}
		d := segDev(0, i) + segDev(i, n)
		if d < bestDev-1e-12 {
			best, bestDev = i, d
		}
	}
	if best < 0 {
		return node
	}

	node.Split = (pts[best-1].x + pts[best].x) / 2
	node.Left = grow(pts[:best], depth+1, cfg)
	node.Right = grow(pts[best:], depth+1, cfg)
	return node
}
