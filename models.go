package dispatch

import "fmt"

// Classes used by the statistical generics.
const (
	ClassNumeric   Class = "numeric"
	ClassDataFrame Class = "data.frame"
	ClassList      Class = "list"
	ClassLM        Class = "lm"
	ClassGLM       Class = "glm"
	ClassRPart     Class = "rpart"
)

// Vector is a plain numeric sample.
type Vector []float64

// Classes implements Classed.
func (Vector) Classes() []Class { return []Class{ClassNumeric} }

// Column is one named column of a Frame.
type Column struct {
	Name   string
	Values []float64
}

// Frame is a table of equal-length numeric columns, kept in insertion order.
type Frame struct {
	Columns []Column
}

// Classes implements Classed. A frame is also a list of columns.
func (Frame) Classes() []Class { return []Class{ClassDataFrame, ClassList} }

// Rows returns the number of rows (0 for a frame without columns).
func (f Frame) Rows() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

// Column returns the values of the named column.
func (f Frame) Column(name string) ([]float64, error) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c.Values, nil
		}
	}
	return nil, fmt.Errorf("column %q not found", name)
}

// Names returns column names in order.
func (f Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		names[i] = c.Name
	}
	return names
}
