package dispatch

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed datasets/cars.yaml
var carsYAML []byte

// ErrInvalidFrame is returned when a dataset cannot form a Frame.
var ErrInvalidFrame = errors.New("invalid frame")

// frameDoc is the YAML layout of a dataset file:
//
//	name: cars
//	columns:
//	  - name: speed
//	    values: [4, 4, 7]
type frameDoc struct {
	Name    string `yaml:"name"`
	Columns []struct {
		Name   string    `yaml:"name"`
		Values []float64 `yaml:"values"`
	} `yaml:"columns"`
}

// LoadFrame decodes a YAML dataset. Columns must be named, unique, non-empty
// and of equal length.
func LoadFrame(r io.Reader) (Frame, error) {
	var doc frameDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Frame{}, fmt.Errorf("decode dataset: %w", err)
	}
	if len(doc.Columns) == 0 {
		return Frame{}, fmt.Errorf("dataset %q has no columns: %w", doc.Name, ErrInvalidFrame)
	}

	seen := make(map[string]bool, len(doc.Columns))
	rows := len(doc.Columns[0].Values)
	f := Frame{Columns: make([]Column, 0, len(doc.Columns))}
	for i, c := range doc.Columns {
		switch {
		case c.Name == "":
			return Frame{}, fmt.Errorf("column %d has no name: %w", i, ErrInvalidFrame)
		case seen[c.Name]:
			return Frame{}, fmt.Errorf("duplicate column %q: %w", c.Name, ErrInvalidFrame)
		case len(c.Values) == 0:
			return Frame{}, fmt.Errorf("column %q is empty: %w", c.Name, ErrInvalidFrame)
		case len(c.Values) != rows:
			return Frame{}, fmt.Errorf("column %q has %d rows, want %d: %w",
				c.Name, len(c.Values), rows, ErrInvalidFrame)
		}
		seen[c.Name] = true
		f.Columns = append(f.Columns, Column{Name: c.Name, Values: c.Values})
	}
	return f, nil
}

// LoadFrameFile reads a YAML dataset from path.
func LoadFrameFile(path string) (Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer fh.Close()
	return LoadFrame(fh)
}

// Cars returns the classic speed / stopping distance dataset (50 rows).
func Cars() Frame {
	f, err := LoadFrame(bytes.NewReader(carsYAML))
	if err != nil {
		panic(fmt.Sprintf("dispatch: embedded cars dataset: %v", err))
	}
	return f
}
