package dump

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
)

// Component selects which field a Slice shows.
type Component int

const (
	Magnetic Component = iota
	Electric
)

// ParseComponent converts "B" or "E" into a Component.
func ParseComponent(s string) (Component, error) {
	switch s {
	case "B", "b":
		return Magnetic, nil
	case "E", "e":
		return Electric, nil
	}
	return 0, fmt.Errorf("%w: I don't recognize the field component '%s'",
		ErrSpec, s)
}

func (c Component) String() string {
	if c == Electric {
		return "E"
	}
	return "B"
}

// Slice is a regular x-y grid at a fixed z and t.
type Slice struct {
	Min, Max  [2]float64
	N         [2]int
	Z, T      float64
	Component Component
}

// Spec returns the sampling grid covered by the slice.
func (s *Slice) Spec() Spec {
	return Spec{
		Min: [4]float64{s.Min[0], s.Min[1], s.Z, s.T},
		Max: [4]float64{s.Max[0], s.Max[1], s.Z, s.T},
		N:   [4]int{s.N[0], s.N[1], 1, 1},
	}
}

// normGrid is the magnitude of a field over a slice. It implements
// plotter.GridXYZ.
type normGrid struct {
	spec Spec
	z    []float64
}

var _ plotter.GridXYZ = &normGrid{}

func (g *normGrid) Dims() (c, r int)   { return g.spec.N[0], g.spec.N[1] }
func (g *normGrid) Z(c, r int) float64 { return g.z[c+r*g.spec.N[0]] }
func (g *normGrid) X(c int) float64    { return g.spec.Coord(0, c) }
func (g *normGrid) Y(r int) float64    { return g.spec.Coord(1, r) }

func (g *normGrid) minMax() (lo, hi float64) {
	lo, hi = math.Inf(+1), math.Inf(-1)
	for _, z := range g.z {
		lo, hi = math.Min(lo, z), math.Max(hi, z)
	}
	return lo, hi
}

func sampleNorm(f Sampler, s *Slice) (*normGrid, error) {
	if s.N[0] < 2 || s.N[1] < 2 {
		return nil, fmt.Errorf("%w: slices need at least 2 points on each "+
			"axis, not %d x %d", ErrSpec, s.N[0], s.N[1])
	}
	spec := s.Spec()
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	g := &normGrid{spec: spec, z: make([]float64, s.N[0]*s.N[1])}
	for r := 0; r < s.N[1]; r++ {
		for c := 0; c < s.N[0]; c++ {
			p := r3.Vec{X: g.X(c), Y: g.Y(r), Z: s.Z}
			b, e := f.Sample(p, s.T)
			if s.Component == Electric {
				g.z[c+r*s.N[0]] = e.Norm()
			} else {
				g.z[c+r*s.N[0]] = b.Norm()
			}
		}
	}
	return g, nil
}

// Plot creates a heat map of the magnitude of a field over a slice.
func Plot(f Sampler, s Slice, title string) (*plot.Plot, error) {
	g, err := sampleNorm(f, &s)
	if err != nil {
		return nil, err
	}

	h := plotter.NewHeatMap(g, palette.Heat(64, 1))
	h.Min, h.Max = g.minMax()
	if h.Min == h.Max {
		h.Max = h.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(h)
	return p, nil
}
