/*package synth generates analytic magnetic and electric fields and samples
them onto grids. Synthetic maps stand in for measured or simulated field
maps when testing interpolation and when no loader is available.
*/
package synth

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/array"
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/interpolate"
	"github.com/phil-mansfield/fieldmap/vec"
)

// Mu0 is the vacuum permeability in T m / A.
const Mu0 = 4e-7 * math.Pi

// ErrGenerator is returned (wrapped) when a generator can't be built from a
// name and parameters.
var ErrGenerator = errors.New("invalid generator")

// Generator is an analytic vector field of position and time.
type Generator func(p r3.Vec, t float64) vec.Vec3

// Uniform returns a constant field.
func Uniform(v vec.Vec3) Generator {
	return func(r3.Vec, float64) vec.Vec3 { return v }
}

// Quadrupole returns the field of an ideal quadrupole lens with gradient g
// in T/m: B = g (y, x, 0).
func Quadrupole(g float64) Generator {
	return func(p r3.Vec, _ float64) vec.Vec3 {
		return vec.Vec3{X: g * p.Y, Y: g * p.X}
	}
}

// Dipole returns the field of a point magnetic dipole with moment m in
// A m^2 at the origin. The field at the origin itself is zero.
func Dipole(m vec.Vec3) Generator {
	mr := m.R3()
	return func(p r3.Vec, _ float64) vec.Vec3 {
		r := r3.Norm(p)
		if r == 0 {
			return vec.Vec3{}
		}
		u := r3.Scale(1/r, p)
		b := r3.Sub(r3.Scale(3*r3.Dot(mr, u), u), mr)
		return vec.FromR3(r3.Scale(Mu0/(4*math.Pi*r*r*r), b))
	}
}

// Solenoid returns the field of a current loop in the x-y plane with radius
// a whose on-axis field at the center is b0. Off-axis components use the
// paraxial expansion B_r = -(r/2) dBz/dz, which keeps the field
// divergence-free.
func Solenoid(b0, a float64) Generator {
	return func(p r3.Vec, _ float64) vec.Vec3 {
		u := 1 + (p.Z/a)*(p.Z/a)
		bz := b0 / math.Pow(u, 1.5)
		dbz := -3 * b0 * p.Z / (a * a) / math.Pow(u, 2.5)
		return vec.Vec3{X: -p.X / 2 * dbz, Y: -p.Y / 2 * dbz, Z: bz}
	}
}

// Modulated multiplies g by cos(omega t + phase).
func Modulated(g Generator, omega, phase float64) Generator {
	return func(p r3.Vec, t float64) vec.Vec3 {
		return g(p, t).Scale(math.Cos(omega*t + phase))
	}
}

// Sum adds generators together.
func Sum(gs ...Generator) Generator {
	return func(p r3.Vec, t float64) vec.Vec3 {
		out := vec.Vec3{}
		for _, g := range gs {
			out = out.Add(g(p, t))
		}
		return out
	}
}

// params lists the parameters each named generator accepts. Every
// generator also accepts Omega and Phase, which wrap it in Modulated.
var params = map[string][]string{
	"uniform":    {"X", "Y", "Z"},
	"quadrupole": {"Gradient"},
	"dipole":     {"X", "Y", "Z"},
	"solenoid":   {"B0", "Radius"},
}

// Names returns the names accepted by Lookup in sorted order.
func Names() []string {
	out := make([]string, 0, len(params))
	for name := range params {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup builds a generator from its name and a set of named parameters.
// Missing parameters are zero, except Radius, which must be given.
func Lookup(name string, p map[string]float64) (Generator, error) {
	name = strings.ToLower(name)
	known, ok := params[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' isn't one of %s", ErrGenerator,
			name, strings.Join(Names(), ", "))
	}

	for key := range p {
		if key == "Omega" || key == "Phase" {
			continue
		}
		found := false
		for _, k := range known {
			found = found || k == key
		}
		if !found {
			return nil, fmt.Errorf("%w: %s doesn't take the parameter %s, "+
				"only %s", ErrGenerator, name, key, strings.Join(known, ", "))
		}
	}

	var g Generator
	switch name {
	case "uniform":
		g = Uniform(vec.Vec3{X: p["X"], Y: p["Y"], Z: p["Z"]})
	case "quadrupole":
		g = Quadrupole(p["Gradient"])
	case "dipole":
		g = Dipole(vec.Vec3{X: p["X"], Y: p["Y"], Z: p["Z"]})
	case "solenoid":
		if !(p["Radius"] > 0) {
			return nil, fmt.Errorf("%w: solenoid Radius = %g must be positive",
				ErrGenerator, p["Radius"])
		}
		g = Solenoid(p["B0"], p["Radius"])
	}

	if omega, ok := p["Omega"]; ok {
		g = Modulated(g, omega, p["Phase"])
	}
	return g, nil
}

// point converts grid coordinates to a position and time using the axis
// binding coords.
func point(coords []interpolate.Coord, c [grid.MaxDims]float64) (r3.Vec, float64) {
	var q [grid.MaxDims]float64
	for d, cd := range coords {
		q[cd] = c[d]
	}
	return r3.Vec{X: q[0], Y: q[1], Z: q[2]}, q[3]
}

// Sample evaluates g at every point of a grid. Axes are bound to positions
// and time the same way an interpolator created with opts would bind them,
// so sampling and interpolating with the same options reproduces g at the
// grid points.
func Sample(
	g Generator, axes []grid.Axis, opts ...interpolate.Option,
) (*array.Array[vec.Vec3], error) {
	coords, err := interpolate.Bind(len(axes), opts...)
	if err != nil {
		return nil, err
	}
	return array.FromFunc(axes,
		func(_ array.Index, c [grid.MaxDims]float64) vec.Vec3 {
			p, t := point(coords, c)
			return g(p, t)
		})
}

// SampleEM evaluates an electric and a magnetic generator at every point of
// a grid and stores them as paired samples.
func SampleEM(
	e, b Generator, axes []grid.Axis, opts ...interpolate.Option,
) (*array.Array[vec.EM], error) {
	coords, err := interpolate.Bind(len(axes), opts...)
	if err != nil {
		return nil, err
	}
	return array.FromFunc(axes,
		func(_ array.Index, c [grid.MaxDims]float64) vec.EM {
			p, t := point(coords, c)
			return vec.EM{E: e(p, t), B: b(p, t)}
		})
}
