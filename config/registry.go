package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/array"
	"github.com/phil-mansfield/fieldmap/field"
	"github.com/phil-mansfield/fieldmap/interpolate"
	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/synth"
	"github.com/phil-mansfield/fieldmap/vec"
)

// Loader materializes the samples of a field map. The arrays it returns
// must cover fc.GridAxes() with axes bound by opts.
type Loader interface {
	// Magnetic returns the samples of a magnetic field map.
	Magnetic(fc *Field, opts ...interpolate.Option) (*array.Array[vec.Vec3], error)
	// ElectroMagnetic returns the paired samples of an electromagnetic
	// field map.
	ElectroMagnetic(fc *Field, opts ...interpolate.Option) (*array.Array[vec.EM], error)
}

// SynthLoader samples the analytic generators in package synth.
type SynthLoader struct{}

var _ Loader = SynthLoader{}

func (SynthLoader) Magnetic(
	fc *Field, opts ...interpolate.Option,
) (*array.Array[vec.Vec3], error) {
	b, err := synth.Lookup(fc.Source.Generator, fc.Source.Params)
	if err != nil {
		return nil, err
	}
	return synth.Sample(b, fc.GridAxes(), opts...)
}

func (SynthLoader) ElectroMagnetic(
	fc *Field, opts ...interpolate.Option,
) (*array.Array[vec.EM], error) {
	b, err := synth.Lookup(fc.Source.Generator, fc.Source.Params)
	if err != nil {
		return nil, err
	}
	e, err := synth.Lookup(fc.Electric.Generator, fc.Electric.Params)
	if err != nil {
		return nil, err
	}
	return synth.SampleEM(e, b, fc.GridAxes(), opts...)
}

// Entry is a built field along with the definition it was built from.
type Entry struct {
	Config *Field
	Field  field.Field
}

// Registry holds every field in a definition file.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry validates f and builds all of its fields with loader.
func NewRegistry(f *File, loader Loader) (*Registry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{index: map[string]int{}}
	for i := range f.Field {
		fc := &f.Field[i]
		fd, err := build(fc, loader)
		if err != nil {
			return nil, fmt.Errorf("I couldn't build field '%s': %w", fc.Name, err)
		}
		r.index[fc.Name] = len(r.entries)
		r.entries = append(r.entries, Entry{Config: fc, Field: fd})
	}

	logging.Log.WithFields(logrus.Fields{
		"fields": len(r.entries),
	}).Debug("Built field registry.")

	return r, nil
}

// Load reads a definition file and builds its fields.
func Load(fname string, loader Loader) (*Registry, error) {
	f, err := Read(fname)
	if err != nil {
		return nil, err
	}
	return NewRegistry(f, loader)
}

// Names returns the names of the fields in file order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i := range r.entries {
		out[i] = r.entries[i].Config.Name
	}
	return out
}

// Get returns the named field.
func (r *Registry) Get(name string) (Entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Entries returns every field in file order.
func (r *Registry) Entries() []Entry {
	return append([]Entry{}, r.entries...)
}

// Sample returns the superposition of every field at a global position
// and time, with each field rotated into the global frame.
func (r *Registry) Sample(pos r3.Vec, t float64) (b, e vec.Vec3) {
	for i := range r.entries {
		fd := r.entries[i].Field
		bi, ei := fd.Sample(pos, t)
		b = b.Add(fd.Frame().VecToGlobal(bi))
		e = e.Add(fd.Frame().VecToGlobal(ei))
	}
	return b, e
}

// FieldOptions returns the adapter options set by the field's variables.
func (fc *Field) FieldOptions() field.Options {
	opts := field.DefaultOptions()
	for _, s := range []struct {
		src *float64
		dst *float64
	}{{fc.Scale, &opts.Scale}, {fc.EScale, &opts.EScale}, {fc.BScale, &opts.BScale}} {
		if s.src != nil {
			*s.dst = *s.src
		}
	}
	opts.Static, opts.StaticTime = fc.Static, fc.StaticTime

	off := r3.Vec{X: fc.Offset[0], Y: fc.Offset[1], Z: fc.Offset[2]}
	if fc.Euler == [3]float64{} {
		opts.Frame = field.Frame{Offset: off}
	} else {
		opts.Frame = field.EulerFrame(off, fc.Euler[0], fc.Euler[1], fc.Euler[2])
	}
	return opts
}

func build(fc *Field, loader Loader) (field.Field, error) {
	kind, err := fc.Kind()
	if err != nil {
		return nil, err
	}
	bind := fc.BindOptions()
	coords, err := interpolate.Bind(len(fc.Axes), bind...)
	if err != nil {
		return nil, err
	}

	if fc.Type == TypeMagnetic {
		a, err := loader.Magnetic(fc, bind...)
		if err != nil {
			return nil, err
		}
		var src array.Source[vec.Vec3] = a
		for _, m := range fc.Mirror {
			src = array.Mirror[vec.Vec3](src, m, vec.MagneticParity(int(coords[m])))
		}
		in, err := interpolate.New(src, kind, bind...)
		if err != nil {
			return nil, err
		}
		m, err := field.NewMagnetic(in, fc.FieldOptions())
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	a, err := loader.ElectroMagnetic(fc, bind...)
	if err != nil {
		return nil, err
	}
	var src array.Source[vec.EM] = a
	for _, m := range fc.Mirror {
		c := int(coords[m])
		flip := vec.EMMask(vec.ElectricParity(c), vec.MagneticParity(c))
		src = array.Mirror[vec.EM](src, m, flip)
	}
	in, err := interpolate.New(src, kind, bind...)
	if err != nil {
		return nil, err
	}
	em, err := field.NewPairedElectroMagnetic(in, fc.FieldOptions())
	if err != nil {
		return nil, err
	}
	return em, nil
}
