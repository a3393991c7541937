/*package field wraps interpolators into the field-at-a-point queries a
trajectory integrator makes: a global position and time go in, the field
map's local frame is applied, the bound interpolators are evaluated, and
the result is scaled.

Adapters never bounds check. A query outside of the map returns the zero
field because the underlying arrays do.
*/
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/interpolate"
	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/vec"
)

// ErrOptions is returned (wrapped) when an adapter can't be built from the
// interpolators and Options it was given.
var ErrOptions = errors.New("invalid field options")

// Field is the query interface shared by every adapter. Fields which have
// no electric component return a zero e.
type Field interface {
	// Sample returns the local-frame fields at a global position and time.
	Sample(pos r3.Vec, t float64) (b, e vec.Vec3)
	// Frame returns the local frame of the field map.
	Frame() Frame
	// Dims returns the number of axes of the underlying field map.
	Dims() int
}

var (
	_ Field = &Magnetic{}
	_ Field = &ElectroMagnetic{}
)

// Options configures an adapter.
type Options struct {
	// Frame maps global positions into the field map's coordinates.
	Frame Frame
	// Scale multiplies every returned field. BScale additionally multiplies
	// magnetic fields and EScale electric fields.
	Scale, EScale, BScale float64
	// Static fixes the time passed to the interpolators at StaticTime.
	Static     bool
	StaticTime float64
}

// DefaultOptions returns Options with an identity frame and unit scales.
func DefaultOptions() Options {
	return Options{Scale: 1, EScale: 1, BScale: 1}
}

func (o *Options) validate() error {
	scales := []struct {
		name string
		val  float64
	}{{"Scale", o.Scale}, {"EScale", o.EScale}, {"BScale", o.BScale}}
	for _, s := range scales {
		if s.val == 0 || math.IsNaN(s.val) || math.IsInf(s.val, 0) {
			return fmt.Errorf("%w: %s = %g, but scales must be finite and "+
				"non-zero", ErrOptions, s.name, s.val)
		}
	}
	if o.Static && (math.IsNaN(o.StaticTime) || math.IsInf(o.StaticTime, 0)) {
		return fmt.Errorf("%w: StaticTime = %g isn't finite",
			ErrOptions, o.StaticTime)
	}
	return o.Frame.Validate()
}

// time returns the time the interpolators should be evaluated at.
func (o *Options) time(t float64) float64 {
	if o.Static {
		return o.StaticTime
	}
	return t
}

// Magnetic is a magnetic field map.
type Magnetic struct {
	interp interpolate.Interpolator[vec.Vec3]
	opts   Options
	scale  float64
}

// NewMagnetic binds an interpolator to a frame and scale factors.
func NewMagnetic(
	in interpolate.Interpolator[vec.Vec3], opts Options,
) (*Magnetic, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: no magnetic interpolator", ErrOptions)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logging.Log.WithFields(logrus.Fields{
		"kind":   in.Kind().String(),
		"dims":   in.Dims(),
		"static": opts.Static,
	}).Debug("Built magnetic field.")

	return &Magnetic{interp: in, opts: opts, scale: opts.Scale * opts.BScale}, nil
}

// GetField returns the magnetic field at a global position and time in the
// field map's local frame.
func (m *Magnetic) GetField(pos r3.Vec, t float64) vec.Vec3 {
	p := m.opts.Frame.ToLocal(pos)
	return m.interp.Eval(p.X, p.Y, p.Z, m.opts.time(t)).Scale(m.scale)
}

// GetFieldGlobal returns the magnetic field at a global position and time
// in the global frame.
func (m *Magnetic) GetFieldGlobal(pos r3.Vec, t float64) vec.Vec3 {
	return m.opts.Frame.VecToGlobal(m.GetField(pos, t))
}

func (m *Magnetic) Sample(pos r3.Vec, t float64) (b, e vec.Vec3) {
	return m.GetField(pos, t), vec.Vec3{}
}

func (m *Magnetic) Frame() Frame { return m.opts.Frame }

func (m *Magnetic) Dims() int { return m.interp.Dims() }

// Options returns the options the field was built with.
func (m *Magnetic) Options() Options { return m.opts }

// Interpolator returns the bound interpolator.
func (m *Magnetic) Interpolator() interpolate.Interpolator[vec.Vec3] {
	return m.interp
}

// Variant distinguishes electromagnetic maps which vary only in space from
// those which also vary in time.
type Variant int

const (
	EM3D Variant = 3
	EM4D Variant = 4
)

func (v Variant) String() string {
	switch v {
	case EM3D:
		return "EM3D"
	case EM4D:
		return "EM4D"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ElectroMagnetic is a paired electric and magnetic field map. The fields
// either come from two interpolators or from one interpolator over
// vec.EM samples.
type ElectroMagnetic struct {
	e, b    interpolate.Interpolator[vec.Vec3]
	pair    interpolate.Interpolator[vec.EM]
	opts    Options
	variant Variant
	eScale  float64
	bScale  float64
}

func emVariant(dims ...int) (Variant, error) {
	for _, d := range dims {
		if d != dims[0] {
			return 0, fmt.Errorf("%w: electric map has %d axes, but magnetic "+
				"map has %d", ErrOptions, dims[0], d)
		}
	}
	switch dims[0] {
	case 3:
		return EM3D, nil
	case 4:
		return EM4D, nil
	}
	return 0, fmt.Errorf("%w: electromagnetic maps need 3 or 4 axes, not %d",
		ErrOptions, dims[0])
}

// NewElectroMagnetic binds an electric and a magnetic interpolator of the
// same dimensionality to a frame and scale factors.
func NewElectroMagnetic(
	e, b interpolate.Interpolator[vec.Vec3], opts Options,
) (*ElectroMagnetic, error) {
	if e == nil || b == nil {
		return nil, fmt.Errorf("%w: electromagnetic fields need both an "+
			"electric and a magnetic interpolator", ErrOptions)
	}
	variant, err := emVariant(e.Dims(), b.Dims())
	if err != nil {
		return nil, err
	}
	return newElectroMagnetic(&ElectroMagnetic{e: e, b: b, variant: variant}, opts)
}

// NewPairedElectroMagnetic binds an interpolator over paired samples to a
// frame and scale factors.
func NewPairedElectroMagnetic(
	in interpolate.Interpolator[vec.EM], opts Options,
) (*ElectroMagnetic, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: no electromagnetic interpolator", ErrOptions)
	}
	variant, err := emVariant(in.Dims())
	if err != nil {
		return nil, err
	}
	return newElectroMagnetic(&ElectroMagnetic{pair: in, variant: variant}, opts)
}

func newElectroMagnetic(em *ElectroMagnetic, opts Options) (*ElectroMagnetic, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	em.opts = opts
	em.eScale = opts.Scale * opts.EScale
	em.bScale = opts.Scale * opts.BScale

	logging.Log.WithFields(logrus.Fields{
		"variant": em.variant.String(),
		"paired":  em.pair != nil,
		"static":  opts.Static,
	}).Debug("Built electromagnetic field.")

	return em, nil
}

// GetField returns the magnetic and electric fields at a global position
// and time in the field map's local frame.
func (em *ElectroMagnetic) GetField(pos r3.Vec, t float64) (b, e vec.Vec3) {
	p := em.opts.Frame.ToLocal(pos)
	t = em.opts.time(t)
	if em.pair != nil {
		s := em.pair.Eval(p.X, p.Y, p.Z, t)
		b, e = s.B, s.E
	} else {
		b = em.b.Eval(p.X, p.Y, p.Z, t)
		e = em.e.Eval(p.X, p.Y, p.Z, t)
	}
	return b.Scale(em.bScale), e.Scale(em.eScale)
}

// GetFieldGlobal returns the magnetic and electric fields at a global
// position and time in the global frame.
func (em *ElectroMagnetic) GetFieldGlobal(pos r3.Vec, t float64) (b, e vec.Vec3) {
	b, e = em.GetField(pos, t)
	return em.opts.Frame.VecToGlobal(b), em.opts.Frame.VecToGlobal(e)
}

func (em *ElectroMagnetic) Sample(pos r3.Vec, t float64) (b, e vec.Vec3) {
	return em.GetField(pos, t)
}

func (em *ElectroMagnetic) Frame() Frame { return em.opts.Frame }

func (em *ElectroMagnetic) Dims() int { return int(em.variant) }

// Variant returns whether the map varies in time.
func (em *ElectroMagnetic) Variant() Variant { return em.variant }

// Options returns the options the field was built with.
func (em *ElectroMagnetic) Options() Options { return em.opts }

// Divergence estimates div B at a global position with central differences
// of the given step sizes. It is a diagnostic for checking that a field map
// and its symmetry operators describe a physical field.
func Divergence(f Field, p, step r3.Vec, t float64) float64 {
	frame := f.Frame()
	return r3.Divergence(p, step, func(q r3.Vec) r3.Vec {
		b, _ := f.Sample(q, t)
		return frame.VecToGlobal(b).R3()
	})
}
