/*package config reads TOML field definition files and builds the field
adapters they describe.

A field definition file has a top-level Version and one [[Field]] table per
field map. Every field is built eagerly by NewRegistry, so a Registry can be
shared between goroutines as soon as it is returned.
*/
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/interpolate"
	"github.com/phil-mansfield/fieldmap/version"
)

// ErrConfig is returned (wrapped) for every problem found in a field
// definition file.
var ErrConfig = errors.New("invalid field definition file")

const (
	TypeMagnetic        = "magnetic"
	TypeElectroMagnetic = "electromagnetic"
)

// File is the contents of a field definition file.
type File struct {
	Version string
	Field   []Field
}

// Field describes a single field map.
type Field struct {
	Name string
	// Type is "magnetic" or "electromagnetic".
	Type string
	// Interpolator is "nearest", "linear", or "cubic". Defaults to cubic.
	Interpolator string
	// TimeAxis is the index of the axis which maps to time. Unset means the
	// default binding: 4D maps end in time and smaller maps are spatial.
	TimeAxis *int

	// Scale, EScale, and BScale default to 1.
	Scale, EScale, BScale *float64
	Static                bool
	StaticTime            float64

	// Offset and Euler place the map's local frame in the global frame.
	// Euler holds z-x-z angles in radians.
	Offset [3]float64
	Euler  [3]float64

	// Mirror lists spatial axes that are reflected about their first sample
	// to extend the map.
	Mirror []int

	Axes []Axis
	// Source generates the magnetic field and Electric the electric field.
	Source   Source
	Electric Source
}

// Axis is a uniform grid axis.
type Axis struct {
	Origin, Spacing float64
	N               int
}

// Source names the generator of a field map's samples.
type Source struct {
	Generator string
	Params    map[string]float64
}

// Read reads and validates a field definition file.
func Read(fname string) (*File, error) {
	f := &File{}
	md, err := toml.DecodeFile(fname, f)
	if err != nil {
		return nil, fmt.Errorf("I couldn't parse %s: %w", fname, err)
	}
	return f, finish(f, md)
}

// Decode reads and validates a field definition file from r.
func Decode(r io.Reader) (*File, error) {
	f := &File{}
	md, err := toml.NewDecoder(r).Decode(f)
	if err != nil {
		return nil, fmt.Errorf("I couldn't parse the field definition "+
			"file: %w", err)
	}
	return f, finish(f, md)
}

func finish(f *File, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return fmt.Errorf("%w: I don't recognize the variables %s",
			ErrConfig, strings.Join(keys, ", "))
	}
	return f.Validate()
}

// Validate checks that every user-set variable in the file is usable.
func (f *File) Validate() error {
	if err := version.Compatible(f.Version); err != nil {
		return fmt.Errorf("%w: I couldn't use the 'Version' variable: %s",
			ErrConfig, err.Error())
	}
	if len(f.Field) == 0 {
		return fmt.Errorf("%w: the file doesn't contain any [[Field]] tables",
			ErrConfig)
	}

	seen := map[string]bool{}
	for i := range f.Field {
		fc := &f.Field[i]
		if fc.Name == "" {
			return fmt.Errorf("%w: the 'Name' variable of field %d isn't set",
				ErrConfig, i)
		} else if seen[fc.Name] {
			return fmt.Errorf("%w: there are two fields named '%s'",
				ErrConfig, fc.Name)
		}
		seen[fc.Name] = true

		if err := fc.validate(); err != nil {
			return fmt.Errorf("%w: field '%s': %s", ErrConfig, fc.Name, err.Error())
		}
	}
	return nil
}

func (fc *Field) validate() error {
	switch fc.Type {
	case TypeMagnetic, TypeElectroMagnetic:
	case "":
		return fmt.Errorf("the 'Type' variable isn't set")
	default:
		return fmt.Errorf("the 'Type' variable is set to '%s', which I "+
			"don't recognize", fc.Type)
	}

	if _, err := fc.Kind(); err != nil {
		return fmt.Errorf("the 'Interpolator' variable is set to '%s', "+
			"which I don't recognize", fc.Interpolator)
	}

	n := len(fc.Axes)
	if n < 1 || n > grid.MaxDims {
		return fmt.Errorf("there are %d [[Field.Axes]] tables, but there "+
			"must be between 1 and %d", n, grid.MaxDims)
	}
	if fc.Type == TypeElectroMagnetic && n != 3 && n != 4 {
		return fmt.Errorf("electromagnetic fields need 3 or 4 axes, not %d", n)
	}
	for i, ax := range fc.GridAxes() {
		if err := ax.Validate(); err != nil {
			return fmt.Errorf("axis %d is invalid: %s", i, err.Error())
		}
	}

	coords, err := interpolate.Bind(n, fc.BindOptions()...)
	if err != nil {
		return fmt.Errorf("the 'TimeAxis' variable is invalid: %s", err.Error())
	}
	mirrored := map[int]bool{}
	for _, m := range fc.Mirror {
		if mirrored[m] {
			return fmt.Errorf("the 'Mirror' variable contains axis %d "+
				"more than once", m)
		}
		mirrored[m] = true
		if m < 0 || m >= n {
			return fmt.Errorf("the 'Mirror' variable contains axis %d, but "+
				"there are only %d axes", m, n)
		} else if coords[m] == interpolate.T {
			return fmt.Errorf("the 'Mirror' variable contains axis %d, "+
				"which is the time axis", m)
		}
	}

	if fc.Source.Generator == "" {
		return fmt.Errorf("the 'Source.Generator' variable isn't set")
	}
	if fc.Type == TypeElectroMagnetic && fc.Electric.Generator == "" {
		return fmt.Errorf("the 'Electric.Generator' variable isn't set")
	}
	return nil
}

// Kind returns the interpolation kernel of the field.
func (fc *Field) Kind() (interpolate.Kind, error) {
	if fc.Interpolator == "" {
		return interpolate.Cubic, nil
	}
	return interpolate.ParseKind(fc.Interpolator)
}

// GridAxes converts the field's axes to grid axes.
func (fc *Field) GridAxes() []grid.Axis {
	out := make([]grid.Axis, len(fc.Axes))
	for i, ax := range fc.Axes {
		out[i] = grid.Axis{Origin: ax.Origin, Spacing: ax.Spacing, N: ax.N}
	}
	return out
}

// BindOptions returns the interpolator options which bind the field's axes
// to positions and time.
func (fc *Field) BindOptions() []interpolate.Option {
	if fc.TimeAxis == nil {
		return nil
	}
	return []interpolate.Option{interpolate.TimeAxis(*fc.TimeAxis)}
}

// ExampleConfig returns the text of an example field definition file.
func ExampleConfig() string {
	return fmt.Sprintf(`# Field definition file. Every [[Field]] table describes one field map.
Version = "%s"

[[Field]]
Name = "quad"
# magnetic or electromagnetic
Type = "magnetic"
# nearest, linear, or cubic
Interpolator = "cubic"
BScale = 1.0
# The local frame: an offset followed by z-x-z Euler angles in radians.
Offset = [0.0, 0.0, 1.0]
Euler = [0.0, 0.0, 0.0]
# The map only stores x >= 0 and is reflected about x = 0.
Mirror = [0]

[Field.Source]
Generator = "quadrupole"
Params = { Gradient = 2.0 }

[[Field.Axes]]
Origin = 0.0
Spacing = 0.05
N = 21

[[Field.Axes]]
Origin = -1.0
Spacing = 0.05
N = 41

[[Field.Axes]]
Origin = -1.0
Spacing = 0.05
N = 41

[[Field]]
Name = "cavity"
Type = "electromagnetic"
Interpolator = "linear"
EScale = 1e6
TimeAxis = 3

[Field.Source]
Generator = "uniform"
Params = { Z = 0.1, Omega = 6.283185307179586 }

[Field.Electric]
Generator = "uniform"
Params = { Z = 1.0, Omega = 6.283185307179586, Phase = 1.5707963267948966 }

[[Field.Axes]]
Origin = -0.5
Spacing = 0.25
N = 5

[[Field.Axes]]
Origin = -0.5
Spacing = 0.25
N = 5

[[Field.Axes]]
Origin = 2.0
Spacing = 0.25
N = 5

[[Field.Axes]]
Origin = 0.0
Spacing = 0.125
N = 9`, version.SourceVersion)
}
