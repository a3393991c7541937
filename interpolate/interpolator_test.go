package interpolate

import (
	"errors"
	"testing"

	"github.com/phil-mansfield/fieldmap/array"
	"github.com/phil-mansfield/fieldmap/grid"
	"github.com/phil-mansfield/fieldmap/vec"
)

func TestParseKind(t *testing.T) {
	table := []struct {
		s    string
		kind Kind
		ok   bool
	}{
		{"nearest", Nearest, true},
		{"Linear", Linear, true},
		{" CUBIC ", Cubic, true},
		{"spline", 0, false},
		{"", 0, false},
	}

	for i, test := range table {
		kind, err := ParseKind(test.s)
		if test.ok && (err != nil || kind != test.kind) {
			t.Errorf("%d) ParseKind('%s') = %v, %v, expected %v.",
				i+1, test.s, kind, err, test.kind)
		} else if !test.ok && !errors.Is(err, ErrKind) {
			t.Errorf("%d) Expected ErrKind from ParseKind('%s'), got %v.",
				i+1, test.s, err)
		}
	}

	for _, k := range []Kind{Nearest, Linear, Cubic} {
		if out, err := ParseKind(k.String()); err != nil || out != k {
			t.Errorf("ParseKind(%v.String()) = %v, %v.", k, out, err)
		}
	}
}

func TestStencil(t *testing.T) {
	if Stencil(Nearest) != 1 || Stencil(Linear) != 2 || Stencil(Cubic) != 4 {
		t.Errorf("Stencil widths are %d, %d, %d.",
			Stencil(Nearest), Stencil(Linear), Stencil(Cubic))
	}
}

func TestBind(t *testing.T) {
	table := []struct {
		dims int
		opts []Option
		out  []Coord
	}{
		{1, nil, []Coord{X}},
		{2, nil, []Coord{X, Y}},
		{3, nil, []Coord{X, Y, Z}},
		{4, nil, []Coord{X, Y, Z, T}},
		{1, []Option{TimeAxis(0)}, []Coord{T}},
		{2, []Option{TimeAxis(0)}, []Coord{T, X}},
		{2, []Option{TimeAxis(1)}, []Coord{X, T}},
		{4, []Option{TimeAxis(0)}, []Coord{T, X, Y, Z}},
		{3, []Option{TimeAxis(-1)}, []Coord{X, Y, Z}},
		{3, []Option{AxisCoords(Z, X, T)}, []Coord{Z, X, T}},
		{2, []Option{TimeAxis(0), AxisCoords(Y, Z)}, []Coord{Y, Z}},
	}

	for i, test := range table {
		out, err := bind(test.dims, test.opts)
		if err != nil {
			t.Errorf("%d) Unexpected error %v.", i+1, err)
			continue
		}
		for d := range test.out {
			if out[d] != test.out[d] {
				t.Errorf("%d) Got binding %v, expected %v.",
					i+1, out[:test.dims], test.out)
				break
			}
		}
	}
}

func TestBindErrors(t *testing.T) {
	table := []struct {
		dims int
		opts []Option
	}{
		{3, []Option{TimeAxis(3)}},
		{1, []Option{TimeAxis(-2)}},
		{3, []Option{AxisCoords(X, Y)}},
		{2, []Option{AxisCoords(X, X)}},
		{1, []Option{AxisCoords(Coord(9))}},
	}

	for i, test := range table {
		if _, err := bind(test.dims, test.opts); !errors.Is(err, ErrBinding) {
			t.Errorf("%d) Expected ErrBinding, got %v.", i+1, err)
		}
	}
}

func TestNew(t *testing.T) {
	a := uniform3(3, vec.Vec3{X: 1})
	for _, k := range []Kind{Nearest, Linear, Cubic} {
		in, err := New[vec.Vec3](a, k)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", k, err)
		}
		if in.Kind() != k || in.Dims() != 3 || in.Source() != array.Source[vec.Vec3](a) {
			t.Errorf("New(%v) gave kind %v, dims %d.", k, in.Kind(), in.Dims())
		}
	}

	if in, err := New[vec.Vec3](a, Kind(7)); !errors.Is(err, ErrKind) || in != nil {
		t.Errorf("Expected ErrKind from an unknown kind, got %v.", err)
	}
	if in, err := New[vec.Vec3](a, Linear, TimeAxis(5)); !errors.Is(err, ErrBinding) ||
		in != nil {
		t.Errorf("Expected ErrBinding, got %v.", err)
	}
}

func TestEvalAll(t *testing.T) {
	ax := grid.Axis{Origin: 0, Spacing: 1, N: 4}
	a := array.Must(array.FromFunc([]grid.Axis{ax},
		func(idx array.Index, c [grid.MaxDims]float64) vec.Vec3 {
			return vec.Vec3{X: c[0]}
		}))
	in := Must[vec.Vec3](NewLinear[vec.Vec3](a))

	xs := []float64{0, 0.5, 2.25, -1}
	zs := make([]float64, len(xs))
	out := EvalAll(in, xs, zs, zs, zs)
	want := []float64{0, 0.5, 2.25, 0}
	for i := range want {
		if out[i].X != want[i] {
			t.Errorf("%d) EvalAll gave %g, expected %g.", i+1, out[i].X, want[i])
		}
	}

	buf := make([]vec.Vec3, len(xs))
	if res := EvalAll(in, xs, zs, zs, zs, buf); &res[0] != &buf[0] {
		t.Errorf("EvalAll didn't write to the supplied buffer.")
	}
}
