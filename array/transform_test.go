package array

import (
	"testing"

	"github.com/phil-mansfield/fieldmap/vec"
)

func TestReflectionSymmetry(t *testing.T) {
	a := labeled(4, 3, 3)
	w := Transform[vec.Vec3](a, Reflect(0, 0), FlipBelow[vec.Vec3](0, 0, vec.MaskY))

	for ix := 0; ix < 4; ix++ {
		for iy := 0; iy < 3; iy++ {
			for iz := 0; iz < 3; iz++ {
				u := a.Get(Index{ix, iy, iz, 0})
				if ix > 0 {
					got := w.Get(Index{-ix, iy, iz, 0})
					want := vec.Vec3{X: u.X, Y: -u.Y, Z: u.Z}
					if got != want {
						t.Errorf("Get(%d, %d, %d) = %v, expected %v.",
							-ix, iy, iz, got, want)
					}
				}
				if got := w.Get(Index{ix, iy, iz, 0}); got != u {
					t.Errorf("Get(%d, %d, %d) = %v on the unreflected side, "+
						"expected %v.", ix, iy, iz, got, u)
				}
			}
		}
	}

	for _, ix := range []int{-4, -5, 4, 100} {
		if got := w.Get(Index{ix, 1, 1, 0}); got != (vec.Vec3{}) {
			t.Errorf("Get(%d, 1, 1) = %v, expected zero.", ix, got)
		}
	}
}

// TestBlockAcrossMirror checks stencils at and near index 0 under
// reflection, where requested neighbors map to non-neighboring samples.
func TestBlockAcrossMirror(t *testing.T) {
	a := labeled(5, 3, 2)
	w := Mirror[vec.Vec3](a, 0, vec.MagneticParity(0))

	for x0 := -6; x0 <= 3; x0++ {
		for _, nx := range []int{1, 2, 4} {
			lo, size := Index{x0, -1, 0, 0}, Index{nx, 4, 2, 1}
			out := make([]vec.Vec3, nx*4*2)
			w.Block(lo, size, out)

			j := 0
			for iz := 0; iz < 2; iz++ {
				for iy := -1; iy < 3; iy++ {
					for ix := x0; ix < x0+nx; ix++ {
						want := vec.Vec3{}
						if ix >= 0 {
							want = a.Get(Index{ix, iy, iz, 0})
						} else {
							want = a.Get(Index{-ix, iy, iz, 0}).Flip(vec.MaskY | vec.MaskZ)
						}
						if out[j] != want {
							t.Errorf("Block from x = %d, width %d: (%d, %d, %d) "+
								"= %v, expected %v.", x0, nx, ix, iy, iz, out[j], want)
						}
						j++
					}
				}
			}
		}
	}
}

func TestMirrorBounds(t *testing.T) {
	a := labeled(5, 3, 2)
	w := Mirror[vec.Vec3](Mirror[vec.Vec3](a, 0, vec.MaskY), 1, vec.MaskX)

	want := [][2]int{{-4, 5}, {-2, 3}, {0, 2}, {0, 1}}
	for d := range want {
		if lo, hi := w.Bounds(d); lo != want[d][0] || hi != want[d][1] {
			t.Errorf("Bounds(%d) = [%d, %d), expected %v.", d, lo, hi, want[d])
		}
	}

	u := a.Get(Index{2, 1, 1, 0})
	if got := w.Get(Index{-2, -1, 1, 0}); got != u.Flip(vec.MaskX|vec.MaskY) {
		t.Errorf("Doubly mirrored Get = %v from %v.", got, u)
	}
	if w.Dims() != 3 || w.Axis(0) != a.Axis(0) {
		t.Errorf("Mirror changed the axes of the array.")
	}
}

func TestIndexOps(t *testing.T) {
	req := Index{-2, 5, 7, 0}
	table := []struct {
		op  IndexOp
		out Index
	}{
		{Identity, Index{-2, 5, 7, 0}},
		{Offset(Index{1, -1, 0, 2}), Index{-1, 4, 7, 2}},
		{Reflect(0, 0), Index{2, 5, 7, 0}},
		{Reflect(0, 1), Index{4, 5, 7, 0}},
		{Reflect(1, 0), Index{-2, 5, 7, 0}},
		{ReflectHigh(1, 4), Index{-2, 1, 7, 0}},
		{ReflectHigh(2, 10), Index{-2, 5, 7, 0}},
		{ComposeIndex(Reflect(0, 0), ReflectHigh(2, 5)), Index{2, 5, 1, 0}},
		{ComposeIndex(Offset(Index{10, 0, 0, 0}), Reflect(0, 0)), Index{8, 5, 7, 0}},
	}

	for i, test := range table {
		if out := test.op(req); out != test.out {
			t.Errorf("%d) op(%v) = %v, expected %v.", i+1, req, out, test.out)
		}
	}
}

func TestValueOps(t *testing.T) {
	v := vec.EM{E: vec.Vec3{1, 2, 3}, B: vec.Vec3{4, 5, 6}}
	eFlip := vec.EMMask(vec.ElectricParity(0), vec.MagneticParity(0))
	op := ComposeValue(
		FlipBelow[vec.EM](0, 0, eFlip),
		FlipAbove[vec.EM](2, 3, vec.EMMask(vec.MaskNone, vec.MaskZ)),
	)

	table := []struct {
		req Index
		out vec.EM
	}{
		{Index{0, 0, 0, 0}, v},
		{Index{-1, 0, 0, 0}, vec.EM{E: vec.Vec3{-1, 2, 3}, B: vec.Vec3{4, -5, -6}}},
		{Index{1, 0, 3, 0}, vec.EM{E: vec.Vec3{1, 2, 3}, B: vec.Vec3{4, 5, -6}}},
		{Index{-1, 0, 3, 0}, vec.EM{E: vec.Vec3{-1, 2, 3}, B: vec.Vec3{4, -5, 6}}},
	}

	for i, test := range table {
		if out := op(test.req, v); out != test.out {
			t.Errorf("%d) op(%v) = %v, expected %v.", i+1, test.req, out, test.out)
		}
	}
}

func TestTransformDefaults(t *testing.T) {
	a := labeled(2, 2, 2)
	w := Transform[vec.Vec3](a, nil, nil)
	var idx Index
	for idx[0] = -1; idx[0] < 3; idx[0]++ {
		if w.Get(idx) != a.Get(idx) {
			t.Errorf("Identity transform changed sample %v.", idx)
		}
	}
	if w.Underlying() != Source[vec.Vec3](a) {
		t.Errorf("Underlying() didn't return the wrapped array.")
	}
}

func TestReflectHighTiling(t *testing.T) {
	a := labeled(3, 1, 1)
	w := Transform[vec.Vec3](a, ReflectHigh(0, 3),
		FlipAbove[vec.Vec3](0, 3, vec.MaskX)).Extend(0, 0, 5)

	want := []vec.Vec3{
		{1, 1, 1}, {2, 1, 1}, {3, 1, 1}, {-2, 1, 1}, {-1, 1, 1},
	}
	for ix := range want {
		if got := w.Get(Index{ix, 0, 0, 0}); got != want[ix] {
			t.Errorf("Get(%d) = %v, expected %v.", ix, got, want[ix])
		}
	}
	if lo, hi := w.Bounds(0); lo != 0 || hi != 5 {
		t.Errorf("Extend gave bounds [%d, %d).", lo, hi)
	}
}
