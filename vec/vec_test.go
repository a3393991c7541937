package vec

import (
	"testing"
)

func TestFlip(t *testing.T) {
	v := Vec3{1, 2, 3}
	table := []struct {
		m   Mask
		out Vec3
	}{
		{MaskNone, Vec3{1, 2, 3}},
		{MaskX, Vec3{-1, 2, 3}},
		{MaskY, Vec3{1, -2, 3}},
		{MaskY | MaskZ, Vec3{1, -2, -3}},
		{MaskAll, Vec3{-1, -2, -3}},
	}

	for i, test := range table {
		if out := v.Flip(test.m); out != test.out {
			t.Errorf("%d) Expected %v.Flip(%03b) = %v, got %v.",
				i+1, v, test.m, test.out, out)
		}
	}
}

func TestEMFlip(t *testing.T) {
	f := EM{E: Vec3{1, 2, 3}, B: Vec3{4, 5, 6}}
	out := f.Flip(EMMask(MaskX, MaskZ))
	want := EM{E: Vec3{-1, 2, 3}, B: Vec3{4, 5, -6}}
	if out != want {
		t.Errorf("Expected %v, got %v.", want, out)
	}

	out = f.Flip(EMMask(MaskNone, MaskAll))
	want = EM{E: Vec3{1, 2, 3}, B: Vec3{-4, -5, -6}}
	if out != want {
		t.Errorf("Expected %v, got %v.", want, out)
	}
}

func TestParity(t *testing.T) {
	table := []struct {
		axis int
		b, e Mask
	}{
		{0, MaskY | MaskZ, MaskX},
		{1, MaskX | MaskZ, MaskY},
		{2, MaskX | MaskY, MaskZ},
	}

	for i, test := range table {
		if b := MagneticParity(test.axis); b != test.b {
			t.Errorf("%d) MagneticParity(%d) = %03b, expected %03b.",
				i+1, test.axis, b, test.b)
		}
		if e := ElectricParity(test.axis); e != test.e {
			t.Errorf("%d) ElectricParity(%d) = %03b, expected %03b.",
				i+1, test.axis, e, test.e)
		}
	}
}

func TestArithmetic(t *testing.T) {
	v, u := Vec3{1, 2, 3}, Vec3{0.5, -1, 2}
	if out := v.Add(u); out != (Vec3{1.5, 1, 5}) {
		t.Errorf("Add gave %v.", out)
	}
	if out := v.Sub(u); out != (Vec3{0.5, 3, 1}) {
		t.Errorf("Sub gave %v.", out)
	}
	if out := v.Scale(2); out != (Vec3{2, 4, 6}) {
		t.Errorf("Scale gave %v.", out)
	}
	if n := (Vec3{3, 4, 0}).Norm(); n != 5 {
		t.Errorf("Norm gave %g.", n)
	}
	if out := FromR3(v.R3()); out != v {
		t.Errorf("R3 round trip gave %v.", out)
	}

	var zero EM
	if out := zero.Add(EM{B: u}).Scale(2); out != (EM{B: Vec3{1, -2, 4}}) {
		t.Errorf("EM arithmetic gave %v.", out)
	}
}
