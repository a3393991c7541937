package cmd

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/dump"
	"github.com/phil-mansfield/fieldmap/field"
	"github.com/phil-mansfield/fieldmap/logging"
)

// ErrDivergence is returned by the check mode when a field's divergence
// is larger than the tolerance.
var ErrDivergence = errors.New("div B is larger than the tolerance")

// Divergence is the largest |div B| found in a field and where it was
// found.
type Divergence struct {
	Max  float64
	Pos  r3.Vec
	Time float64
}

// MaxDivergence finds the largest |div B| of f over a sampling grid.
func MaxDivergence(f field.Field, spec dump.Spec, step float64) (Divergence, error) {
	if err := spec.Validate(); err != nil {
		return Divergence{}, err
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return Divergence{}, fmt.Errorf("the divergence step is %g, but it "+
			"must be positive", step)
	}

	h := r3.Vec{X: step, Y: step, Z: step}
	out := Divergence{Max: -1}
	for it := 0; it < spec.N[3]; it++ {
		t := spec.Coord(3, it)
		for iz := 0; iz < spec.N[2]; iz++ {
			for iy := 0; iy < spec.N[1]; iy++ {
				for ix := 0; ix < spec.N[0]; ix++ {
					p := r3.Vec{
						X: spec.Coord(0, ix), Y: spec.Coord(1, iy), Z: spec.Coord(2, iz),
					}
					div := math.Abs(field.Divergence(f, p, h, t))
					if div > out.Max {
						out = Divergence{Max: div, Pos: p, Time: t}
					}
				}
			}
		}
	}
	return out, nil
}

func newCheckCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [field names...]",
		Short: "Find the largest div B of each field over a grid.",
		Long: `check estimates div B with central differences at every point of a
regular (x, y, z, t) grid and reports the largest value for each field. If
--tol is positive, check fails when any field exceeds it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, v, args)
		},
	}

	fs := cmd.Flags()
	fs.Float64Slice("min", nil, "lower corner of the grid: x,y,z,t")
	fs.Float64Slice("max", nil, "upper corner of the grid: x,y,z,t")
	fs.IntSlice("n", nil, "points along each axis: nx,ny,nz,nt")
	fs.Float64("step", 1e-4, "finite difference step")
	fs.Float64("tol", 0, "largest acceptable |div B| (0: report only)")
	return cmd
}

func runCheck(cmd *cobra.Command, v *viper.Viper, names []string) error {
	spec, err := readSpec(cmd)
	if err != nil {
		return err
	}
	r, err := loadRegistry(v)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = r.Names()
	}

	tol := v.GetFloat64("tol")
	var bad []string
	for _, name := range names {
		e, ok := r.Get(name)
		if !ok {
			return fmt.Errorf("There's no field named '%s'. The fields "+
				"are %v.", name, r.Names())
		}
		d, err := MaxDivergence(e.Field, spec, v.GetFloat64("step"))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %.6g %.6g %.6g %.6g %.6g\n",
			name, d.Max, d.Pos.X, d.Pos.Y, d.Pos.Z, d.Time)
		logging.Log.WithFields(logrus.Fields{
			"field": name, "max": d.Max,
		}).Info("Checked divergence.")

		if tol > 0 && d.Max > tol {
			bad = append(bad, name)
		}
	}

	logMemory("check")
	if len(bad) > 0 {
		return fmt.Errorf("%w (%g) for %v", ErrDivergence, tol, bad)
	}
	return nil
}
