package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/fieldmap/config"
	"github.com/phil-mansfield/fieldmap/dump"
	"github.com/phil-mansfield/fieldmap/field"
	"github.com/phil-mansfield/fieldmap/vec"
)

// globalField reports a single field in the global frame.
type globalField struct {
	f field.Field
}

func (g globalField) Sample(pos r3.Vec, t float64) (b, e vec.Vec3) {
	b, e = g.f.Sample(pos, t)
	frame := g.f.Frame()
	return frame.VecToGlobal(b), frame.VecToGlobal(e)
}

// sampler returns the named field, or the sum of every field if name is
// empty. Both report fields in the global frame.
func sampler(r *config.Registry, name string) (dump.Sampler, error) {
	if name == "" {
		return r, nil
	}
	e, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("There's no field named '%s'. The fields "+
			"are %v.", name, r.Names())
	}
	return globalField{e.Field}, nil
}

// createOutput opens the file named by the out flag, or stdout if it's
// empty.
func createOutput(cmd *cobra.Command, fname string) (io.WriteCloser, error) {
	if fname == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(fname)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func newDumpCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write fields sampled on a regular grid as a text table.",
		Long: `dump samples fields on a regular (x, y, z, t) grid and writes one row per
point: x y z t Bx By Bz Ex Ey Ez. Unset trailing grid values default to a
single point at 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, v)
		},
	}

	fs := cmd.Flags()
	fs.String("field", "", "name of the field to sample (default: every field)")
	fs.StringP("out", "o", "", "output file (default: stdout)")
	fs.Float64Slice("min", nil, "lower corner of the grid: x,y,z,t")
	fs.Float64Slice("max", nil, "upper corner of the grid: x,y,z,t")
	fs.IntSlice("n", nil, "points along each axis: nx,ny,nz,nt")
	return cmd
}

func runDump(cmd *cobra.Command, v *viper.Viper) error {
	spec, err := readSpec(cmd)
	if err != nil {
		return err
	}
	r, err := loadRegistry(v)
	if err != nil {
		return err
	}
	s, err := sampler(r, v.GetString("field"))
	if err != nil {
		return err
	}

	w, err := createOutput(cmd, v.GetString("out"))
	if err != nil {
		return err
	}
	if _, err = dump.WriteGrid(w, s, spec); err != nil {
		w.Close()
		return err
	}
	logMemory("dump")
	return w.Close()
}

// readSpec reads a sampling grid from the min, max, and n flags.
func readSpec(cmd *cobra.Command) (dump.Spec, error) {
	fs := cmd.Flags()
	spec := dump.Spec{}
	lo, err := floats(fs, "min", 4, 0)
	if err != nil {
		return spec, err
	}
	hi, err := floats(fs, "max", 4, 0)
	if err != nil {
		return spec, err
	}
	n, err := ints(fs, "n", 4, 1)
	if err != nil {
		return spec, err
	}

	copy(spec.Min[:], lo)
	copy(spec.Max[:], hi)
	copy(spec.N[:], n)
	return spec, spec.Validate()
}
