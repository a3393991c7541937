package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/phil-mansfield/fieldmap/dump"
	"github.com/phil-mansfield/fieldmap/logging"
)

func newPlotCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the field magnitude over an x-y slice.",
		Long: `plot draws a heat map of |B| or |E| over an x-y slice at fixed z and t.
The image format is chosen from the extension of --out: png, svg, pdf, eps,
jpg, or tif.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(cmd, v)
		},
	}

	fs := cmd.Flags()
	fs.String("field", "", "name of the field to plot (default: every field)")
	fs.StringP("out", "o", "field.png", "output image")
	fs.Float64Slice("min", []float64{-1, -1}, "lower corner of the slice: x,y")
	fs.Float64Slice("max", []float64{1, 1}, "upper corner of the slice: x,y")
	fs.IntSlice("n", []int{64, 64}, "points along each axis: nx,ny")
	fs.Float64("z", 0, "z of the slice")
	fs.Float64("t", 0, "time of the slice")
	fs.String("component", "B", "field to plot: B or E")
	fs.Float64("size", 12, "width and height of the image in cm")
	return cmd
}

func runPlot(cmd *cobra.Command, v *viper.Viper) error {
	sl, err := readSlice(cmd, v)
	if err != nil {
		return err
	}
	size := v.GetFloat64("size")
	if !(size > 0) {
		return fmt.Errorf("--size = %g, but it must be positive", size)
	}

	r, err := loadRegistry(v)
	if err != nil {
		return err
	}
	name := v.GetString("field")
	s, err := sampler(r, name)
	if err != nil {
		return err
	}
	if name == "" {
		name = "all fields"
	}

	title := fmt.Sprintf("|%s|, %s, z = %g, t = %g", sl.Component, name, sl.Z, sl.T)
	p, err := dump.Plot(s, sl, title)
	if err != nil {
		return err
	}

	out := v.GetString("out")
	l := vg.Length(size) * vg.Centimeter
	if err = p.Save(l, l, out); err != nil {
		return fmt.Errorf("I couldn't save the plot to %s: %w", out, err)
	}
	logging.Log.WithField("file", out).Info("Saved plot.")
	logMemory("plot")
	return nil
}

func readSlice(cmd *cobra.Command, v *viper.Viper) (dump.Slice, error) {
	fs := cmd.Flags()
	sl := dump.Slice{Z: v.GetFloat64("z"), T: v.GetFloat64("t")}

	c, err := dump.ParseComponent(v.GetString("component"))
	if err != nil {
		return sl, err
	}
	sl.Component = c

	lo, err := floats(fs, "min", 2, 0)
	if err != nil {
		return sl, err
	}
	hi, err := floats(fs, "max", 2, 0)
	if err != nil {
		return sl, err
	}
	n, err := ints(fs, "n", 2, 64)
	if err != nil {
		return sl, err
	}
	copy(sl.Min[:], lo)
	copy(sl.Max[:], hi)
	copy(sl.N[:], n)
	return sl, nil
}
