package cmd

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/fieldmap/config"
	"github.com/phil-mansfield/fieldmap/field"
	"github.com/phil-mansfield/fieldmap/interpolate"
)

// Summary is what the describe mode reports about a field.
type Summary struct {
	Name         string
	Type         string
	Variant      string
	Interpolator string
	Coords       []string
	Axes         []config.Axis
	Mirror       []int
	Offset       [3]float64
	Euler        [3]float64
	Scale        float64
	EScale       float64
	BScale       float64
	Static       bool
	StaticTime   float64
}

// Summarize describes a built field.
func Summarize(e config.Entry) (Summary, error) {
	fc := e.Config
	kind, err := fc.Kind()
	if err != nil {
		return Summary{}, err
	}
	coords, err := interpolate.Bind(len(fc.Axes), fc.BindOptions()...)
	if err != nil {
		return Summary{}, err
	}
	opts := fc.FieldOptions()

	s := Summary{
		Name:         fc.Name,
		Type:         fc.Type,
		Interpolator: kind.String(),
		Axes:         fc.Axes,
		Mirror:       fc.Mirror,
		Offset:       fc.Offset,
		Euler:        fc.Euler,
		Scale:        opts.Scale,
		EScale:       opts.EScale,
		BScale:       opts.BScale,
		Static:       opts.Static,
		StaticTime:   opts.StaticTime,
	}
	for _, c := range coords {
		s.Coords = append(s.Coords, c.String())
	}
	if em, ok := e.Field.(*field.ElectroMagnetic); ok {
		s.Variant = em.Variant().String()
	}
	return s, nil
}

func newDescribeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [field names...]",
		Short: "Print the fields in a definition file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRegistry(v)
			if err != nil {
				return err
			}
			names := args
			if len(names) == 0 {
				names = r.Names()
			}

			for _, name := range names {
				e, ok := r.Get(name)
				if !ok {
					return fmt.Errorf("There's no field named '%s'. The "+
						"fields are %v.", name, r.Names())
				}
				s, err := Summarize(e)
				if err != nil {
					return err
				}
				if _, err = pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
