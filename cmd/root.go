/*package cmd contains the fieldmap command line modes. Every mode reads a
field definition file, builds its fields, and then samples, plots, or
checks them.

Flags can also be set through environment variables: --config is read from
$FIELDMAP_CONFIG, --log from $FIELDMAP_LOG, and so on.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/fieldmap/config"
	"github.com/phil-mansfield/fieldmap/logging"
	"github.com/phil-mansfield/fieldmap/version"
)

// EnvPrefix is the prefix of the environment variables which set flags.
const EnvPrefix = "FIELDMAP"

// NewRootCommand creates the fieldmap command and all of its modes.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "fieldmap",
		Short: "fieldmap samples, plots, and checks N-D field maps.",
		Long: `fieldmap reads a field definition file and builds the field maps it
describes. Type 'fieldmap example' to see an example definition file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			mode, err := logging.ParseFlag(v.GetString("log"))
			if err != nil {
				return err
			}
			logging.SetOutput(cmd.ErrOrStderr())
			logging.SetMode(mode)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "field definition file")
	pf.String("log", "nil", "logging mode: nil, performance, or debug")

	root.AddCommand(
		newDumpCommand(v),
		newPlotCommand(v),
		newDescribeCommand(v),
		newCheckCommand(v),
		newExampleCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the fieldmap command with the process's arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadRegistry builds every field in the definition file named by the
// config flag.
func loadRegistry(v *viper.Viper) (*config.Registry, error) {
	fname := v.GetString("config")
	if fname == "" {
		return nil, fmt.Errorf("I wasn't given a field definition file. "+
			"Set it with --config or $%s_CONFIG.", EnvPrefix)
	}
	r, err := config.Load(fname, config.SynthLoader{})
	if err != nil {
		return nil, err
	}
	logMemory("registry")
	return r, nil
}

// logMemory reports the process's memory usage after a stage of a mode when
// running in performance or debug mode.
func logMemory(stage string) {
	if logging.Mode >= logging.Performance {
		logging.Log.WithField("stage", stage).Info(logging.MemString())
	}
}

// floats reads a float slice flag and pads it to n values with def.
func floats(fs *pflag.FlagSet, name string, n int, def float64) ([]float64, error) {
	x, err := fs.GetFloat64Slice(name)
	if err != nil {
		return nil, err
	}
	if len(x) > n {
		return nil, fmt.Errorf("--%s has %d values, but can have at most %d",
			name, len(x), n)
	}
	for len(x) < n {
		x = append(x, def)
	}
	return x, nil
}

// ints reads an int slice flag and pads it to n values with def.
func ints(fs *pflag.FlagSet, name string, n int, def int) ([]int, error) {
	x, err := fs.GetIntSlice(name)
	if err != nil {
		return nil, err
	}
	if len(x) > n {
		return nil, fmt.Errorf("--%s has %d values, but can have at most %d",
			name, len(x), n)
	}
	for len(x) < n {
		x = append(x, def)
	}
	return x, nil
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example field definition file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.ExampleConfig())
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fieldmap version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fieldmap version %s\n",
				version.SourceVersion)
			return err
		},
	}
}
