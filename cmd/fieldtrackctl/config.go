package main

import (
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"

	"github.com/spatialfield/fieldtrack"
)

// config mirrors the set of run parameters the sr command line tool
// reads through viper: a handful of named values with flag overrides,
// rather than a single monolithic struct unmarshaled wholesale.
var config = viper.New()

// bindConfigFlags registers the persistent flags fieldtrackctl reads
// through viper, following the sr tool's config.Set/config.Get idiom
// of mixing flag defaults with a config file.
func bindConfigFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("grid-file", "", "path to a NetCDF file holding lon/lat/depth/time and the data variable")
	flags.String("data-var", "", "name of the data variable to sample")
	flags.String("interp", "linear", `interpolation method: "linear" or "nearest"`)
	flags.Bool("allow-time-extrapolation", false, "hold the nearest time sample instead of failing outside the time axis")
	flags.Bool("time-periodic", false, "treat the time axis as one period of a repeating cycle")
	flags.String("config", "", "path to a fieldtrackctl config file (YAML, TOML, or JSON)")

	config.BindPFlag("grid-file", flags.Lookup("grid-file"))
	config.BindPFlag("data-var", flags.Lookup("data-var"))
	config.BindPFlag("interp", flags.Lookup("interp"))
	config.BindPFlag("allow-time-extrapolation", flags.Lookup("allow-time-extrapolation"))
	config.BindPFlag("time-periodic", flags.Lookup("time-periodic"))
	config.BindPFlag("config", flags.Lookup("config"))
}

// loadConfigFile reads the config file named by the --config flag, if
// any was given. A missing --config flag is not an error: flags and
// defaults alone are a valid configuration, the same way the sr tool
// falls back to flag values when no file is given.
func loadConfigFile() error {
	path := config.GetString("config")
	if path == "" {
		return nil
	}
	config.SetConfigFile(path)
	if err := config.ReadInConfig(); err != nil {
		return fmt.Errorf("fieldtrackctl: reading config file %s: %v", path, err)
	}
	return nil
}

// interpCode translates the --interp flag into a fieldtrack.InterpCode.
func interpCode() (fieldtrack.InterpCode, error) {
	switch strings.ToLower(config.GetString("interp")) {
	case "", "linear":
		return fieldtrack.Linear, nil
	case "nearest":
		return fieldtrack.Nearest, nil
	default:
		return 0, fmt.Errorf("fieldtrackctl: unknown --interp value %q", config.GetString("interp"))
	}
}
