/*
Copyright © 2021 the pmcpost authors.
This file is part of pmcpost.

pmcpost is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

pmcpost is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with pmcpost.  If not, see <http://www.gnu.org/licenses/>.
*/

package pmcutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/pmcpost"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to pmcpost.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "loglevel",
			usage: `
              loglevel specifies the minimum level of log messages
              to print: one of debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "drop",
			usage: `
              drop specifies a list of aerosol species to leave out of
              the calculation, for example "H2O". It is ignored if groups or
              groupfile are specified.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{chiCmd.Flags(), seriesCmd.Flags(), subsetCmd.Flags()},
		},
		{
			name: "groups",
			usage: `
              groups specifies groups of aerosol species whose masses are
              summed and treated as a single species when calculating the
              mixing state index, as a JSON list of lists, for example
              '[["SO4","NO3","NH4"],["BC","OC"]]'. In a configuration file
              it can be given as a list of lists directly.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{chiCmd.Flags(), seriesCmd.Flags()},
		},
		{
			name: "groupfile",
			usage: `
              groupfile specifies the path to a TOML file containing
              species groups in the format 'Groups = [["SO4","NO3"],["BC"]]'.
              It takes precedence over the groups option.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{chiCmd.Flags(), seriesCmd.Flags()},
		},
		{
			name: "skipempty",
			usage: `
              skipempty specifies whether particles that contain none of the
              selected species should be left out of the mixing state
              calculation. If false, such particles cause an error.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{chiCmd.Flags()},
		},
		{
			name: "diversity",
			usage: `
              diversity specifies whether to also print the particle (D_alpha)
              and population (D_gamma) diversities.`,
			shorthand:  "d",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{chiCmd.Flags()},
		},
		{
			name: "dry",
			usage: `
              dry specifies whether aerosol water should be excluded when
              calculating particle diameters and mass concentrations.`,
			defaultVal: true,
			flagsets: []*pflag.FlagSet{chiCmd.Flags(), concCmd.Flags(), diameterCmd.Flags(),
				seriesCmd.Flags(), subsetCmd.Flags()},
		},
		{
			name: "mindiameter",
			usage: `
              mindiameter specifies the smallest particle diameter [m] to include.
              Particles are included if mindiameter <= diameter < maxdiameter.`,
			defaultVal: 0.0,
			flagsets: []*pflag.FlagSet{chiCmd.Flags(), concCmd.Flags(), seriesCmd.Flags(),
				subsetCmd.Flags()},
		},
		{
			name: "maxdiameter",
			usage: `
              maxdiameter specifies the particle diameter [m] above which particles
              are excluded. Zero or a negative value means there is no upper limit.`,
			defaultVal: 0.0,
			flagsets: []*pflag.FlagSet{chiCmd.Flags(), concCmd.Flags(), seriesCmd.Flags(),
				subsetCmd.Flags()},
		},
		{
			name: "plot",
			usage: `
              plot specifies the path of a PNG file to create holding a
              histogram of the number concentration of particles by diameter.
              No plot is created if it is empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{diameterCmd.Flags()},
		},
		{
			name: "bins",
			usage: `
              bins specifies the number of bins in the diameter histogram.`,
			defaultVal: 30,
			flagsets:   []*pflag.FlagSet{diameterCmd.Flags()},
		},
		{
			name: "species",
			usage: `
              species specifies the gas species whose mixing ratios should be
              printed. All gas species are printed if it is empty.`,
			shorthand:  "s",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{gasCmd.Flags()},
		},
		{
			name: "xlsx",
			usage: `
              xlsx specifies the path of an Excel file to write the time
              series summary to, in addition to printing it.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{seriesCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("PMCPOST")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(chiCmd)
	Root.AddCommand(concCmd)
	Root.AddCommand(diameterCmd)
	Root.AddCommand(gasCmd)
	Root.AddCommand(seriesCmd)
	Root.AddCommand(subsetCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("pmcpost: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("loglevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "pmcpost",
	Short: "Post-processing for the PartMC aerosol model.",
	Long: `pmcpost calculates statistics of particle populations from the
netCDF output files of the PartMC particle-resolved aerosol model,
including concentrations, particle diameters, and the mixing state
index of Riemer and West (2013).

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PMCPOST_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of pmcpost.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pmcpost v%s\n", pmcpost.Version)
	},
	DisableAutoGenTag: true,
}

var chiCmd = &cobra.Command{
	Use:   "chi file.nc",
	Short: "Calculate the mixing state index.",
	Long: `chi calculates the mixing state index of the particle population in
a PartMC output file. The species to include can be adjusted with the
drop, groups, and groupfile options, and the particles to include with
the mindiameter and maxdiameter options.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := Selection(Cfg)
		if err != nil {
			return err
		}
		return Chi(cmd.OutOrStdout(), os.ExpandEnv(args[0]), sel, DiameterMask(Cfg),
			Cfg.GetBool("skipempty"), Cfg.GetBool("diversity"))
	},
	DisableAutoGenTag: true,
}

var concCmd = &cobra.Command{
	Use:   "conc file.nc",
	Short: "Calculate aerosol concentrations.",
	Long: `conc calculates the total number concentration, the dry and wet mass
concentrations, and the bulk density of the particle population in a
PartMC output file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Conc(cmd.OutOrStdout(), os.ExpandEnv(args[0]), DiameterMask(Cfg), Cfg.GetBool("dry"))
	},
	DisableAutoGenTag: true,
}

var diameterCmd = &cobra.Command{
	Use:   "diameter file.nc",
	Short: "Calculate particle diameters.",
	Long: `diameter prints the volume-equivalent diameter [m] and number
concentration [m-3] of each particle in a PartMC output file and
optionally plots their distribution.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Diameter(cmd.OutOrStdout(), os.ExpandEnv(args[0]), Cfg.GetBool("dry"),
			os.ExpandEnv(Cfg.GetString("plot")), Cfg.GetInt("bins"))
	},
	DisableAutoGenTag: true,
}

var gasCmd = &cobra.Command{
	Use:   "gas file.nc",
	Short: "Print gas mixing ratios.",
	Long:  `gas prints the mixing ratios of gas species in a PartMC output file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		species, err := toStringSliceE(Cfg.Get("species"))
		if err != nil {
			return fmt.Errorf("pmcpost: reading 'species': %v", err)
		}
		return Gas(cmd.OutOrStdout(), os.ExpandEnv(args[0]), species)
	},
	DisableAutoGenTag: true,
}

var seriesCmd = &cobra.Command{
	Use:   "series 'out/run_0001_*.nc'",
	Short: "Summarize a time series of output files.",
	Long: `series calculates summary statistics, including the mixing state
index, for every PartMC output file matching the given pattern and prints
them as a table ordered by simulation time.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := Selection(Cfg)
		if err != nil {
			return err
		}
		return Series(cmd.OutOrStdout(), os.ExpandEnv(args[0]), sel, DiameterMask(Cfg),
			os.ExpandEnv(Cfg.GetString("xlsx")))
	},
	DisableAutoGenTag: true,
}

var subsetCmd = &cobra.Command{
	Use:   "subset in.nc out.nc",
	Short: "Save a subset of a particle population.",
	Long: `subset writes the particles in a PartMC output file that fall within
the range given by the mindiameter and maxdiameter options to a new file,
leaving out the species given by the drop option.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		drop, err := toStringSliceE(Cfg.Get("drop"))
		if err != nil {
			return fmt.Errorf("pmcpost: reading 'drop': %v", err)
		}
		return Subset(os.ExpandEnv(args[0]), os.ExpandEnv(args[1]), DiameterMask(Cfg), drop)
	},
	DisableAutoGenTag: true,
}
