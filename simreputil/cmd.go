/*
Copyright © 2019 the simrepo authors.
This file is part of simrepo.

simrepo is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

simrepo is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with simrepo.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package simreputil provides the simrepo command-line interface.
package simreputil

import (
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/esmtools/simrepo"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to simrepo.
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
			name: "basedir",
			usage: `
              basedir specifies the simulation repository base directory.
              If empty, the ESM_SIM_REPO_BASE_DIR environment variable is
              used, and failing that, the built-in default.`,
			shorthand:  "b",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "exclude",
			usage: `
              exclude lists experiment IDs to skip during classification.
              If empty, the ESM_SIM_REPO_BLACK_LIST environment variable is
              used.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose enables debug-level log output.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("SIMREPO")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(indexCmd)
	Root.AddCommand(entriesCmd)
	Root.AddCommand(describeCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if Cfg.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("simrepo: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "simrepo",
	Short: "An index of an earth-system-model simulation repository.",
	Long: `simrepo sorts the directories of a simulation repository into catalogs
of experiments and gives access to their output file inventories.
Use the subcommands specified below to access the index.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'SIMREPO_var' where 'var' is
the name of the variable to be set. The repository base directory and the
exclusion list additionally honor the ESM_SIM_REPO_BASE_DIR and
ESM_SIM_REPO_BLACK_LIST environment variables when not set explicitly.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of simrepo.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("simrepo v%s\n", simrepo.Version)
	},
	DisableAutoGenTag: true,
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Classify the repository and print a summary",
	Long: `index walks the repository base directory, classifies every
simulation directory, and prints one line per experiment with its
model family.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := Repository()
		if err != nil {
			return err
		}
		return PrintIndex(cmd.OutOrStdout(), repo)
	},
	DisableAutoGenTag: true,
}

var entriesCmd = &cobra.Command{
	Use:   "entries [expid]",
	Short: "List the output entries of an experiment",
	Long: `entries lists the per-tag output entries of a recognized
experiment, with the number of files indexed under each tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := Repository()
		if err != nil {
			return err
		}
		return PrintEntries(cmd.OutOrStdout(), repo, args[0])
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe [expid] [tag] [variables...]",
	Short: "Summarize the data behind an output entry",
	Long: `describe opens the dataset behind one output entry of a
recognized experiment and prints the dimensions and summary statistics
of the given variables, or of all variables if none are given.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := Repository()
		if err != nil {
			return err
		}
		return PrintDescription(cmd.OutOrStdout(), repo, args[0], args[1], args[2:])
	},
	DisableAutoGenTag: true,
}
