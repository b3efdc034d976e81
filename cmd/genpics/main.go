// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the genpics CLI, which renders a
// directory of Graphviz sources to SVG.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the genpics CLI.
var rootCmd = &cobra.Command{
	Use:   "genpics",
	Short: "Render Graphviz sources to SVG images",
	Long: `genpics renders every .gv file in an input directory to an .svg file of
the same base name in an output directory, by invoking Graphviz once per file.

Failures of individual files are reported and the batch continues.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./genpics.yaml or ~/.config/genpics/genpics.yaml)")
	rootCmd.PersistentFlags().String("history", "", "SQLite database recording render runs (disabled when empty)")
	_ = viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("genpics")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "genpics"))
		}
	}

	viper.SetEnvPrefix("GENPICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
