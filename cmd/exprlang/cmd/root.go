package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags, following the teacher's
	// cmd/dwscript/cmd/root.go convention.
	Version = "0.1.0-dev"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "exprlang",
	Short:   "Survey-template expression engine",
	Version: Version,
	Long: `exprlang tokenizes, evaluates, and re-emits the curly-brace
expressions embedded in survey templates: a whitelisted function
registry, a recursive-descent evaluator, and a client-surface emitter.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{printf "%%s version %%s" .Name .Version}}
`))
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (see package config)")
}
