package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit <expr>",
	Short: "Render an expression in the client-side target surface",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, eng.ToTargetExpression(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
}
