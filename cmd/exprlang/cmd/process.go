package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process <template>",
	Short: "Substitute every {expr} segment in a host string",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, eng.ProcessString(args[0], recursionLvl, -1, -1))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
