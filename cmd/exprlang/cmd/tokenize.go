package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/exprlang/lexer"
	"github.com/spf13/cobra"
)

var editMode bool

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <expr>",
	Short: "Tokenize an expression and print its token vector",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tokens := lexer.New(args[0], lexer.WithEditMode(editMode)).Tokenize()
		for _, tok := range tokens {
			fmt.Fprintln(os.Stdout, tok.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&editMode, "edit-mode", false, "retain SPACE tokens and exact offsets")
}
