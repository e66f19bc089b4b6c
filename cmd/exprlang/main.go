// Command exprlang is a CLI front end over the eval/emit/engine
// packages, mirroring the subcommand layout of the teacher's
// cmd/dwscript binary.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/exprlang/cmd/exprlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
