package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/exprlang/config"
	"github.com/cwbudde/exprlang/engine"
	"github.com/cwbudde/exprlang/internal/xerrors"
	"github.com/spf13/cobra"
)

var (
	parseOnly    bool
	traceEval    bool
	recursionLvl int
)

var evalCmd = &cobra.Command{
	Use:   "eval <expr>",
	Short: "Evaluate a standalone expression",
	Long: `Evaluate a standalone expression with no variable context.
References to survey variables fail as undefined, since this command
has no VariableResolver/QuestionResolver to consult.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		if traceEval {
			eng.SetTrace(os.Stderr)
		}

		if eng.Evaluate(args[0], parseOnly) {
			fmt.Fprintln(os.Stdout, eng.Result().Raw())
			return nil
		}

		compilerErrors := xerrors.FromEvalErrors(eng.Errors(), args[0], "<eval>")
		fmt.Fprint(os.Stderr, xerrors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("evaluation failed with %d error(s)", len(eng.Errors()))
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&parseOnly, "parse-only", false, "validate syntax/arity without executing function bodies")
	evalCmd.Flags().BoolVar(&traceEval, "trace", false, "print a per-evaluation trace line to stderr")
	processCmd.Flags().IntVar(&recursionLvl, "recursion-levels", 1, "processString recursion depth (process subcommand)")
}

// newEngine builds an Engine from --config when set, falling back to
// the full default function registry otherwise.
func newEngine() (*engine.Engine, error) {
	if configPath == "" {
		return engine.New(nil, nil), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	eng := engine.NewWithCategories(cfg.EnabledCategories, nil, nil)
	if recursionLvl == 1 {
		recursionLvl = cfg.RecursionLevels
	}
	if !parseOnly {
		parseOnly = cfg.ParseOnlyDefault
	}
	return eng, nil
}
