package main

import (
	"fmt"
	"os"

	"github.com/chazu/xylem/pkg/engine"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [script.lisp]",
	Short: "Evaluate a geometry script",
	Long: `Run a Lisp geometry script through the sandboxed engine and print
everything it emits. Use (emit x) in the script to record values.`,
	Args: cobra.ExactArgs(1),
	Run:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	eng := engine.NewEngine()
	res, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", args[0], e.Error())
		}
		os.Exit(1)
	}

	for _, v := range res.Values {
		fmt.Println(v)
	}
}
