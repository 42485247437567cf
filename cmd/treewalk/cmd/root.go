// Package cmd wires the interpreter's four-stage pipeline
// (lexer -> parser -> resolver -> interp) to a cobra-based CLI.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "treewalk [file]",
	Short:   "Tree-walking interpreter for a small class-based scripting language",
	Args:    cobra.MaximumNArgs(1),
	Version: "0.1.0",
	RunE: func(c *cobra.Command, args []string) error {
		log := logrus.StandardLogger()
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}

		if len(args) == 1 {
			return runFile(args[0], log)
		}
		return runREPL(log)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log interpreter phase boundaries to stderr")
}

// Execute runs the root command; non-fatal cobra errors (bad flags, usage)
// are returned to main for a generic exit(1). Static/runtime interpreter
// errors exit directly with spec.md section 7's codes via os.Exit in
// run.go, since cobra's own error path doesn't carry an exit code.
func Execute() error {
	return rootCmd.Execute()
}
