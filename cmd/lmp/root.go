package main

import (
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lmp",
	Short: "The Little Man Plus assembler and machine simulator",
	Long: `Lmp assembles and executes programs for the Little Man Plus
machine: a single-accumulator computer with a flat memory of signed
64-bit mailboxes, pointer indirection through @label operands, and
bitwise extensions over the classic Little Man Computer instruction
set.
`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}
