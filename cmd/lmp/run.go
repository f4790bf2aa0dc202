package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lmp-machine/lmp/emulator"
	lmpio "github.com/lmp-machine/lmp/io"
)

var runInput string
var runOutput string
var runLimit int64

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run sourceFile",
	Short: "Assemble and execute a program",
	Long: `Run assembles a Little Man Plus source file, loads it into a
fresh machine, and steps it to completion. INP values are read from
the input tape as whitespace-separated decimal numbers; OUT values are
written to the output tape one per line.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return
		}

		tape := &lmpio.Tape{
			Input:  os.Stdin,
			Output: os.Stdout,
		}

		if runInput != "-" {
			inf, ferr := os.Open(runInput)
			if ferr != nil {
				err = ferr
				return
			}
			defer inf.Close()
			tape.Input = inf
		}

		if runOutput != "-" {
			ouf, ferr := os.Create(runOutput)
			if ferr != nil {
				err = ferr
				return
			}
			defer ouf.Close()
			tape.Output = ouf
		}

		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		emu.Limit = runLimit
		emu.Input = tape
		emu.Output = tape

		err = emu.Compile(string(source))
		if err != nil {
			return
		}

		return emu.Run()
	},
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", "Tape input")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "-", "Tape output")
	runCmd.Flags().Int64Var(&runLimit, "limit", 0, "Cycle limit, 0 for the default")
	rootCmd.AddCommand(runCmd)
}
