package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmp-machine/lmp/machine"
)

// asmCmd represents the asm command
var asmCmd = &cobra.Command{
	Use:   "asm sourceFile",
	Short: "Assemble a program and print its memory image",
	Long: `Asm assembles a Little Man Plus source file and prints the
resulting memory image as a listing: one line per mailbox, with the
address, the encoded cell value, and the source text that produced it.
`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		inf, err := os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &machine.Assembler{Verbose: verbose}
		prog, err := asm.Parse(inf)
		if err != nil {
			return
		}

		for addr, cell := range prog.Cells() {
			node := prog.Debug(addr)
			fmt.Printf("%03d: %6d  ; %v\n", addr, cell, strings.Join(node.Words, " "))
		}

		return
	},
}

func init() {
	rootCmd.AddCommand(asmCmd)
}
