package cmd

import (
	"fmt"
	"os"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm path/ROM",
	Short: "print an assembly listing of a ROM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rom, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading rom %q: %w", args[0], err)
		}
		return cpu.Disassemble(cmd.OutOrStdout(), rom)
	},
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}
