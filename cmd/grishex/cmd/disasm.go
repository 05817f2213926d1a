package cmd

import (
	"fmt"
	"os"

	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/spf13/cobra"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [artifact.json]",
	Short: "Disassemble a compiled bytecode artifact",
	Long: `Load a bytecode artifact produced by "grishex compile" and print a
human-readable disassembly of every contract's functions.

Examples:
  grishex disasm contract.json`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func runDisasm(_ *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	artifact, err := bytecode.Deserialize(data)
	if err != nil {
		return fmt.Errorf("failed to deserialize %s: %w", filename, err)
	}

	return bytecode.NewDisassembler(os.Stdout).Disassemble(artifact)
}
