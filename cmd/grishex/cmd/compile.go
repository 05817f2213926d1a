package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grishinium/grishex/internal/bytecode"
	"github.com/grishinium/grishex/internal/compiler"
	"github.com/grishinium/grishex/internal/lexer"
	"github.com/grishinium/grishex/internal/parser"
	"github.com/spf13/cobra"
)

var (
	compileOutputFile  string
	compileDisassemble bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Grishex file to a bytecode artifact",
	Long: `Compile a Grishex source file to a bytecode artifact and save it as
JSON. Parser and compiler errors print to stderr.

Examples:
  grishex compile contract.grx
  grishex compile contract.grx -o contract.json
  grishex compile contract.grx --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output file (default: <input>.json)")
	compileCmd.Flags().BoolVar(&compileDisassemble, "disassemble", false, "print disassembled bytecode to stderr after compiling")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	tokens := lexer.Tokenize(input)
	program, perrs := parser.Parse(tokens, input)
	if len(perrs) > 0 {
		for _, perr := range perrs {
			fmt.Fprintln(os.Stderr, perr.Format(true))
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(perrs))
	}

	c := compiler.NewCompiler()
	artifact, cerrs := c.Compile(program)
	if len(cerrs) > 0 {
		for _, cerr := range cerrs {
			fmt.Fprintln(os.Stderr, cerr.Format(true))
		}
		return fmt.Errorf("compiling %s failed with %d error(s)", filename, len(cerrs))
	}

	if compileDisassemble {
		fmt.Fprintf(os.Stderr, "\n== Disassembled Bytecode (%s) ==\n", filename)
		bytecode.NewDisassembler(os.Stderr).Disassemble(artifact)
		fmt.Fprintln(os.Stderr)
	}

	data, err := bytecode.Serialize(artifact)
	if err != nil {
		return fmt.Errorf("failed to serialize bytecode: %w", err)
	}

	outFile := compileOutputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".json"
		} else {
			outFile = filename + ".json"
		}
	}

	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	return nil
}
