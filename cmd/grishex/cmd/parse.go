package cmd

import (
	"fmt"
	"os"

	"github.com/grishinium/grishex/internal/lexer"
	"github.com/grishinium/grishex/internal/parser"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Grishex file and print its AST",
	Long: `Parse a Grishex source file and print each top-level declaration
as source-like text, with binary and unary expressions fully
parenthesized. Parser errors print to stderr; the command exits
non-zero if any are found.

Examples:
  grishex parse contract.grx
  grishex parse -e "contract C { }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens := lexer.Tokenize(input)
	program, errs := parser.Parse(tokens, input)

	if len(errs) > 0 {
		for _, perr := range errs {
			fmt.Fprintln(os.Stderr, perr.Format(true))
		}
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	for _, decl := range program.Declarations {
		fmt.Println(decl.String())
	}
	return nil
}
