package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grishinium/grishex/internal/compiler"
	"github.com/grishinium/grishex/internal/lexer"
	"github.com/grishinium/grishex/internal/parser"
	"github.com/grishinium/grishex/internal/vm"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr  string
	runDeploy    string
	runDeployArg string
	runCall      string
	runArgs      string
	runShowLogs  bool
	runShowStats bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile, deploy, and call a Grishex contract",
	Long: `Compile a Grishex source file, deploy one contract, and optionally
call one of its functions, printing the return value, emitted logs, and
execution statistics.

Examples:
  grishex run contract.grx --deploy SimpleToken --deploy-args "Grishinium,GRISH,18"
  grishex run contract.grx --deploy SimpleToken --call getName
  grishex run -e "contract C { function f() returns int { return 1+1; } }" --deploy C --call f`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().StringVar(&runDeploy, "deploy", "", "name of the contract to deploy")
	runCmd.Flags().StringVar(&runDeployArg, "deploy-args", "", "comma-separated constructor arguments")
	runCmd.Flags().StringVar(&runCall, "call", "", "name of the function to call after deploying")
	runCmd.Flags().StringVar(&runArgs, "args", "", "comma-separated arguments for --call")
	runCmd.Flags().BoolVar(&runShowLogs, "show-logs", true, "print emitted event logs")
	runCmd.Flags().BoolVar(&runShowStats, "show-stats", true, "print execution statistics")
}

func runRun(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(runEvalExpr, args)
	if err != nil {
		return err
	}

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

	machine := vm.NewVM()
	machine.LoadContract(artifact)

	if runDeploy == "" {
		fmt.Println("Compiled successfully; pass --deploy <Contract> to run it")
		return nil
	}

	address, err := machine.DeployContract(runDeploy, parseArgList(runDeployArg))
	if err != nil {
		return fmt.Errorf("deploying %s failed: %w", runDeploy, err)
	}
	fmt.Printf("Deployed %s at %s\n", runDeploy, address)

	if runCall != "" {
		result, err := machine.ExecuteFunction(runDeploy, runCall, parseArgList(runArgs), address)
		if err != nil {
			return fmt.Errorf("calling %s.%s failed: %w", runDeploy, runCall, err)
		}
		fmt.Printf("%s.%s() = %v\n", runDeploy, runCall, result.GoValue())
	}

	if runShowLogs {
		for _, entry := range machine.GetLogs() {
			data, _ := json.Marshal(entry.Data)
			fmt.Printf("log: %s.%s%s\n", entry.Contract, entry.Event, data)
		}
	}

	if runShowStats {
		stats := machine.GetStats()
		fmt.Printf("gas used: %d, instructions: %d, calls: %d\n",
			stats.GasUsed, stats.InstructionsExecuted, stats.FunctionCalls)
	}

	return nil
}

// parseArgList splits a comma-separated CLI argument list into VM values,
// guessing int/uint/bool/string by literal shape since the CLI has no
// access to the callee's declared parameter types.
func parseArgList(raw string) []vm.Value {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]vm.Value, len(parts))
	for i, part := range parts {
		out[i] = parseArgValue(strings.TrimSpace(part))
	}
	return out
}

func parseArgValue(s string) vm.Value {
	switch s {
	case "true":
		return vm.Bool(true)
	case "false":
		return vm.Bool(false)
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return vm.Uint(u)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return vm.Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return vm.Float(f)
	}
	return vm.String(s)
}
