package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weavedata/weave/pkg/collaborators/sqlobject"
	"github.com/weavedata/weave/pkg/collaborators/textobject"
	"github.com/weavedata/weave/pkg/kernel"
	"github.com/weavedata/weave/pkg/operations/corpus"
	"github.com/weavedata/weave/pkg/output"
)

var version = "dev"

var (
	flagNoColor   bool
	flagRetryFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "weave",
	Short:   "weave - a multiple-dispatch operation kernel",
	Long:    `weave dispatches one operation name to the registered implementation that best matches the representations its operands expose, retrying under a different representation when an implementation asks for it.`,
	Version: version,
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "Inspect and run registered operations",
}

var opsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered operation names",
	RunE:  runOpsList,
}

var opsExplainCmd = &cobra.Command{
	Use:   "explain <name>",
	Short: "Show the operand/parameter shape of a registered operation",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpsExplain,
}

var opsDemoCmd = &cobra.Command{
	Use:   "demo <name>",
	Short: "Run a canned demonstration of one sample operation",
	Long: `Run a canned demonstration of one sample operation.

Available demos:
  - upper:            dispatch on a text object's representation
  - join:             retry from a sql/sql join down to sql/rows
  - window_aggregate: a nested façade call with its own retry cycle guard
  - extract:          dispatch on a real sqlite-backed SQL object`,
	Args: cobra.ExactArgs(1),
	RunE: runOpsDemo,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagRetryFile, "retry-policy", "", "Path to a retry policy YAML file (defaults to the nearest .weave.yaml)")

	opsCmd.AddCommand(opsListCmd)
	opsCmd.AddCommand(opsExplainCmd)
	opsCmd.AddCommand(opsDemoCmd)
	rootCmd.AddCommand(opsCmd)
}

func runOpsList(cmd *cobra.Command, args []string) error {
	names := corpus.Default().Names()
	if len(names) == 0 {
		fmt.Println("No operations registered.")
		return nil
	}

	fmt.Println("REGISTERED OPERATIONS")
	fmt.Println("======================")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("\nTotal: %d\n", len(names))
	return nil
}

func runOpsExplain(cmd *cobra.Command, args []string) error {
	name := args[0]

	proto, err := corpus.Default().OperationPrototype(name)
	if err != nil {
		return fmt.Errorf("unknown operation: %s", name)
	}

	fmt.Printf("OPERATION: %s\n", name)
	fmt.Printf("OPERANDS (%d): %v\n", proto.OperandCount, proto.Operands)
	if len(proto.Parameters) > 0 {
		fmt.Printf("PARAMETERS: %v\n", proto.Parameters)
	}
	return nil
}

func runOpsDemo(cmd *cobra.Command, args []string) error {
	name := args[0]

	ctx, err := demoContext()
	if err != nil {
		return err
	}

	switch name {
	case "upper":
		return demoUpper(ctx)
	case "join":
		return demoJoin(ctx)
	case "window_aggregate":
		return demoWindowAggregate(ctx)
	case "extract":
		return demoExtract(ctx)
	default:
		return fmt.Errorf("unknown demo: %s (try: upper, join, window_aggregate, extract)", name)
	}
}

// demoContext returns corpus's shared default OperationContext, with a
// colored trace logger attached so every
// dispatch and retry decision prints as it happens, and the nearest
// .weave.yaml retry policy applied (--retry-policy overrides the
// search).
func demoContext() (*kernel.OperationContext, error) {
	shared := corpus.Default()
	shared.Logger = output.NewTraceLogger().WithNoColor(flagNoColor)

	policyPath := flagRetryFile
	if policyPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, err := kernel.FindRetryPolicy(cwd)
		if err != nil {
			return nil, err
		}
		policyPath = found
	}

	if policyPath == "" {
		return shared, nil
	}

	policy, err := kernel.LoadRetryPolicy(policyPath)
	if err != nil {
		return nil, fmt.Errorf("load retry policy %s: %w", policyPath, err)
	}
	shared.ApplyPolicy(policy)
	return shared, nil
}

func demoUpper(ctx *kernel.OperationContext) error {
	obj := textobject.New("windchimes")
	result, err := ctx.O("upper").Call([]any{obj})
	if err != nil {
		return err
	}
	fmt.Printf("upper(%q) = %v\n", "windchimes", result)
	return nil
}

func demoJoin(ctx *kernel.OperationContext) error {
	local := corpus.NewDataset("local", "sql", "rows")
	remote := corpus.NewDataset("remote", "sql", "rows")

	same, err := ctx.O("join").Call([]any{local, local})
	if err != nil {
		return err
	}
	fmt.Printf("join(local, local) = %v\n", same)

	different, err := ctx.O("join").Call([]any{local, remote})
	if err != nil {
		return err
	}
	fmt.Printf("join(local, remote) = %v\n", different)
	return nil
}

func demoWindowAggregate(ctx *kernel.OperationContext) error {
	dataset := corpus.NewDataset("", "sql", "rows")

	if _, err := ctx.O("window_aggregate").Call([]any{dataset}, true); err != nil {
		return err
	}
	fmt.Printf("window_aggregate(fail=true) => %q\n", dataset.Payload)

	dataset.Payload = ""
	if _, err := ctx.O("window_aggregate").Call([]any{dataset}, false); err != nil {
		return err
	}
	fmt.Printf("window_aggregate(fail=false) => %q\n", dataset.Payload)
	return nil
}

func demoExtract(ctx *kernel.OperationContext) error {
	db, err := sqlobject.Open(":memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE words (word TEXT)`); err != nil {
		return err
	}
	if _, err := db.Exec(`INSERT INTO words (word) VALUES ('hello'), ('weave')`); err != nil {
		return err
	}

	obj := sqlobject.New(db, `SELECT word FROM words ORDER BY word`)
	result, err := ctx.O("extract").Call([]any{obj})
	if err != nil {
		return err
	}
	fmt.Printf("extract(sql object) = %v\n", result)
	return nil
}
