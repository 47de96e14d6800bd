package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
)

var outputPath string

var assembleCmd = &cobra.Command{
	Use:   "assemble <file>",
	Short: "Assemble a source file into machine words",
	Long: `Assemble reads RV32I assembly from a file ("-" for stdin), reports any
diagnostics on stderr, and writes one machine word per line to the output.
No output is written when the source has errors.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args[0])
		if err != nil {
			return err
		}

		program := assembler.NewSession(sessionConfig()).Assemble(source)
		printDiagnostics(args[0], program.Diagnostics)
		if assembler.HasErrors(program.Diagnostics) {
			errorCount := 0
			for _, d := range program.Diagnostics {
				if d.Severity == assembler.SeverityError {
					errorCount++
				}
			}
			return fmt.Errorf("assembly failed with %d errors", errorCount)
		}

		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeOut()

		switch format := viper.GetString("format"); format {
		case "hex":
			return assembler.WriteHex(out, program.Words)
		case "binary":
			return assembler.WriteBinary(out, program.Words)
		default:
			return fmt.Errorf("unknown output format %q (want hex or binary)", format)
		}
	},
}

func init() {
	RootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	assembleCmd.Flags().StringP("format", "f", "hex", "output format: hex or binary")
	viper.BindPFlag("format", assembleCmd.Flags().Lookup("format"))
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// printDiagnostics writes one line per diagnostic in the conventional
// file:line:column form, one-based for human consumption.
func printDiagnostics(path string, diagnostics []assembler.Diagnostic) {
	for _, d := range diagnostics {
		severity := "error"
		if d.Severity == assembler.SeverityWarning {
			severity = "warning"
		}
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n",
			path, d.Range.Start.Line+1, d.Range.Start.Char+1, severity, d.Message)
	}
}
