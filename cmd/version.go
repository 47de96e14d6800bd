package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridable at link time.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the assembler version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("riscv-assembler %s\n", Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
