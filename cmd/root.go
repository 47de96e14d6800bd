package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/util"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "riscv-assembler",
	Short: "A two-pass assembler for the RV32I instruction set",
	Long: `riscv-assembler translates RV32I assembly source into 32-bit machine words.

It assembles files from the command line and doubles as a language server
for editor integration, reporting the same diagnostics either way.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		util.LoggingEnabled = viper.GetBool("debug")
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.riscv-assembler.yaml)")
	RootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	RootCmd.PersistentFlags().Int("max-instructions", 0, "maximum number of instructions per program (0 = unbounded)")
	RootCmd.PersistentFlags().Int("max-labels", 0, "maximum number of labels per program (0 = unbounded)")
	RootCmd.PersistentFlags().Int("max-line-length", 0, "maximum source line length (0 = unbounded)")

	viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("max-instructions", RootCmd.PersistentFlags().Lookup("max-instructions"))
	viper.BindPFlag("max-labels", RootCmd.PersistentFlags().Lookup("max-labels"))
	viper.BindPFlag("max-line-length", RootCmd.PersistentFlags().Lookup("max-line-length"))
}

// sessionConfig collects the capacity settings from flags, environment and
// config file into one assembler configuration.
func sessionConfig() assembler.Config {
	return assembler.Config{
		MaxInstructions: viper.GetInt("max-instructions"),
		MaxLabels:       viper.GetInt("max-labels"),
		MaxLineLength:   viper.GetInt("max-line-length"),
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".riscv-assembler")
	}

	viper.SetEnvPrefix("riscv_asm")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
