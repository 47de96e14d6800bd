package cmd

import (
	"github.com/spf13/cobra"

	"github.gatech.edu/ECEInnovation/RISC-V-Assembler/languageServer"
)

var (
	lspTCPAddr string
	lspWSAddr  string
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the language server",
	Long: `Lsp starts the language server. By default it speaks over stdin/stdout,
which is how editors usually spawn it; --tcp and --ws bind network
listeners instead, for clients that connect remotely.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := languageServer.NewServer(sessionConfig())
		switch {
		case lspTCPAddr != "":
			return server.ListenAndServeTCP(lspTCPAddr)
		case lspWSAddr != "":
			return server.ListenAndServeWebSocket(lspWSAddr)
		default:
			server.ListenAndServe()
			return nil
		}
	},
}

func init() {
	RootCmd.AddCommand(lspCmd)
	lspCmd.Flags().StringVar(&lspTCPAddr, "tcp", "", "listen for TCP connections on this address (e.g. :2035)")
	lspCmd.Flags().StringVar(&lspWSAddr, "ws", "", "listen for websocket connections on this address")
}
