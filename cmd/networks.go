package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pikchain/pikchain/networks"
)

var listNetworkCmd = &cobra.Command{
	Use:   "networks",
	Short: "Show all networks supported by pikchain",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		supported := networks.GetSupportedNetworks()
		fmt.Printf("Supported networks (%d):\n", len(supported))
		for i, n := range supported {
			fmt.Printf("%d. %s (chain id: %d)", i+1, n.GetName(), n.GetChainID())
			if len(n.GetAlternativeNames()) > 0 {
				fmt.Printf(", aka: %s", strings.Join(n.GetAlternativeNames(), ", "))
			}
			fmt.Printf("\n")
			fmt.Printf("   native token: %s, block time: %s, node env var: %s\n",
				n.GetNativeTokenSymbol(), n.GetBlockTime(), n.GetNodeVariableName())
			if n.GetExplorerURL() != "" {
				fmt.Printf("   explorer: %s\n", n.GetExplorerURL())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listNetworkCmd)
}
