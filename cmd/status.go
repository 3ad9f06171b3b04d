package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/pikchain/pikchain/config"
	"github.com/pikchain/pikchain/networks"
)

// statusCmd checks whether the gallery contract actually has bytecode at
// its address on the selected chain. This is how "wrong network" and "not
// deployed yet" get diagnosed instead of showing up as mysterious call
// failures later.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the gallery contract is deployed and reachable",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp()
		if err != nil {
			fmt.Printf("Couldn't initialize: %s\n", err)
			return
		}
		addr := config.ResolvedContractAddress()
		if addr == "" {
			fmt.Printf("No contract address configured. Use --contract or set %s.\n", config.CONTRACT_ADDRESS_VAR)
			return
		}

		s := spinner.New(spinner.CharSets[4], 100*time.Millisecond)
		s.Prefix = fmt.Sprintf("Probing %s on %s ", addr, networks.Label(a.ChainID))
		s.Start()
		ready, err := a.Prober.IsReady(addr, a.ChainID)
		s.Stop()

		switch {
		case err != nil:
			fmt.Printf("%s couldn't reach %s: %s\n", aurora.Red("UNREACHABLE"), networks.Label(a.ChainID), err)
		case ready:
			fmt.Printf("%s contract %s is deployed on %s\n", aurora.Green("READY"), addr, networks.Label(a.ChainID))
		default:
			fmt.Printf("%s no bytecode at %s on %s. %s\n",
				aurora.Red("NOT DEPLOYED"), addr, networks.Label(a.ChainID), networks.SwitchHint(a.ChainID))
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
