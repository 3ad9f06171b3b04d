package cmd

import (
	"errors"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/pikchain/pikchain/config"
	"github.com/pikchain/pikchain/networks"
	"github.com/pikchain/pikchain/photoblock"
)

// galleryCmd lists the caller's gallery. It degrades instead of failing:
// a stale cached gallery is shown with a warning when every node is down,
// and a missing contract is reported as "not deployed here", not as an
// application error.
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "List the photos (CIDs) in your on-chain gallery",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		if config.Account == "" {
			fmt.Printf("Please specify the wallet address with --account\n")
			return
		}
		a, err := buildApp()
		if err != nil {
			fmt.Printf("Couldn't initialize: %s\n", err)
			return
		}
		// an unreachable chain must not blank the gallery: skip the probe
		// result and let the read path serve its cached copy
		if err := a.Service.EnsureReady(); err != nil {
			if errors.Is(err, photoblock.ErrContractNotReady) {
				fmt.Printf("The gallery contract is not deployed on %s. %s\n",
					networks.Label(a.ChainID), networks.SwitchHint(a.ChainID))
				return
			}
			fmt.Printf("%s\n", aurora.Yellow(fmt.Sprintf(
				"WARNING: couldn't reach %s to check the contract (%s), trying anyway.",
				networks.Label(a.ChainID), err)))
		}

		cids, counts, stale, err := a.Service.CIDs(config.Account)
		if err != nil {
			fmt.Printf("Couldn't read the gallery: %s\n", err)
			return
		}
		if stale {
			fmt.Printf("%s\n", aurora.Yellow("WARNING: all nodes are unreachable, showing your last known gallery. It might be outdated."))
		}

		username, _, err := a.Service.Username(config.Account)
		if err == nil && username != "" {
			fmt.Printf("Gallery of %s (%s) on %s:\n", username, config.Account, networks.Label(a.ChainID))
		} else {
			fmt.Printf("Gallery of %s on %s:\n", config.Account, networks.Label(a.ChainID))
		}
		if len(cids) == 0 {
			fmt.Printf("  (empty)\n")
			return
		}
		for i, c := range cids {
			if counts[c] > 1 {
				fmt.Printf("  %d. %s (x%d)\n", i+1, c, counts[c])
			} else {
				fmt.Printf("  %d. %s\n", i+1, c)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
}
