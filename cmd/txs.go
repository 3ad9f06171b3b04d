package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/pikchain/pikchain/config"
	"github.com/pikchain/pikchain/explorers"
	"github.com/pikchain/pikchain/networks"
	"github.com/pikchain/pikchain/tracker"
)

// txsCmd prints the local transaction history after reconciling it against
// the chain, so entries that settled while the app was closed show their
// final status.
var txsCmd = &cobra.Command{
	Use:   "txs",
	Short: "Show your transaction history, reconciled against the chain",
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

		updated := a.Tracker.ReconcileAll(a.ChainID, config.Account)
		if updated > 0 {
			fmt.Printf("Reconciled %d transaction(s) that settled while you were away.\n", updated)
		}

		items := a.Tracker.List(a.ChainID, config.Account)
		if len(items) == 0 {
			fmt.Printf("No transactions recorded for %s on %s.\n", config.Account, networks.Label(a.ChainID))
			return
		}
		fmt.Printf("Transactions of %s on %s:\n", config.Account, networks.Label(a.ChainID))
		for i, item := range items {
			printTx(i+1, a.ChainID, item)
		}
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [tx hash]",
	Short: "Track a transaction until it settles",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		if config.Account == "" {
			fmt.Printf("Please specify the wallet address with --account\n")
			return
		}
		if len(args) != 1 {
			fmt.Printf("Please specify exactly one tx hash\n")
			return
		}
		a, err := buildApp()
		if err != nil {
			fmt.Printf("Couldn't initialize: %s\n", err)
			return
		}
		hash := args[0]

		a.Tracker.Track(a.ChainID, config.Account, tracker.TrackedTransaction{Hash: hash})

		s := spinner.New(spinner.CharSets[4], 100*time.Millisecond)
		s.Prefix = fmt.Sprintf("Waiting for %s to be mined ", hash)
		s.Start()
		item, err := a.Tracker.Watch(context.Background(), a.ChainID, config.Account, hash)
		s.Stop()
		if err != nil {
			fmt.Printf("Couldn't track %s: %s\n", hash, err)
			fmt.Printf("It stays in your history and will be reconciled on the next run.\n")
			return
		}
		printTx(1, a.ChainID, item)
	},
}

func printTx(index int, chainID int64, item tracker.TrackedTransaction) {
	fmt.Printf("  %d. %s  %s", index, item.Hash, coloredStatus(item.Status))
	if item.Action != "" {
		fmt.Printf("  %s", item.Action)
	}
	fmt.Printf("\n")
	if item.BlockNumber != 0 {
		fmt.Printf("     block %d", item.BlockNumber)
		if item.BlockTimestamp != 0 {
			fmt.Printf(" at %s", time.UnixMilli(item.BlockTimestamp).Format("2006-01-02 15:04:05"))
		}
		if item.GasUsed != 0 {
			fmt.Printf(", gas used %d", item.GasUsed)
		}
		fmt.Printf("\n")
	}
	if url := explorers.TxURL(chainID, item.Hash); url != "" {
		fmt.Printf("     %s\n", url)
	}
}

func coloredStatus(status tracker.Status) aurora.Value {
	switch status {
	case tracker.StatusSuccess:
		return aurora.Green(string(status))
	case tracker.StatusFailed:
		return aurora.Red(string(status))
	default:
		return aurora.Yellow(string(status))
	}
}

func init() {
	rootCmd.AddCommand(txsCmd)
	txsCmd.AddCommand(watchCmd)
}
