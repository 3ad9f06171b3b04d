package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/pikchain/pikchain/config"
	"github.com/pikchain/pikchain/gateway"
)

var (
	DownloadAll bool
	DownloadDir string
)

// downloadCmd fetches photo content through the ranked gateway list. A
// single dead gateway only costs one failed attempt; the command fails only
// when every gateway has been tried.
var downloadCmd = &cobra.Command{
	Use:   "download [cid...]",
	Short: "Download photos from IPFS with gateway failover",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := buildApp()
		if err != nil {
			fmt.Printf("Couldn't initialize: %s\n", err)
			return
		}

		cids := args
		if DownloadAll {
			if config.Account == "" {
				fmt.Printf("Please specify the wallet address with --account\n")
				return
			}
			all, _, stale, err := a.Service.CIDs(config.Account)
			if err != nil {
				fmt.Printf("Couldn't read the gallery: %s\n", err)
				return
			}
			if stale {
				fmt.Printf("%s\n", aurora.Yellow("WARNING: using your last known gallery, it might be outdated."))
			}
			cids = all
		}
		if len(cids) == 0 {
			fmt.Printf("Nothing to download. Pass CIDs as arguments or use --all.\n")
			return
		}

		exporter := gateway.NewExporter(a.Resolver, DownloadDir, a.Logger)

		s := spinner.New(spinner.CharSets[4], 100*time.Millisecond)
		s.Prefix = fmt.Sprintf("Downloading %d photo(s) ", len(cids))
		s.Start()
		results := exporter.DownloadAll(context.Background(), cids)
		s.Stop()

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("%s %s: %s\n", aurora.Red("FAILED"), r.CID, summarizeFetchError(r.Err))
			} else {
				fmt.Printf("%s %s -> %s\n", aurora.Green("OK"), r.CID, r.Path)
			}
		}
		fmt.Printf("Done. %d succeeded, %d failed.\n", len(results)-failed, failed)
	},
}

// summarizeFetchError keeps the per-gateway attempt log out of the one-line
// summary but still shows it when every gateway was tried.
func summarizeFetchError(err error) string {
	var exhausted *gateway.ExhaustedError
	if errors.As(err, &exhausted) {
		out := fmt.Sprintf("all %d gateways failed:", len(exhausted.Attempts))
		for _, attempt := range exhausted.Attempts {
			out += fmt.Sprintf("\n    %s", attempt)
		}
		return out
	}
	return err.Error()
}

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().BoolVar(&DownloadAll, "all", false, "download every photo in the gallery of --account")
	downloadCmd.Flags().StringVarP(&DownloadDir, "dir", "d", ".", "directory to save photos into")
}
