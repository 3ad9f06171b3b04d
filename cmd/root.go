package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pikchain/pikchain/app"
	"github.com/pikchain/pikchain/config"
	"github.com/pikchain/pikchain/networks"
)

var rootCmd = &cobra.Command{
	Use:   "pikchain",
	Short: "Browse and verify your on-chain photo gallery even when the infra is flaky",
	Long: `Pikchain is a command line companion for the pikchain photo gallery. It reads
the gallery contract, fetches images from IPFS and keeps track of your
transactions, and it is built to stay usable when the infrastructure isn't:

	1. Images are fetched through a ranked list of IPFS gateways with
	automatic failover, so one dead gateway never blanks your gallery.

	2. Chain reads are cached locally; when every RPC endpoint is down you
	still see your last known gallery, clearly marked as stale.

	3. Submitted transactions are tracked in a local durable history that
	survives restarts and is reconciled against the chain on every run.

	4. Before any write the target contract is probed for actual deployed
	bytecode, so "not deployed yet" never masquerades as a broken app.

Supported networks: hardhat (31337), legacy-local (1337) and amoy (80002).
Any other chain id falls back to the default local chain. Custom RPC nodes
can be set per network via PIKCHAIN_LOCAL_NODE / PIKCHAIN_AMOY_NODES and the
gateway list via PIKCHAIN_GATEWAYS (comma-separated, ranked).`,
}

// buildApp constructs the per-invocation context from flags and env.
func buildApp() (*app.App, error) {
	chainID := int64(0)
	if config.Network != "" {
		n, err := networks.GetNetwork(config.Network)
		if err != nil {
			return nil, err
		}
		chainID = n.GetChainID()
	}
	chainID = networks.ResolveTarget(chainID)

	network, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if config.Debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	return app.New(app.Options{
		RawChainID:      chainID,
		ContractAddress: config.ResolvedContractAddress(),
		Gateways:        config.Gateways(),
		VerifyContent:   config.VerifyContent,
		StorePath:       config.StorePath,
		NodeOverrides:   config.NodeOverrides(network),
		Logger:          logger,
	})
}

func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "hardhat", "target network. Valid values: \"hardhat\", \"localhost\", \"legacy-local\", \"amoy\".")
	rootCmd.PersistentFlags().StringVarP(&config.Account, "account", "a", "", "wallet address the gallery belongs to")
	rootCmd.PersistentFlags().StringVarP(&config.ContractAddress, "contract", "c", "", "gallery contract address (falls back to PIKCHAIN_CONTRACT_ADDRESS)")
	rootCmd.PersistentFlags().BoolVar(&config.UseLocalIPFS, "local-ipfs", false, "put the local IPFS daemon first in the gateway list")
	rootCmd.PersistentFlags().BoolVar(&config.VerifyContent, "verify", false, "hash fetched content against its cid where the cid format allows it")
	rootCmd.PersistentFlags().StringVar(&config.StorePath, "store", "", "path of the local durable store (default ~/.pikchain/store.json)")
	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
