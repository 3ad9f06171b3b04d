package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pikchain/pikchain/gateway"
	"github.com/pikchain/pikchain/networks"
)

// Set by cobra flags on the root command.
var (
	Network         string
	Account         string
	ContractAddress string
	UseLocalIPFS    bool
	VerifyContent   bool
	StorePath       string
	Debug           bool
)

const (
	GATEWAYS_VAR         = "PIKCHAIN_GATEWAYS"
	CONTRACT_ADDRESS_VAR = "PIKCHAIN_CONTRACT_ADDRESS"
)

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Gateways returns the ranked gateway list for the session. The env var
// overrides everything; otherwise the local toggle decides whether the
// developer's own IPFS daemon goes first.
func Gateways() []string {
	if raw := os.Getenv(GATEWAYS_VAR); strings.TrimSpace(raw) != "" {
		if urls := splitList(raw); len(urls) > 0 {
			return urls
		}
	}
	if UseLocalIPFS {
		return gateway.LocalGateways()
	}
	return gateway.DefaultGateways()
}

// NodeOverrides reads the network's node env var, comma-separated URLs.
// An empty map means "use the network defaults".
func NodeOverrides(n networks.Network) map[string]string {
	raw := strings.TrimSpace(os.Getenv(n.GetNodeVariableName()))
	if raw == "" {
		return nil
	}
	nodes := map[string]string{}
	for i, url := range splitList(raw) {
		nodes[nodeName(n, i)] = url
	}
	return nodes
}

func nodeName(n networks.Network, i int) string {
	return fmt.Sprintf("%s-custom-%d", strings.ToLower(n.GetName()), i)
}

// ResolvedContractAddress prefers the flag, then the env var.
func ResolvedContractAddress() string {
	if ContractAddress != "" {
		return ContractAddress
	}
	return strings.TrimSpace(os.Getenv(CONTRACT_ADDRESS_VAR))
}
