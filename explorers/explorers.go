// Package explorers builds block explorer links for supported networks.
// Local developer chains have no explorer; their URLs come back empty and
// the UI simply doesn't render a link.
package explorers

import (
	"fmt"

	"github.com/pikchain/pikchain/networks"
)

func baseURL(chainID int64) string {
	n, err := networks.GetNetworkByID(chainID)
	if err != nil {
		return ""
	}
	return n.GetExplorerURL()
}

func TxURL(chainID int64, hash string) string {
	base := baseURL(chainID)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", base, hash)
}

func BlockURL(chainID int64, blockNumber uint64) string {
	base := baseURL(chainID)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/block/%d", base, blockNumber)
}

func AddressURL(chainID int64, address string) string {
	base := baseURL(chainID)
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s", base, address)
}
