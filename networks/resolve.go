package networks

import (
	"strconv"
	"strings"
)

const (
	DefaultLocalChainID int64 = 31337
	LegacyLocalChainID  int64 = 1337
	AmoyChainID         int64 = 80002
)

// ParseChainID turns a raw chain id string (decimal or 0x-hex, as wallets
// report it) into an int64. Returns 0 when the string doesn't parse, which
// downstream resolution treats the same as an absent chain id.
func ParseChainID(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		id, err := strconv.ParseInt(raw[2:], 16, 64)
		if err != nil {
			return 0
		}
		return id
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func IsSupported(chainID int64) bool {
	_, err := GetNetworkByID(chainID)
	return err == nil
}

func IsLocal(chainID int64) bool {
	n, err := GetNetworkByID(chainID)
	if err != nil {
		return false
	}
	return n.IsLocal()
}

// ResolveTarget decides which chain the session should actually talk to.
// A supported local id is kept as-is, any other supported id is coerced to
// the single public network, and an absent or unsupported id falls back to
// the default local chain. Always returns a supported chain id.
func ResolveTarget(rawChainID int64) int64 {
	if IsSupported(rawChainID) {
		if IsLocal(rawChainID) {
			return rawChainID
		}
		return AmoyChainID
	}
	return DefaultLocalChainID
}

func Label(chainID int64) string {
	n, err := GetNetworkByID(chainID)
	if err != nil {
		n = HardhatLocal
	}
	return n.GetLabel()
}

func SwitchHint(targetChainID int64) string {
	n, err := GetNetworkByID(targetChainID)
	if err != nil {
		n = HardhatLocal
	}
	return n.GetSwitchHint()
}
