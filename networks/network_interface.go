package networks

import (
	"time"
)

type Network interface {
	GetName() string
	GetChainID() int64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetBlockTime() time.Duration

	// IsLocal reports whether the chain is a developer chain running on the
	// user's machine as opposed to a remote public network.
	IsLocal() bool

	// GetLabel returns a human readable label shown next to gallery data.
	GetLabel() string
	// GetSwitchHint returns the label used when asking the user to switch
	// their wallet to this network.
	GetSwitchHint() string

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetExplorerURL returns the base URL of the chain's block explorer,
	// empty string when the chain has none.
	GetExplorerURL() string
}
