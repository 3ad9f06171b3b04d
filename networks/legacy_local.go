package networks

import (
	"time"
)

// LegacyLocal is the pre-hardhat developer chain id that older wallet setups
// still report. It points at the same local node as HardhatLocal.
var LegacyLocal Network = NewLegacyLocal()

type legacyLocal struct{}

func NewLegacyLocal() *legacyLocal {
	return &legacyLocal{}
}

func (self *legacyLocal) GetName() string {
	return "legacy-local"
}

func (self *legacyLocal) GetChainID() int64 {
	return 1337
}

func (self *legacyLocal) GetAlternativeNames() []string {
	return []string{"ganache"}
}

func (self *legacyLocal) GetNativeTokenSymbol() string {
	return "ETH"
}

func (self *legacyLocal) GetBlockTime() time.Duration {
	return 1 * time.Second
}

func (self *legacyLocal) IsLocal() bool {
	return true
}

func (self *legacyLocal) GetLabel() string {
	return "Localhost (chain 1337)"
}

func (self *legacyLocal) GetSwitchHint() string {
	return "Localhost (chain 1337)"
}

func (self *legacyLocal) GetNodeVariableName() string {
	return "PIKCHAIN_LOCAL_NODE"
}

func (self *legacyLocal) GetDefaultNodes() map[string]string {
	return map[string]string{
		"local": "http://127.0.0.1:8545",
	}
}

func (self *legacyLocal) GetExplorerURL() string {
	return ""
}
