package networks

import (
	"time"
)

var HardhatLocal Network = NewHardhatLocal()

type hardhatLocal struct{}

func NewHardhatLocal() *hardhatLocal {
	return &hardhatLocal{}
}

func (self *hardhatLocal) GetName() string {
	return "hardhat"
}

func (self *hardhatLocal) GetChainID() int64 {
	return 31337
}

func (self *hardhatLocal) GetAlternativeNames() []string {
	return []string{"localhost", "local"}
}

func (self *hardhatLocal) GetNativeTokenSymbol() string {
	return "ETH"
}

func (self *hardhatLocal) GetBlockTime() time.Duration {
	return 1 * time.Second
}

func (self *hardhatLocal) IsLocal() bool {
	return true
}

func (self *hardhatLocal) GetLabel() string {
	return "Localhost (Hardhat 31337)"
}

func (self *hardhatLocal) GetSwitchHint() string {
	return "Localhost (chain 31337)"
}

func (self *hardhatLocal) GetNodeVariableName() string {
	return "PIKCHAIN_LOCAL_NODE"
}

func (self *hardhatLocal) GetDefaultNodes() map[string]string {
	return map[string]string{
		"hardhat": "http://127.0.0.1:8545",
	}
}

func (self *hardhatLocal) GetExplorerURL() string {
	return ""
}
