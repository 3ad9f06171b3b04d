package networks

import (
	"time"
)

var Amoy Network = NewAmoy()

type amoy struct{}

func NewAmoy() *amoy {
	return &amoy{}
}

func (self *amoy) GetName() string {
	return "amoy"
}

func (self *amoy) GetChainID() int64 {
	return 80002
}

func (self *amoy) GetAlternativeNames() []string {
	return []string{"polygon-amoy"}
}

func (self *amoy) GetNativeTokenSymbol() string {
	return "POL"
}

func (self *amoy) GetBlockTime() time.Duration {
	return 2 * time.Second
}

func (self *amoy) IsLocal() bool {
	return false
}

func (self *amoy) GetLabel() string {
	return "Polygon Amoy (80002)"
}

func (self *amoy) GetSwitchHint() string {
	return "Polygon Amoy (80002)"
}

func (self *amoy) GetNodeVariableName() string {
	return "PIKCHAIN_AMOY_NODES"
}

// Browser CORS and rate limits break individual public RPCs often enough
// that we keep several endpoints around for fallback.
func (self *amoy) GetDefaultNodes() map[string]string {
	return map[string]string{
		"polygon":    "https://rpc-amoy.polygon.technology",
		"publicnode": "https://polygon-amoy-bor-rpc.publicnode.com",
		"ankr":       "https://rpc.ankr.com/polygon_amoy",
		"drpc":       "https://polygon-amoy.drpc.org",
	}
}

func (self *amoy) GetExplorerURL() string {
	return "https://amoy.polygonscan.com"
}
