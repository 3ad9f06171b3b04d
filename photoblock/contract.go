package photoblock

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// The slice of the gallery contract the read path needs. Writes (addCID,
// setUsername) go through the user's wallet, not through here.
const contractABIJSON = `[
	{
		"type": "function",
		"name": "getCIDs",
		"inputs": [],
		"outputs": [{"name": "", "type": "string[]"}],
		"stateMutability": "view"
	},
	{
		"type": "function",
		"name": "getUsername",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "string"}],
		"stateMutability": "view"
	}
]`

var (
	contractABI     *abi.ABI
	contractABIOnce sync.Once
)

func GetContractABI() *abi.ABI {
	contractABIOnce.Do(func() {
		parsed, err := abi.JSON(strings.NewReader(contractABIJSON))
		if err != nil {
			// the ABI is a compile-time constant, a parse failure is a bug
			panic(err)
		}
		contractABI = &parsed
	})
	return contractABI
}
