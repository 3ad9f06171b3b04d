package explorers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pikchain/pikchain/explorers"
)

func TestAmoyURLs(t *testing.T) {
	assert.Equal(t,
		"https://amoy.polygonscan.com/tx/0xdeadbeef",
		explorers.TxURL(80002, "0xdeadbeef"))
	assert.Equal(t,
		"https://amoy.polygonscan.com/block/42",
		explorers.BlockURL(80002, 42))
	assert.Equal(t,
		"https://amoy.polygonscan.com/address/0xabc",
		explorers.AddressURL(80002, "0xabc"))
}

func TestLocalChainsHaveNoExplorer(t *testing.T) {
	assert.Empty(t, explorers.TxURL(31337, "0xdeadbeef"))
	assert.Empty(t, explorers.BlockURL(1337, 42))
	assert.Empty(t, explorers.AddressURL(31337, "0xabc"))
}

func TestUnknownChain(t *testing.T) {
	assert.Empty(t, explorers.TxURL(999, "0xdeadbeef"))
}
