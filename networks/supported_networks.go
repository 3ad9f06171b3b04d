package networks

import (
	"fmt"
)

// The supported set is closed: two local developer chains and one public
// network. Gallery data on any other chain id is coerced by ResolveTarget.
var supportedNetworks = []Network{
	HardhatLocal,
	LegacyLocal,
	Amoy,
}

var globalSupportedNetworks = newSupportedNetworks()

var ErrNetworkNotFound = fmt.Errorf("network not found")

type networkRegistry struct {
	networks     map[string]Network
	networksByID map[int64]Network
}

func newSupportedNetworks() *networkRegistry {
	result := networkRegistry{
		map[string]Network{},
		map[int64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(
				fmt.Errorf(
					"network with name or alternative name of '%s' already exists",
					n.GetName(),
				),
			)
		}
		result.networks[n.GetName()] = n
		for _, altName := range n.GetAlternativeNames() {
			if _, found := result.networks[altName]; found {
				panic(
					fmt.Errorf(
						"network with name or alternative name of '%s' already exists",
						altName,
					),
				)
			}
			result.networks[altName] = n
		}
		result.networksByID[n.GetChainID()] = n
	}
	return &result
}

func (n *networkRegistry) getNetwork(name string) (Network, error) {
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networkRegistry) getNetworkByID(id int64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id int64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworks() []Network {
	return append([]Network{}, supportedNetworks...)
}
