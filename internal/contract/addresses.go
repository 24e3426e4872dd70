package contract

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment holds the contract and wallet addresses for one chain.
type Deployment struct {
	Token      common.Address
	Staking    common.Address
	RewardPool common.Address
	Admin      common.Address
	TaxWallet  common.Address
}

// ChainInfo describes a supported network.
type ChainInfo struct {
	Name     string
	Symbol   string
	Explorer string
}

var deployments = map[uint64]Deployment{
	1:        {},
	11155111: {},
	97: {
		Token:      common.HexToAddress("0x7c2aa941970f29d3f0df35262dec8ec59583bc2d"),
		Staking:    common.HexToAddress("0x7c2aa941970f29d3f0df35262dec8ec59583bc2d"),
		RewardPool: common.HexToAddress("0x95ba02678B6C19E2e4b10E8041ff13B19266d985"),
		Admin:      common.HexToAddress("0x13BA5511e47cB79307aeed99d8f1D5DBA4840De6"),
		TaxWallet:  common.HexToAddress("0xeBeA8C8a54Dd5DF8F92103236aCD85Dc0417b217"),
	},
	56: {
		Token:      common.HexToAddress("0xe4a9a0a40468efc73c5ab64fc4e86c765efab4dd"),
		Staking:    common.HexToAddress("0xe4a9a0a40468efc73c5ab64fc4e86c765efab4dd"),
		RewardPool: common.HexToAddress("0xB4C1Dc5CF64EdbaF29c8Adf2294bABfdBa05EFa0"),
		Admin:      common.HexToAddress("0x226a72C33cbc9cfbB8f4af3f528254B5BF303579"),
		TaxWallet:  common.HexToAddress("0xCee96fD4379A42df20f122c441c8Cb0e92511031"),
	},
}

var chains = map[uint64]ChainInfo{
	1:        {Name: "Ethereum Mainnet", Symbol: "ETH", Explorer: "https://etherscan.io"},
	11155111: {Name: "Sepolia Testnet", Symbol: "ETH", Explorer: "https://sepolia.etherscan.io"},
	97:       {Name: "BSC Testnet", Symbol: "tBNB", Explorer: "https://testnet.bscscan.com"},
	56:       {Name: "BSC Mainnet", Symbol: "BNB", Explorer: "https://bscscan.com"},
}

// explorers is wider than chains: links are built for any network a wallet
// might report, even ones without a deployment.
var explorers = map[uint64]string{
	1:        "https://etherscan.io",
	5:        "https://goerli.etherscan.io",
	11155111: "https://sepolia.etherscan.io",
	42161:    "https://arbiscan.io",
	421613:   "https://goerli.arbiscan.io",
	56:       "https://bscscan.com",
	97:       "https://testnet.bscscan.com",
}

// DefaultChainID is BSC mainnet.
const DefaultChainID uint64 = 56

// Lookup returns the deployment and network info for chainID.
// Chains without a table entry, or whose token address is unset, are errors.
func Lookup(chainID uint64) (Deployment, ChainInfo, error) {
	dep, ok := deployments[chainID]
	if !ok {
		return Deployment{}, ChainInfo{}, fmt.Errorf("unsupported chain id %d", chainID)
	}
	info := chains[chainID]
	if dep.Token == (common.Address{}) {
		return Deployment{}, info, fmt.Errorf("no deployment on %s (chain id %d)", info.Name, chainID)
	}
	return dep, info, nil
}

// SupportedChains lists chain ids with a table entry, ascending.
func SupportedChains() []uint64 {
	ids := make([]uint64, 0, len(deployments))
	for id := range deployments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TxURL builds a block explorer link for hash. It returns "" when the chain
// has no known explorer or hash is empty.
func TxURL(chainID uint64, hash string) string {
	if hash == "" {
		return ""
	}
	base, ok := explorers[chainID]
	if !ok {
		return ""
	}
	return base + "/tx/" + hash
}
