package contract

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Operation is one write call on the contract with its typed arguments.
// The set is closed: only types in this package implement it.
type Operation interface {
	// Method is the ABI method name.
	Method() string
	// Args returns the call arguments in ABI order.
	Args() []interface{}
	// Label is a short human description used in notifications.
	Label() string
	// Privileged reports whether the contract restricts the call to its owner.
	Privileged() bool

	sealed()
}

type op struct{}

func (op) sealed() {}

type ownerOnly struct{ op }

func (ownerOnly) Privileged() bool { return true }

type anyone struct{ op }

func (anyone) Privileged() bool { return false }

// Pack ABI-encodes the call data for operation.
func Pack(operation Operation) ([]byte, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	data, err := parsed.Pack(operation.Method(), operation.Args()...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", operation.Method(), err)
	}
	return data, nil
}

func amountArg(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

// Token

type Approve struct {
	anyone
	Spender common.Address
	Amount  *big.Int
}

func (o Approve) Method() string      { return "approve" }
func (o Approve) Args() []interface{} { return []interface{}{o.Spender, amountArg(o.Amount)} }
func (o Approve) Label() string       { return "Approve " + FormatUnits(o.Amount) + " GIC" }

type Mint struct {
	ownerOnly
	To     common.Address
	Amount *big.Int
}

func (o Mint) Method() string      { return "mint" }
func (o Mint) Args() []interface{} { return []interface{}{o.To, amountArg(o.Amount)} }
func (o Mint) Label() string       { return "Mint " + FormatUnits(o.Amount) + " GIC" }

type Burn struct {
	ownerOnly
	From   common.Address
	Amount *big.Int
}

func (o Burn) Method() string      { return "burn" }
func (o Burn) Args() []interface{} { return []interface{}{o.From, amountArg(o.Amount)} }
func (o Burn) Label() string       { return "Burn " + FormatUnits(o.Amount) + " GIC" }

type SetTaxRate struct {
	ownerOnly
	Rate *big.Int
}

func (o SetTaxRate) Method() string      { return "setTaxRate" }
func (o SetTaxRate) Args() []interface{} { return []interface{}{amountArg(o.Rate)} }
func (o SetTaxRate) Label() string       { return "Set tax rate" }

type SetTaxWallet struct {
	ownerOnly
	Wallet common.Address
}

func (o SetTaxWallet) Method() string      { return "setTaxWallet" }
func (o SetTaxWallet) Args() []interface{} { return []interface{}{o.Wallet} }
func (o SetTaxWallet) Label() string       { return "Set tax wallet" }

type UpdateMaxTransactionLimit struct {
	ownerOnly
	Limit *big.Int
}

func (o UpdateMaxTransactionLimit) Method() string      { return "updateMaxTransactionLimit" }
func (o UpdateMaxTransactionLimit) Args() []interface{} { return []interface{}{amountArg(o.Limit)} }
func (o UpdateMaxTransactionLimit) Label() string       { return "Update max transaction limit" }

type BatchAddToBlacklist struct {
	ownerOnly
	Accounts []common.Address
}

func (o BatchAddToBlacklist) Method() string      { return "batchAddToBlacklist" }
func (o BatchAddToBlacklist) Args() []interface{} { return []interface{}{o.Accounts} }
func (o BatchAddToBlacklist) Label() string       { return "Blacklist accounts" }

type BatchRemoveFromBlacklist struct {
	ownerOnly
	Accounts []common.Address
}

func (o BatchRemoveFromBlacklist) Method() string      { return "batchRemoveFromBlacklist" }
func (o BatchRemoveFromBlacklist) Args() []interface{} { return []interface{}{o.Accounts} }
func (o BatchRemoveFromBlacklist) Label() string       { return "Remove accounts from blacklist" }

type Pause struct{ ownerOnly }

func (Pause) Method() string      { return "pause" }
func (Pause) Args() []interface{} { return nil }
func (Pause) Label() string       { return "Pause contract" }

type Unpause struct{ ownerOnly }

func (Unpause) Method() string      { return "unpause" }
func (Unpause) Args() []interface{} { return nil }
func (Unpause) Label() string       { return "Unpause contract" }

// Staking

type Stake struct {
	anyone
	Amount *big.Int
}

func (o Stake) Method() string      { return "stake" }
func (o Stake) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o Stake) Label() string       { return "Stake " + FormatUnits(o.Amount) + " GIC" }

type Unstake struct {
	anyone
	Amount *big.Int
}

func (o Unstake) Method() string      { return "unstake" }
func (o Unstake) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o Unstake) Label() string       { return "Unstake " + FormatUnits(o.Amount) + " GIC" }

type ClaimReward struct {
	anyone
	Amount *big.Int
}

func (o ClaimReward) Method() string      { return "claimReward" }
func (o ClaimReward) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o ClaimReward) Label() string       { return "Claim " + FormatUnits(o.Amount) + " GIC reward" }

type SetRewardPoolWallet struct {
	ownerOnly
	Wallet common.Address
}

func (o SetRewardPoolWallet) Method() string      { return "setRewardPoolWallet" }
func (o SetRewardPoolWallet) Args() []interface{} { return []interface{}{o.Wallet} }
func (o SetRewardPoolWallet) Label() string       { return "Set reward pool wallet" }

type SetMinStakeAmount struct {
	ownerOnly
	Amount *big.Int
}

func (o SetMinStakeAmount) Method() string      { return "setMinStakeAmount" }
func (o SetMinStakeAmount) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o SetMinStakeAmount) Label() string       { return "Set minimum stake" }

type TopUpRewardPool struct {
	ownerOnly
	Amount *big.Int
}

func (o TopUpRewardPool) Method() string      { return "topUpRewardPool" }
func (o TopUpRewardPool) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o TopUpRewardPool) Label() string       { return "Top up reward pool" }

type UpdateRewardRate struct {
	ownerOnly
	Rate *big.Int
}

func (o UpdateRewardRate) Method() string      { return "updateRewardRate" }
func (o UpdateRewardRate) Args() []interface{} { return []interface{}{amountArg(o.Rate)} }
func (o UpdateRewardRate) Label() string       { return "Update reward rate" }

// Airdrop

type SetMerkleRoot struct {
	ownerOnly
	Root common.Hash
}

func (o SetMerkleRoot) Method() string      { return "setMerkleRoot" }
func (o SetMerkleRoot) Args() []interface{} { return []interface{}{[32]byte(o.Root)} }
func (o SetMerkleRoot) Label() string       { return "Set merkle root" }

type SetWhitelist struct {
	ownerOnly
	Account common.Address
	Status  bool
}

func (o SetWhitelist) Method() string      { return "setWhitelist" }
func (o SetWhitelist) Args() []interface{} { return []interface{}{o.Account, o.Status} }
func (o SetWhitelist) Label() string       { return "Update whitelist" }

type BatchSetWhitelist struct {
	ownerOnly
	Accounts []common.Address
	Statuses []bool
}

func (o BatchSetWhitelist) Method() string      { return "batchSetWhitelist" }
func (o BatchSetWhitelist) Args() []interface{} { return []interface{}{o.Accounts, o.Statuses} }
func (o BatchSetWhitelist) Label() string       { return "Batch update whitelist" }

type RegisterAirdrop struct{ anyone }

func (RegisterAirdrop) Method() string      { return "registerAirdrop" }
func (RegisterAirdrop) Args() []interface{} { return nil }
func (RegisterAirdrop) Label() string       { return "Register for airdrop" }

type ClaimAirdrop struct {
	anyone
	Amount *big.Int
	Proof  []common.Hash
}

func (o ClaimAirdrop) Method() string { return "claimAirdrop" }
func (o ClaimAirdrop) Args() []interface{} {
	return []interface{}{amountArg(o.Amount), proofArg(o.Proof)}
}
func (o ClaimAirdrop) Label() string { return "Claim airdrop" }

type ClaimAirdropWithMerkleProof struct {
	anyone
	Amount *big.Int
	Proof  []common.Hash
}

func (o ClaimAirdropWithMerkleProof) Method() string { return "claimAirdropWithMerkleProof" }
func (o ClaimAirdropWithMerkleProof) Args() []interface{} {
	return []interface{}{amountArg(o.Amount), proofArg(o.Proof)}
}
func (o ClaimAirdropWithMerkleProof) Label() string { return "Claim airdrop with proof" }

type ClaimAirdropWithWhitelist struct {
	anyone
	Amount *big.Int
}

func (o ClaimAirdropWithWhitelist) Method() string      { return "claimAirdropWithWhitelist" }
func (o ClaimAirdropWithWhitelist) Args() []interface{} { return []interface{}{amountArg(o.Amount)} }
func (o ClaimAirdropWithWhitelist) Label() string       { return "Claim whitelisted airdrop" }

func proofArg(proof []common.Hash) [][32]byte {
	out := make([][32]byte, len(proof))
	for i, p := range proof {
		out[i] = p
	}
	return out
}

// Governance

type CreateProposal struct {
	ownerOnly
	Description string
}

func (o CreateProposal) Method() string      { return "createProposal" }
func (o CreateProposal) Args() []interface{} { return []interface{}{o.Description} }
func (o CreateProposal) Label() string       { return "Create proposal" }

type Vote struct {
	anyone
	ProposalID *big.Int
	Support    bool
}

func (o Vote) Method() string      { return "vote" }
func (o Vote) Args() []interface{} { return []interface{}{amountArg(o.ProposalID), o.Support} }
func (o Vote) Label() string {
	if o.Support {
		return "Vote for proposal #" + amountArg(o.ProposalID).String()
	}
	return "Vote against proposal #" + amountArg(o.ProposalID).String()
}

type CloseVoting struct {
	ownerOnly
	ProposalID *big.Int
}

func (o CloseVoting) Method() string      { return "closeVoting" }
func (o CloseVoting) Args() []interface{} { return []interface{}{amountArg(o.ProposalID)} }
func (o CloseVoting) Label() string       { return "Close voting #" + amountArg(o.ProposalID).String() }

type ExecuteProposal struct {
	ownerOnly
	ProposalID *big.Int
}

func (o ExecuteProposal) Method() string      { return "executeProposal" }
func (o ExecuteProposal) Args() []interface{} { return []interface{}{amountArg(o.ProposalID)} }
func (o ExecuteProposal) Label() string {
	return "Execute proposal #" + amountArg(o.ProposalID).String()
}

type SetQuorumPercentage struct {
	ownerOnly
	Percentage *big.Int
}

func (o SetQuorumPercentage) Method() string      { return "setQuorumPercentage" }
func (o SetQuorumPercentage) Args() []interface{} { return []interface{}{amountArg(o.Percentage)} }
func (o SetQuorumPercentage) Label() string       { return "Set quorum percentage" }

type SetProposalTimes struct {
	ownerOnly
	ProposalID *big.Int
	Start      *big.Int
	End        *big.Int
}

func (o SetProposalTimes) Method() string { return "setProposalTimes" }
func (o SetProposalTimes) Args() []interface{} {
	return []interface{}{amountArg(o.ProposalID), amountArg(o.Start), amountArg(o.End)}
}
func (o SetProposalTimes) Label() string { return "Set proposal times" }
