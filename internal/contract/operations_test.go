package contract

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestPackStake(t *testing.T) {
	amount, _ := ParseUnits("10")
	data, err := Pack(Stake{Amount: amount})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	parsed, err := ABI()
	if err != nil {
		t.Fatalf("abi: %v", err)
	}
	method := parsed.Methods["stake"]
	if !bytes.Equal(data[:4], method.ID) {
		t.Fatalf("selector mismatch")
	}
	values, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if values[0].(*big.Int).Cmp(amount) != 0 {
		t.Fatalf("amount mismatch")
	}
}

func TestPackEveryOperation(t *testing.T) {
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	one := big.NewInt(1)
	ops := []Operation{
		Approve{Spender: addr, Amount: one},
		Mint{To: addr, Amount: one},
		Burn{From: addr, Amount: one},
		SetTaxRate{Rate: one},
		SetTaxWallet{Wallet: addr},
		UpdateMaxTransactionLimit{Limit: one},
		BatchAddToBlacklist{Accounts: []common.Address{addr}},
		BatchRemoveFromBlacklist{Accounts: []common.Address{addr}},
		Pause{},
		Unpause{},
		Stake{Amount: one},
		Unstake{Amount: one},
		ClaimReward{Amount: one},
		SetRewardPoolWallet{Wallet: addr},
		SetMinStakeAmount{Amount: one},
		TopUpRewardPool{Amount: one},
		UpdateRewardRate{Rate: one},
		SetMerkleRoot{Root: common.HexToHash("0x01")},
		SetWhitelist{Account: addr, Status: true},
		BatchSetWhitelist{Accounts: []common.Address{addr}, Statuses: []bool{true}},
		RegisterAirdrop{},
		ClaimAirdrop{Amount: one, Proof: []common.Hash{common.HexToHash("0x02")}},
		ClaimAirdropWithMerkleProof{Amount: one},
		ClaimAirdropWithWhitelist{Amount: one},
		CreateProposal{Description: "x"},
		Vote{ProposalID: one, Support: true},
		CloseVoting{ProposalID: one},
		ExecuteProposal{ProposalID: one},
		SetQuorumPercentage{Percentage: one},
		SetProposalTimes{ProposalID: one, Start: one, End: big.NewInt(2)},
	}
	for _, op := range ops {
		if _, err := Pack(op); err != nil {
			t.Fatalf("pack %s: %v", op.Method(), err)
		}
		if op.Label() == "" {
			t.Fatalf("%s has no label", op.Method())
		}
	}
	if len(ops) != len(OperationNames()) {
		t.Fatalf("catalog has %d parsers but %d operations", len(OperationNames()), len(ops))
	}
}

func TestPrivileged(t *testing.T) {
	if (Stake{}).Privileged() {
		t.Fatalf("stake is open to everyone")
	}
	if !(Pause{}).Privileged() {
		t.Fatalf("pause is owner only")
	}
	if !(SetQuorumPercentage{}).Privileged() {
		t.Fatalf("setQuorumPercentage is owner only")
	}
}

func TestParseOperation(t *testing.T) {
	op, err := ParseOperation("stake", []string{"10"})
	if err != nil {
		t.Fatalf("parse stake: %v", err)
	}
	stake, ok := op.(Stake)
	if !ok {
		t.Fatalf("unexpected type %T", op)
	}
	if FormatUnits(stake.Amount) != "10" {
		t.Fatalf("amount mismatch: %s", stake.Amount)
	}

	op, err = ParseOperation("vote", []string{"4", "false"})
	if err != nil {
		t.Fatalf("parse vote: %v", err)
	}
	if v := op.(Vote); v.ProposalID.Int64() != 4 || v.Support {
		t.Fatalf("unexpected vote %+v", v)
	}

	op, err = ParseOperation("createProposal", []string{"lower", "tax"})
	if err != nil {
		t.Fatalf("parse createProposal: %v", err)
	}
	if op.(CreateProposal).Description != "lower tax" {
		t.Fatalf("description mismatch")
	}

	if _, err := ParseOperation("stake", nil); err == nil {
		t.Fatalf("missing amount must fail")
	}
	if _, err := ParseOperation("selfdestruct", nil); err == nil {
		t.Fatalf("unknown operation must fail")
	}
	if _, err := ParseOperation("batchSetWhitelist", []string{"0x1111111111111111111111111111111111111111", "true,false"}); err == nil {
		t.Fatalf("length mismatch must fail")
	}
	if _, err := ParseOperation("setQuorumPercentage", []string{"101"}); err == nil {
		t.Fatalf("quorum above 100 must fail")
	}
	if _, err := ParseOperation("pause", nil); err != nil {
		t.Fatalf("pause takes no args: %v", err)
	}
}
