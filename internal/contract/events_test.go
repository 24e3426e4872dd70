package contract_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"gicoinDesk/internal/contract"
	"gicoinDesk/internal/contract/contracttest"
)

func TestEventDecoderStaked(t *testing.T) {
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	user := common.HexToAddress("0x2222222222222222222222222222222222222222")
	amount, _ := new(big.Int).SetString("10000000000000000000", 10)
	log := contracttest.Staked(user, amount, 100, common.HexToHash("0x01"))

	ev, err := decoder.Decode(log)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Name != "Staked" {
		t.Fatalf("unexpected name %s", ev.Name)
	}
	if ev.Args["user"] != user.Hex() {
		t.Fatalf("user mismatch: %s", ev.Args["user"])
	}
	if ev.Args["amount"] != amount.String() {
		t.Fatalf("amount mismatch: %s", ev.Args["amount"])
	}
	if len(ev.Accounts) != 1 || ev.Accounts[0] != user.Hex() {
		t.Fatalf("accounts mismatch: %v", ev.Accounts)
	}
}

func TestEventDecoderGovernance(t *testing.T) {
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	created := contracttest.MustLog("ProposalCreated", 10, common.HexToHash("0x02"), 0,
		[]common.Hash{contracttest.TopicFromUint(3)},
		"raise quorum", big.NewInt(1700000000), big.NewInt(1700086400),
	)
	ev, err := decoder.Decode(created)
	if err != nil {
		t.Fatalf("decode ProposalCreated: %v", err)
	}
	if ev.Args["proposalId"] != "3" || ev.Args["description"] != "raise quorum" {
		t.Fatalf("unexpected args: %v", ev.Args)
	}
	if len(ev.Accounts) != 0 {
		t.Fatalf("ProposalCreated names no accounts, got %v", ev.Accounts)
	}

	voter := common.HexToAddress("0x3333333333333333333333333333333333333333")
	voted := contracttest.MustLog("Voted", 11, common.HexToHash("0x03"), 0,
		[]common.Hash{contracttest.TopicFromAddress(voter), contracttest.TopicFromUint(3)},
		true,
	)
	ev, err = decoder.Decode(voted)
	if err != nil {
		t.Fatalf("decode Voted: %v", err)
	}
	if ev.Args["support"] != "true" || ev.Args["proposalId"] != "3" {
		t.Fatalf("unexpected args: %v", ev.Args)
	}
	if got := ev.Summary(); got != "Voted(proposalId=3, support=true, voter="+voter.Hex()+")" {
		t.Fatalf("unexpected summary %s", got)
	}
}

func TestEventDecoderTransferTaxAccounts(t *testing.T) {
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	sender := common.HexToAddress("0x4444444444444444444444444444444444444444")
	recipient := common.HexToAddress("0x5555555555555555555555555555555555555555")
	log := contracttest.MustLog("TransferTaxApplied", 12, common.HexToHash("0x04"), 1,
		[]common.Hash{contracttest.TopicFromAddress(sender), contracttest.TopicFromAddress(recipient)},
		big.NewInt(5), big.NewInt(95),
	)
	ev, err := decoder.Decode(log)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ev.Accounts) != 2 || ev.Accounts[0] != sender.Hex() || ev.Accounts[1] != recipient.Hex() {
		t.Fatalf("accounts mismatch: %v", ev.Accounts)
	}
}

func TestEventDecoderNoDataEvent(t *testing.T) {
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	user := common.HexToAddress("0x6666666666666666666666666666666666666666")
	log := contracttest.MustLog("AirdropRegistered", 13, common.HexToHash("0x05"), 0,
		[]common.Hash{contracttest.TopicFromAddress(user)})
	ev, err := decoder.Decode(log)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Args["user"] != user.Hex() {
		t.Fatalf("user mismatch: %v", ev.Args)
	}
}

func TestEventDecoderUnknownAndMalformed(t *testing.T) {
	decoder, err := contract.NewEventDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	_, err = decoder.Decode(types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}})
	if !errors.Is(err, contract.ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}

	topic, ok := decoder.Topic("Staked")
	if !ok {
		t.Fatalf("Staked topic missing")
	}
	_, err = decoder.Decode(types.Log{Topics: []common.Hash{topic}, Data: []byte{0x01}})
	if err == nil || errors.Is(err, contract.ErrUnknownEvent) {
		t.Fatalf("expected malformed log error, got %v", err)
	}

	if len(decoder.Topics()) != len(contract.EventNames) {
		t.Fatalf("topic count mismatch")
	}
}
