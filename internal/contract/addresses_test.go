package contract

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestLookup(t *testing.T) {
	dep, info, err := Lookup(56)
	if err != nil {
		t.Fatalf("lookup 56: %v", err)
	}
	if info.Name != "BSC Mainnet" || info.Symbol != "BNB" {
		t.Fatalf("unexpected chain info %+v", info)
	}
	if dep.Token != common.HexToAddress("0xe4a9a0a40468efc73c5ab64fc4e86c765efab4dd") {
		t.Fatalf("unexpected token %s", dep.Token.Hex())
	}
	if dep.Token != dep.Staking {
		t.Fatalf("token and staking share one contract")
	}

	if _, _, err := Lookup(1); err == nil {
		t.Fatalf("chain 1 has no deployment and must fail")
	}
	if _, _, err := Lookup(424242); err == nil {
		t.Fatalf("unknown chain must fail")
	}
}

func TestTxURL(t *testing.T) {
	if got := TxURL(97, "0xabc"); got != "https://testnet.bscscan.com/tx/0xabc" {
		t.Fatalf("TxURL = %s", got)
	}
	if got := TxURL(42161, "0xabc"); got != "https://arbiscan.io/tx/0xabc" {
		t.Fatalf("TxURL = %s", got)
	}
	if got := TxURL(424242, "0xabc"); got != "" {
		t.Fatalf("unknown chain should yield empty url, got %s", got)
	}
	if got := TxURL(56, ""); got != "" {
		t.Fatalf("empty hash should yield empty url, got %s", got)
	}
}

func TestSupportedChains(t *testing.T) {
	got := SupportedChains()
	want := []uint64{1, 56, 97, 11155111}
	if len(got) != len(want) {
		t.Fatalf("SupportedChains = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SupportedChains = %v", got)
		}
	}
}
