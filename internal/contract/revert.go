package contract

import (
	"errors"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var revertMessages = map[string]string{
	"E11":              "Stake amount must be greater than 0",
	"E12":              "Insufficient GIC balance",
	"E13":              "Amount is below the minimum stake",
	"E14":              "You still have an active stake",
	"E15":              "Unstake amount must be greater than 0",
	"E16":              "Unstake amount must equal the total staked amount",
	"E17":              "Reward pool wallet is not set",
	"E18":              "30 days have not passed since your last stake",
	"E19":              "Insufficient reward pool balance",
	"E20":              "Insufficient staking contract balance",
	"E21":              "Drain destination must not be empty",
	"E22":              "Drain amount must be greater than 0",
	"E23":              "Insufficient balance to drain",
	"E24":              "Reward top-up amount must be greater than 0",
	"E25":              "Reward claim amount must be greater than 0",
	"E26":              "You have nothing staked",
	"E27":              "30 days have not passed since your last claim",
	"E28":              "Claim amount exceeds the available reward",
	"E29":              "Reward pool cannot cover this claim",
	"E30":              "Reward pool wallet is invalid",
	"E31":              "Pool transfer amount must be greater than 0",
	"E32":              "Reward pool cannot cover this transfer",
	"E33":              "Transfer destination address is invalid",
	"E34":              "Sender address is invalid",
	"E35":              "Recipient address is invalid",
	"E36":              "Your account is blacklisted",
	"E37":              "Amount exceeds the maximum transaction limit",
	"Pausable: paused": "The contract is paused",
}

var revertKeys = func() []string {
	keys := make([]string, 0, len(revertMessages))
	for k := range revertMessages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// DefaultRevertMessage is returned when no reason is available at all.
const DefaultRevertMessage = "Transaction failed"

// RevertMessage translates a raw revert reason or RPC error message into a
// user-facing message. Contract codes win over generic wallet errors.
func RevertMessage(reason string) string {
	reason = strings.ReplaceAll(reason, "execution reverted: ", "")
	reason = strings.ReplaceAll(reason, "VM Exception while processing transaction: ", "")

	for _, key := range revertKeys {
		if strings.Contains(reason, key) {
			return revertMessages[key]
		}
	}

	switch {
	case strings.Contains(reason, "insufficient funds"):
		return "Insufficient native balance for gas"
	case strings.Contains(reason, "user rejected"):
		return "Transaction rejected by user"
	case strings.Contains(reason, "execution reverted"):
		return "Transaction reverted on chain"
	case strings.Contains(reason, "missing revert data"):
		return "Transaction failed without a reason (check gas limit or RPC)"
	}

	if strings.TrimSpace(reason) == "" {
		return DefaultRevertMessage
	}
	return reason
}

// RevertCode extracts the contract code from reason, or "" if none matches.
func RevertCode(reason string) string {
	for _, key := range revertKeys {
		if strings.Contains(reason, key) {
			return key
		}
	}
	return ""
}

// RevertReason extracts the Error(string) payload carried by an RPC error,
// falling back to the error text.
func RevertReason(err error) string {
	if err == nil {
		return ""
	}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(data); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}
