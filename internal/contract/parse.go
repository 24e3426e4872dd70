package contract

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

type operationParser struct {
	usage string
	build func(args []string) (Operation, error)
}

var operationParsers = map[string]operationParser{
	"approve": {"<spender> <amount>", func(a []string) (Operation, error) {
		spender, err := parseAddress(a[0])
		if err != nil {
			return nil, err
		}
		amount, err := ParseUnits(a[1])
		if err != nil {
			return nil, err
		}
		return Approve{Spender: spender, Amount: amount}, nil
	}},
	"mint": {"<to> <amount>", func(a []string) (Operation, error) {
		to, err := parseAddress(a[0])
		if err != nil {
			return nil, err
		}
		amount, err := ParseUnits(a[1])
		if err != nil {
			return nil, err
		}
		return Mint{To: to, Amount: amount}, nil
	}},
	"burn": {"<from> <amount>", func(a []string) (Operation, error) {
		from, err := parseAddress(a[0])
		if err != nil {
			return nil, err
		}
		amount, err := ParseUnits(a[1])
		if err != nil {
			return nil, err
		}
		return Burn{From: from, Amount: amount}, nil
	}},
	"setTaxRate": {"<rate>", func(a []string) (Operation, error) {
		v, err := parseInteger(a[0])
		return SetTaxRate{Rate: v}, err
	}},
	"setTaxWallet": {"<wallet>", func(a []string) (Operation, error) {
		v, err := parseAddress(a[0])
		return SetTaxWallet{Wallet: v}, err
	}},
	"updateMaxTransactionLimit": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return UpdateMaxTransactionLimit{Limit: v}, err
	}},
	"batchAddToBlacklist": {"<addr,addr,...>", func(a []string) (Operation, error) {
		v, err := parseAddressList(a[0])
		return BatchAddToBlacklist{Accounts: v}, err
	}},
	"batchRemoveFromBlacklist": {"<addr,addr,...>", func(a []string) (Operation, error) {
		v, err := parseAddressList(a[0])
		return BatchRemoveFromBlacklist{Accounts: v}, err
	}},
	"pause":   {"", func([]string) (Operation, error) { return Pause{}, nil }},
	"unpause": {"", func([]string) (Operation, error) { return Unpause{}, nil }},
	"stake": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return Stake{Amount: v}, err
	}},
	"unstake": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return Unstake{Amount: v}, err
	}},
	"claimReward": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return ClaimReward{Amount: v}, err
	}},
	"setRewardPoolWallet": {"<wallet>", func(a []string) (Operation, error) {
		v, err := parseAddress(a[0])
		return SetRewardPoolWallet{Wallet: v}, err
	}},
	"setMinStakeAmount": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return SetMinStakeAmount{Amount: v}, err
	}},
	"topUpRewardPool": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return TopUpRewardPool{Amount: v}, err
	}},
	"updateRewardRate": {"<rate>", func(a []string) (Operation, error) {
		v, err := parseInteger(a[0])
		return UpdateRewardRate{Rate: v}, err
	}},
	"setMerkleRoot": {"<root>", func(a []string) (Operation, error) {
		v, err := parseHash(a[0])
		return SetMerkleRoot{Root: v}, err
	}},
	"setWhitelist": {"<account> <true|false>", func(a []string) (Operation, error) {
		account, err := parseAddress(a[0])
		if err != nil {
			return nil, err
		}
		status, err := strconv.ParseBool(a[1])
		if err != nil {
			return nil, fmt.Errorf("invalid status %q", a[1])
		}
		return SetWhitelist{Account: account, Status: status}, nil
	}},
	"batchSetWhitelist": {"<addr,addr,...> <bool,bool,...>", func(a []string) (Operation, error) {
		accounts, err := parseAddressList(a[0])
		if err != nil {
			return nil, err
		}
		statuses, err := parseBoolList(a[1])
		if err != nil {
			return nil, err
		}
		if len(accounts) != len(statuses) {
			return nil, fmt.Errorf("got %d accounts but %d statuses", len(accounts), len(statuses))
		}
		return BatchSetWhitelist{Accounts: accounts, Statuses: statuses}, nil
	}},
	"registerAirdrop": {"", func([]string) (Operation, error) { return RegisterAirdrop{}, nil }},
	"claimAirdrop": {"<amount> [proof,proof,...]", func(a []string) (Operation, error) {
		amount, proof, err := parseAmountProof(a)
		return ClaimAirdrop{Amount: amount, Proof: proof}, err
	}},
	"claimAirdropWithMerkleProof": {"<amount> [proof,proof,...]", func(a []string) (Operation, error) {
		amount, proof, err := parseAmountProof(a)
		return ClaimAirdropWithMerkleProof{Amount: amount, Proof: proof}, err
	}},
	"claimAirdropWithWhitelist": {"<amount>", func(a []string) (Operation, error) {
		v, err := ParseUnits(a[0])
		return ClaimAirdropWithWhitelist{Amount: v}, err
	}},
	"createProposal": {"<description>", func(a []string) (Operation, error) {
		desc := strings.TrimSpace(strings.Join(a, " "))
		if desc == "" {
			return nil, fmt.Errorf("description is required")
		}
		return CreateProposal{Description: desc}, nil
	}},
	"vote": {"<proposal-id> <true|false>", func(a []string) (Operation, error) {
		id, err := parseInteger(a[0])
		if err != nil {
			return nil, err
		}
		support, err := strconv.ParseBool(a[1])
		if err != nil {
			return nil, fmt.Errorf("invalid support %q", a[1])
		}
		return Vote{ProposalID: id, Support: support}, nil
	}},
	"closeVoting": {"<proposal-id>", func(a []string) (Operation, error) {
		v, err := parseInteger(a[0])
		return CloseVoting{ProposalID: v}, err
	}},
	"executeProposal": {"<proposal-id>", func(a []string) (Operation, error) {
		v, err := parseInteger(a[0])
		return ExecuteProposal{ProposalID: v}, err
	}},
	"setQuorumPercentage": {"<percent>", func(a []string) (Operation, error) {
		v, err := parseInteger(a[0])
		if err == nil && v.Cmp(big.NewInt(100)) > 0 {
			err = fmt.Errorf("quorum percentage %s exceeds 100", v)
		}
		return SetQuorumPercentage{Percentage: v}, err
	}},
	"setProposalTimes": {"<proposal-id> <start> <end>", func(a []string) (Operation, error) {
		id, err := parseInteger(a[0])
		if err != nil {
			return nil, err
		}
		start, err := parseInteger(a[1])
		if err != nil {
			return nil, err
		}
		end, err := parseInteger(a[2])
		if err != nil {
			return nil, err
		}
		if end.Cmp(start) <= 0 {
			return nil, fmt.Errorf("end time must be after start time")
		}
		return SetProposalTimes{ProposalID: id, Start: start, End: end}, nil
	}},
}

// OperationNames lists the method names accepted by ParseOperation.
func OperationNames() []string {
	names := make([]string, 0, len(operationParsers))
	for name := range operationParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationUsage returns the argument synopsis for name.
func OperationUsage(name string) (string, bool) {
	p, ok := operationParsers[name]
	return p.usage, ok
}

// ParseOperation builds an Operation from a method name and textual arguments.
// Token amounts are decimal GIC; ids, rates and times are plain integers.
func ParseOperation(name string, args []string) (Operation, error) {
	p, ok := operationParsers[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	required := requiredArgs(p.usage)
	if len(args) < required {
		return nil, fmt.Errorf("%s: expected %s", name, strings.TrimSpace(name+" "+p.usage))
	}
	operation, err := p.build(args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return operation, nil
}

func requiredArgs(usage string) int {
	n := 0
	for _, field := range strings.Fields(usage) {
		if strings.HasPrefix(field, "<") {
			n++
		}
	}
	return n
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseAddressList(s string) ([]common.Address, error) {
	var out []common.Address
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := parseAddress(part)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("address list is empty")
	}
	return out, nil
}

func parseBoolList(s string) ([]bool, error) {
	var out []bool
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseBool(part)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInteger(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func parseHash(s string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	if len(strings.TrimPrefix(s, "0x")) != 64 {
		return common.Hash{}, fmt.Errorf("invalid bytes32 %q", s)
	}
	return common.HexToHash(s), nil
}

func parseAmountProof(a []string) (*big.Int, []common.Hash, error) {
	amount, err := ParseUnits(a[0])
	if err != nil {
		return nil, nil, err
	}
	var proof []common.Hash
	if len(a) > 1 {
		for _, part := range strings.Split(a[1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			h, err := parseHash(part)
			if err != nil {
				return nil, nil, err
			}
			proof = append(proof, h)
		}
	}
	return amount, proof, nil
}
