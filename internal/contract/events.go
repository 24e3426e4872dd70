package contract

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EventNames is the fixed set of contract events this module consumes.
var EventNames = []string{
	"Staked",
	"Unstaked",
	"RewardCalculated",
	"RewardClaimed",
	"ProposalCreated",
	"Voted",
	"VotingClosed",
	"ProposalExecuted",
	"QuorumPercentageUpdated",
	"AirdropRegistered",
	"AirdropClaimed",
	"AirdropClaimFailed",
	"TaxRateChanged",
	"TransferTaxApplied",
	"TransferWithoutTax",
	"TaxWalletUpdated",
	"PausedStatusChanged",
	"MaxTransactionLimitUpdated",
	"BlacklistStatusChanged",
}

// DecodedEvent is a log decoded against the contract ABI.
type DecodedEvent struct {
	Name     string
	Args     map[string]string
	Raw      map[string]interface{}
	Accounts []string
}

// ErrUnknownEvent is returned for logs whose topic0 is not in EventNames.
var ErrUnknownEvent = errors.New("unknown event")

// EventDecoder decodes contract logs.
type EventDecoder struct {
	abi    abi.ABI
	byID   map[common.Hash]abi.Event
	topics []common.Hash
}

// NewEventDecoder builds a decoder for EventNames.
func NewEventDecoder() (*EventDecoder, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, fmt.Errorf("parse abi: %w", err)
	}
	d := &EventDecoder{abi: parsed, byID: make(map[common.Hash]abi.Event, len(EventNames))}
	for _, name := range EventNames {
		ev, ok := parsed.Events[name]
		if !ok {
			return nil, fmt.Errorf("event %s missing from abi", name)
		}
		d.byID[ev.ID] = ev
		d.topics = append(d.topics, ev.ID)
	}
	return d, nil
}

// Topics returns the topic0 filter for all known events.
func (d *EventDecoder) Topics() []common.Hash {
	out := make([]common.Hash, len(d.topics))
	copy(out, d.topics)
	return out
}

// Topic returns the topic0 of a named event.
func (d *EventDecoder) Topic(name string) (common.Hash, bool) {
	ev, ok := d.abi.Events[name]
	if !ok {
		return common.Hash{}, false
	}
	return ev.ID, true
}

// CanDecode reports whether topic0 belongs to a known event.
func (d *EventDecoder) CanDecode(topic0 common.Hash) bool {
	_, ok := d.byID[topic0]
	return ok
}

// Decode converts a raw log. Logs with an unknown topic0 return ErrUnknownEvent.
func (d *EventDecoder) Decode(log types.Log) (*DecodedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("missing topics")
	}
	ev, ok := d.byID[log.Topics[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, log.Topics[0].Hex())
	}

	raw := make(map[string]interface{}, len(ev.Inputs))

	var indexed abi.Arguments
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("%s: expected %d indexed topics, got %d", ev.Name, len(indexed), len(log.Topics)-1)
	}
	if len(indexed) > 0 {
		if err := abi.ParseTopicsIntoMap(raw, indexed, log.Topics[1:]); err != nil {
			return nil, fmt.Errorf("%s: parse topics: %w", ev.Name, err)
		}
	}
	if err := ev.Inputs.NonIndexed().UnpackIntoMap(raw, log.Data); err != nil {
		return nil, fmt.Errorf("%s: unpack data: %w", ev.Name, err)
	}

	out := &DecodedEvent{
		Name: ev.Name,
		Args: make(map[string]string, len(raw)),
		Raw:  raw,
	}
	for _, input := range ev.Inputs {
		value, ok := raw[input.Name]
		if !ok {
			continue
		}
		out.Args[input.Name] = stringify(value)
		if input.Type.T == abi.AddressTy {
			if addr, err := asAddress(value); err == nil {
				out.Accounts = append(out.Accounts, addr.Hex())
			}
		}
	}
	return out, nil
}

// ArgNames returns the sorted argument names of a decoded event.
func (e *DecodedEvent) ArgNames() []string {
	names := make([]string, 0, len(e.Args))
	for k := range e.Args {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Summary renders "Name(k=v, ...)" with sorted keys.
func (e *DecodedEvent) Summary() string {
	parts := make([]string, 0, len(e.Args))
	for _, k := range e.ArgNames() {
		parts = append(parts, k+"="+e.Args[k])
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}
