package readstate

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"gicoinDesk/internal/model"
)

// ProposalReader reads governance state.
type ProposalReader interface {
	ProposalCount(ctx context.Context) (uint64, error)
	Proposal(ctx context.Context, id uint64) (model.Proposal, error)
}

// FetchProposals returns a FetchFunc listing every proposal, newest first.
// Proposal ids run from 0 to proposalCount-1.
func FetchProposals(reader ProposalReader) FetchFunc[[]model.Proposal] {
	return func(ctx context.Context, _ common.Address, _ []model.Proposal) ([]model.Proposal, error) {
		count, err := reader.ProposalCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("proposal count: %w", err)
		}
		out := make([]model.Proposal, 0, count)
		for id := count; id > 0; id-- {
			p, err := reader.Proposal(ctx, id-1)
			if err != nil {
				return nil, fmt.Errorf("proposal %d: %w", id-1, err)
			}
			out = append(out, p)
		}
		return out, nil
	}
}

// EmptyProposals is the default proposal list.
func EmptyProposals() []model.Proposal { return nil }
