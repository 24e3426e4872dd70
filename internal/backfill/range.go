package backfill

import "fmt"

// DefaultSpan is how many blocks behind the head a default backfill reaches.
const DefaultSpan = 50_000

// BlockRange represents an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// Blocks returns the number of blocks in the range.
func (r BlockRange) Blocks() uint64 {
	if r.To < r.From {
		return 0
	}
	return r.To - r.From + 1
}

// RecentRange returns the last span blocks ending at latest, clamped at genesis.
func RecentRange(latest, span uint64) BlockRange {
	if span == 0 {
		span = DefaultSpan
	}
	from := uint64(0)
	if latest >= span {
		from = latest - span + 1
	}
	return BlockRange{From: from, To: latest}
}

// SplitRange splits a block range into batches of size batchSize.
func SplitRange(from, to, batchSize uint64) ([]BlockRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block must be >= from block")
	}

	ranges := make([]BlockRange, 0, (to-from)/batchSize+1)
	for start := from; ; {
		end := to
		if to-start >= batchSize {
			end = start + batchSize - 1
		}
		ranges = append(ranges, BlockRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}
	return ranges, nil
}
