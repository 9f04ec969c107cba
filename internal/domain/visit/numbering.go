package visit

import (
	"context"
	"fmt"
)

// Numbering assigns a (sequence number, display reference) pair for a visit.
// Assignment order within a batch matches creation order, and numbers are
// unique within their scope.
type Numbering interface {
	Next(ctx context.Context, batch *Batch, v *Visit) (int, string, error)
}

// Batch carries per-scope counter state for one logical creation batch.
// Seeding the counter once from storage and incrementing in memory keeps a
// single batch from assigning duplicate numbers to itself; cross-batch races
// are backstopped by the unique index on (client, year, month, seq).
type Batch struct {
	next map[string]int
}

// NewBatch creates an empty numbering batch.
func NewBatch() *Batch {
	return &Batch{next: make(map[string]int)}
}

func (b *Batch) take(scope string, seed func() (int, error)) (int, error) {
	if n, ok := b.next[scope]; ok {
		b.next[scope] = n + 1
		return n, nil
	}
	n, err := seed()
	if err != nil {
		return 0, err
	}
	b.next[scope] = n + 1
	return n, nil
}

// MonthlyRecount numbers visits per (client, year, month) scope by querying
// the stored maximum and adding one. Tolerates deleted records without
// turning gaps into duplicates on re-run.
type MonthlyRecount struct {
	visits Repository
}

// NewMonthlyRecount creates the recount-per-period numbering strategy.
func NewMonthlyRecount(visits Repository) *MonthlyRecount {
	return &MonthlyRecount{visits: visits}
}

// Next returns the next sequence number and display reference for the visit's
// (client, year, month) scope.
func (m *MonthlyRecount) Next(ctx context.Context, batch *Batch, v *Visit) (int, string, error) {
	year, month := v.VisitDate.Year(), int(v.VisitDate.Month())
	scope := fmt.Sprintf("%s|%04d-%02d", v.ClientID, year, month)

	seq, err := batch.take(scope, func() (int, error) {
		max, err := m.visits.MaxSeq(ctx, v.ClientID, year, month)
		if err != nil {
			return 0, fmt.Errorf("querying max sequence: %w", err)
		}
		return max + 1, nil
	})
	if err != nil {
		return 0, "", err
	}

	ref := fmt.Sprintf("%s - %04d/%02d - %d", v.ClientName, year, month, seq)
	return seq, ref, nil
}

// ScopedCounter numbers visits from a persisted named counter, incremented
// atomically per allocation. Used for ad-hoc visits, where no month scope
// exists ahead of time.
type ScopedCounter struct {
	sequences SequenceRepository
	prefix    string
}

// NewScopedCounter creates the counter-backed numbering strategy. The prefix
// appears in the display reference, e.g. "VIS" in "Acme-VIS-007".
func NewScopedCounter(sequences SequenceRepository, prefix string) *ScopedCounter {
	return &ScopedCounter{sequences: sequences, prefix: prefix}
}

// Next allocates the next counter value for the visit's client scope.
func (c *ScopedCounter) Next(ctx context.Context, _ *Batch, v *Visit) (int, string, error) {
	n, err := c.sequences.Next(ctx, "visit."+v.ClientID)
	if err != nil {
		return 0, "", fmt.Errorf("allocating sequence: %w", err)
	}

	ref := fmt.Sprintf("%s-%s-%03d", v.ClientName, c.prefix, n)
	return int(n), ref, nil
}
