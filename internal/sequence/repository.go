// Package sequence numbers the events of each restaurant so consumers can
// detect gaps and reordering. Counters live in the event_sequence table.
package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of a pgx pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db Querier
}

func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

const nextSQL = `
	INSERT INTO event_sequence (partition_key, last_sequence)
	VALUES ($1, 1)
	ON CONFLICT (partition_key)
	DO UPDATE SET last_sequence = event_sequence.last_sequence + 1, updated_at = now()
	RETURNING last_sequence`

// NextSequence returns the next number for partitionKey, starting at 1. The
// upsert is a single statement, so two publishers never get the same number.
func (r *Repository) NextSequence(ctx context.Context, partitionKey string) (int64, error) {
	if partitionKey == "" {
		return 0, fmt.Errorf("next sequence: empty partition key")
	}
	var n int64
	if err := r.db.QueryRow(ctx, nextSQL, partitionKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence for partition %s: %w", partitionKey, err)
	}
	return n, nil
}
