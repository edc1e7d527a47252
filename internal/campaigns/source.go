package campaigns

import (
	"context"
	"iter"

	"campaignexport/internal/ads"
)

// Query selects every campaign of the customer ordered by id
const Query = `SELECT campaign.id, campaign.name FROM campaign ORDER BY campaign.id`

// Searcher runs a streaming query against a customer account
type Searcher interface {
	SearchStream(ctx context.Context, customerID, query string) iter.Seq2[*ads.Batch, error]
}

// Records flattens the batches returned for Query into a single sequence of records.
// Iteration stops at the first error, which is yielded as-is.
func Records(ctx context.Context, s Searcher, customerID string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for batch, err := range s.SearchStream(ctx, customerID, Query) {
			if err != nil {
				yield(Record{}, err)
				return
			}
			if batch == nil {
				continue
			}
			for _, row := range batch.Results {
				rec, ok := FromRow(row)
				if !ok {
					continue
				}
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}
