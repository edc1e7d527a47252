package campaigns

import (
	"context"
	"iter"

	"campaignexport/internal/ads"
)

// fakeSearcher replays canned batches and then fails with err, if set
type fakeSearcher struct {
	batches []*ads.Batch
	err     error

	calls      int
	customerID string
	query      string
}

func (f *fakeSearcher) SearchStream(_ context.Context, customerID, query string) iter.Seq2[*ads.Batch, error] {
	f.calls++
	f.customerID = customerID
	f.query = query
	return func(yield func(*ads.Batch, error) bool) {
		for _, b := range f.batches {
			if !yield(b, nil) {
				return
			}
		}
		if f.err != nil {
			yield(nil, f.err)
		}
	}
}

func campaignRow(id int64, name string) ads.Row {
	return ads.Row{Campaign: &ads.Campaign{
		ResourceName: "customers/1/campaigns/" + name,
		ID:           id,
		Name:         name,
	}}
}

func batch(rows ...ads.Row) *ads.Batch {
	return &ads.Batch{Results: rows, FieldMask: "campaign.id,campaign.name"}
}
