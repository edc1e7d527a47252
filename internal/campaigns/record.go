package campaigns

import (
	"campaignexport/internal/ads"
	"campaignexport/internal/exporter"
)

// Headers is the header row of the export
var Headers = []string{"Campaign ID", "Campaign Name"}

// Record is one exported campaign
type Record struct {
	ID   int64
	Name string
}

// FromRow extracts the campaign fields of a result row.
// It reports false when the row carries no campaign.
func FromRow(row ads.Row) (Record, bool) {
	if row.Campaign == nil {
		return Record{}, false
	}
	return Record{ID: row.Campaign.ID, Name: row.Campaign.Name}, true
}

// Strings returns the record as export fields
func (r Record) Strings() []string {
	return []string{exporter.FormatInt(r.ID), r.Name}
}
