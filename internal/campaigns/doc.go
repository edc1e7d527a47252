// Package campaigns exports the campaigns of a Google Ads customer account.
//
// The workflow is a straight pipe: the fixed Query is streamed through a
// Searcher, batches are flattened into Records in arrival order, and each
// record is written to <directory>/campaigns.csv (or .xlsx) behind a
// "Campaign ID,Campaign Name" header. Ordering comes from the query itself.
//
// Errors from the Searcher are returned unmodified, so callers can detect an
// *ads.Failure with errors.As. A file that was partially written when the
// stream failed is left in place.
package campaigns
