// Package ads is a minimal Google Ads API client covering GoogleAdsService.SearchStream.
//
// The client speaks the REST interface: one POST per query to
//
//	{endpoint}/{version}/customers/{customerID}/googleAds:searchStream
//
// and decodes the JSON array response one batch at a time, so callers see a
// lazy sequence of batches without buffering the whole result set.
//
// Authentication follows the Google Ads client libraries: an OAuth2 refresh
// token (installed or web application flow) or a service account key file,
// plus the developer-token and optional login-customer-id headers.
//
// Failures reported by the API are returned as *Failure, which carries the
// request id, the status name and every individual error with its field path.
//
//	client, err := ads.NewClient(ctx, creds, cfg.Ads)
//	for batch, err := range client.SearchStream(ctx, "1234567890", query) {
//	    ...
//	}
package ads
